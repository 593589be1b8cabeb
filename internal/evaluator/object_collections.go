package evaluator

import "strings"

// Tuple
type Tuple struct {
	Elements []Object
}

func (t *Tuple) Type() ObjectType { return TUPLE_OBJ }
func (t *Tuple) Inspect() string {
	out := "(" + inspectAll(t.Elements)
	if len(t.Elements) == 1 {
		out += ","
	}
	return out + ")"
}

// List is an immutable sequence; operations build new lists.
type List struct {
	Elements []Object
}

// NewList creates a new List from a slice of Objects
func NewList(elements []Object) *List {
	if elements == nil {
		elements = []Object{}
	}
	return &List{Elements: elements}
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string  { return "[" + inspectAll(l.Elements) + "]" }
func (l *List) Len() int         { return len(l.Elements) }

func inspectAll(objs []Object) string {
	parts := make([]string, len(objs))
	for i, o := range objs {
		parts[i] = o.Inspect()
	}
	return strings.Join(parts, ", ")
}
