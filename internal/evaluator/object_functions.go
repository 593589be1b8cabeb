package evaluator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/funvibe/mcomp/internal/ast"
)

// Function is a user-defined function: either a named declaration (Body) or
// a lambda (Expr).
type Function struct {
	Name       string // Function name (empty for lambdas)
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Expr       ast.Expression
	Env        *Environment
	// Decl is the declaration the function was instantiated from.
	Decl *ast.FunctionDeclaration
	// Source is the literal text of the declaration, empty when the function
	// was not built from source text.
	Source string
	// ID distinguishes function values built from the same declaration,
	// e.g. one source rewritten against two monads.
	ID     uuid.UUID
	Line   int // Source location for stack traces
	Column int
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	params := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = p.Value
	}
	if f.Name == "" {
		return fmt.Sprintf("\\%s -> ...", strings.Join(params, ", "))
	}
	return fmt.Sprintf("fun %s(%s)", f.Name, strings.Join(params, ", "))
}

// HasSource reports whether the literal declaration text is available.
func (f *Function) HasSource() bool { return strings.TrimSpace(f.Source) != "" }

// ParamNames returns the parameter names in order.
func (f *Function) ParamNames() []string {
	names := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		names[i] = p.Value
	}
	return names
}

type BuiltinFunction func(e *Evaluator, args ...Object) Object

type Builtin struct {
	Fn   BuiltinFunction
	Name string // Name of the builtin
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin " + b.Name }

// MonadObject makes a monad descriptor a first-class value so scripts can
// pass it to decorators.
type MonadObject struct {
	Monad Monad
}

func (m *MonadObject) Type() ObjectType { return MONAD_OBJ }
func (m *MonadObject) Inspect() string  { return "<monad " + m.Monad.Name() + ">" }

// HostObject carries a host value the script cannot inspect.
type HostObject struct {
	Value interface{}
}

func (h *HostObject) Type() ObjectType { return HOST_OBJ }
func (h *HostObject) Inspect() string  { return fmt.Sprintf("<host %T>", h.Value) }
