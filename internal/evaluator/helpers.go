package evaluator

import (
	"fmt"

	"github.com/funvibe/mcomp/internal/ast"
	"github.com/funvibe/mcomp/internal/diagnostics"
)

func newError(format string, a ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, a...)}
}

func newErrorWithLocation(line, column int, format string, a ...interface{}) *Error {
	return &Error{
		Message: fmt.Sprintf(format, a...),
		Line:    line,
		Column:  column,
	}
}

// NewContractError reports a monad that does not honour the unit/bind
// contract.
func NewContractError(format string, a ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, a...), Code: diagnostics.ErrC004}
}

func isError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR_OBJ
	}
	return false
}

// PushCall adds a call frame to the stack
func (e *Evaluator) PushCall(name string, line, column int) {
	e.CallStack = append(e.CallStack, CallFrame{
		Name:   name,
		File:   e.CurrentFile,
		Line:   line,
		Column: column,
	})
}

// PopCall removes the top frame from the stack
func (e *Evaluator) PopCall() {
	if len(e.CallStack) > 0 {
		e.CallStack = e.CallStack[:len(e.CallStack)-1]
	}
}

// attachStack records the current call stack on err if it has none yet.
func (e *Evaluator) attachStack(err *Error) *Error {
	if len(err.StackTrace) > 0 || len(e.CallStack) == 0 {
		return err
	}
	err.StackTrace = make([]StackFrame, len(e.CallStack))
	for i, f := range e.CallStack {
		err.StackTrace[i] = StackFrame(f)
	}
	return err
}

func (e *Evaluator) isTruthy(obj Object) bool {
	switch obj := obj.(type) {
	case *Boolean:
		return obj.Value
	default:
		return false
	}
}

func (e *Evaluator) evalExpressions(exps []ast.Expression, env *Environment) ([]Object, *Error) {
	result := make([]Object, 0, len(exps))
	for _, exp := range exps {
		evaluated := e.Eval(exp, env)
		if err, ok := evaluated.(*Error); ok {
			return nil, err
		}
		result = append(result, evaluated)
	}
	return result, nil
}

// ObjectsEqual compares two values structurally.
func ObjectsEqual(a, b Object) bool {
	switch av := a.(type) {
	case *Integer:
		switch bv := b.(type) {
		case *Integer:
			return av.Value == bv.Value
		case *Float:
			return float64(av.Value) == bv.Value
		}
		return false
	case *Float:
		switch bv := b.(type) {
		case *Float:
			return av.Value == bv.Value
		case *Integer:
			return av.Value == float64(bv.Value)
		}
		return false
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *Boolean:
		bv, ok := b.(*Boolean)
		return ok && av.Value == bv.Value
	case *Nil:
		_, ok := b.(*Nil)
		return ok
	case *Tuple:
		bv, ok := b.(*Tuple)
		return ok && elementsEqual(av.Elements, bv.Elements)
	case *List:
		bv, ok := b.(*List)
		return ok && elementsEqual(av.Elements, bv.Elements)
	case *DataInstance:
		bv, ok := b.(*DataInstance)
		return ok && av.Name == bv.Name && av.TypeName == bv.TypeName && elementsEqual(av.Fields, bv.Fields)
	}
	return a == b
}

func elementsEqual(a, b []Object) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ObjectsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
