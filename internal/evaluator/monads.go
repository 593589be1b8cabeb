package evaluator

import (
	"github.com/funvibe/mcomp/internal/config"
	"github.com/funvibe/mcomp/internal/diagnostics"
	"github.com/funvibe/mcomp/pkg/monad"
)

// Monad is a monad descriptor: the two operations a rewritten comprehension
// calls. k passed to Bind is any callable value; apply it with
// e.ApplyFunction. Failures are returned as *Error objects.
type Monad interface {
	Name() string
	Unit(e *Evaluator, v Object) Object
	Bind(e *Evaluator, m Object, k Object) Object
}

// Zeroer is implemented by monads with an empty value, which is what a
// false guard evaluates to.
type Zeroer interface {
	Zero(e *Evaluator) Object
}

// ListMonad: Unit(x) = [x], Bind(xs, k) = concat(map(k, xs)). Bind walks
// anything a plain comprehension generator can walk.
type ListMonad struct{}

func (ListMonad) Name() string { return config.ListMonadName }

func (ListMonad) Unit(e *Evaluator, v Object) Object {
	return NewList([]Object{v})
}

func (ListMonad) Bind(e *Evaluator, m Object, k Object) Object {
	xs, ok := iterableElements(m)
	if !ok {
		return NewContractError("List.bind expects a List, got %s", TypeName(m))
	}
	out, err := monad.FlatMapErr(xs, func(x Object) ([]Object, error) {
		r := e.ApplyFunction(k, []Object{x})
		switch r := r.(type) {
		case *Error:
			return nil, r
		case *List:
			return r.Elements, nil
		default:
			return nil, NewContractError("List.bind continuation returned %s, expected List", TypeName(r))
		}
	})
	if err != nil {
		return err.(*Error)
	}
	return NewList(out)
}

func (ListMonad) Zero(e *Evaluator) Object { return NewList(nil) }

// OptionMonad: Bind(None, k) = None, Bind(Some(x), k) = k(x).
type OptionMonad struct{}

func (OptionMonad) Name() string { return config.OptionMonadName }

func (OptionMonad) Unit(e *Evaluator, v Object) Object { return NewSome(v) }

func (OptionMonad) Bind(e *Evaluator, m Object, k Object) Object {
	d, ok := m.(*DataInstance)
	switch {
	case ok && d.Is(config.NoneCtorName):
		return d
	case ok && d.Is(config.SomeCtorName):
		return e.ApplyFunction(k, []Object{d.Fields[0]})
	}
	return NewContractError("Option.bind expects Some or None, got %s", m.Inspect())
}

func (OptionMonad) Zero(e *Evaluator) Object { return NewNone() }

// ResultMonad: Bind(Fail(err), k) = Fail(err), Bind(Ok(x), k) = k(x).
type ResultMonad struct{}

func (ResultMonad) Name() string { return config.ResultMonadName }

func (ResultMonad) Unit(e *Evaluator, v Object) Object { return NewOk(v) }

func (ResultMonad) Bind(e *Evaluator, m Object, k Object) Object {
	d, ok := m.(*DataInstance)
	switch {
	case ok && d.Is(config.FailCtorName):
		return d
	case ok && d.Is(config.OkCtorName):
		return e.ApplyFunction(k, []Object{d.Fields[0]})
	}
	return NewContractError("Result.bind expects Ok or Fail, got %s", m.Inspect())
}

// IdentityMonad: Unit(x) = x, Bind(m, k) = k(m).
type IdentityMonad struct{}

func (IdentityMonad) Name() string { return config.IdentityMonadName }

func (IdentityMonad) Unit(e *Evaluator, v Object) Object { return v }

func (IdentityMonad) Bind(e *Evaluator, m Object, k Object) Object {
	return e.ApplyFunction(k, []Object{m})
}

// FuncMonad is a monad assembled from script values. Missing operations are
// only reported when they are first needed.
type FuncMonad struct {
	Label  string
	UnitFn Object // callable or nil
	BindFn Object // callable or nil
	ZeroV  Object // zero value or nil
}

func (f *FuncMonad) Name() string {
	if f.Label == "" {
		return "anonymous"
	}
	return f.Label
}

func (f *FuncMonad) Unit(e *Evaluator, v Object) Object {
	if f.UnitFn == nil {
		return NewContractError("monad %s has no unit operation", f.Name())
	}
	return e.ApplyFunction(f.UnitFn, []Object{v})
}

func (f *FuncMonad) Bind(e *Evaluator, m Object, k Object) Object {
	if f.BindFn == nil {
		return NewContractError("monad %s has no bind operation", f.Name())
	}
	return e.ApplyFunction(f.BindFn, []Object{m, k})
}

func (f *FuncMonad) Zero(e *Evaluator) Object {
	if f.ZeroV == nil {
		return NewContractError("monad %s has no zero, so guards cannot fail", f.Name())
	}
	return f.ZeroV
}

// BindOperations returns the builtins the rewritten body calls, bound to
// m under the given names. Failures raised by the monad itself are
// reported as contract violations; failures raised by the continuation
// pass through unchanged.
func BindOperations(m Monad, bindName, unitName, guardName string) map[string]Object {
	ops := map[string]Object{
		bindName: &Builtin{Name: bindName, Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 2 {
				return newError("%s expects 2 arguments, got %d", bindName, len(args))
			}
			var fromK *Error
			k := &Builtin{Name: "continuation", Fn: func(e *Evaluator, a ...Object) Object {
				r := e.ApplyFunction(args[1], a)
				if err, ok := r.(*Error); ok {
					fromK = err
				}
				return r
			}}
			return contractFailure(m, "bind", m.Bind(e, args[0], k), fromK)
		}},
		unitName: &Builtin{Name: unitName, Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 1 {
				return newError("%s expects 1 argument, got %d", unitName, len(args))
			}
			return contractFailure(m, "unit", m.Unit(e, args[0]), nil)
		}},
	}
	if guardName != "" {
		ops[guardName] = &Builtin{Name: guardName, Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 1 {
				return newError("%s expects 1 argument, got %d", guardName, len(args))
			}
			cond, ok := args[0].(*Boolean)
			if !ok {
				return newError("filter condition must be Bool, got %s", TypeName(args[0]))
			}
			if cond.Value {
				return contractFailure(m, "unit", m.Unit(e, NIL), nil)
			}
			z, ok := m.(Zeroer)
			if !ok {
				return NewContractError("monad %s has no zero, so guards cannot fail", m.Name())
			}
			return contractFailure(m, "zero", z.Zero(e), nil)
		}}
	}
	return ops
}

func contractFailure(m Monad, op string, result Object, passthrough *Error) Object {
	if result == nil {
		return NewContractError("monad %s: %s returned no value", m.Name(), op)
	}
	err, ok := result.(*Error)
	if !ok || err == passthrough {
		return result
	}
	if err.Code == "" || err.Code == diagnostics.ErrR001 {
		err.Code = diagnostics.ErrC004
		err.Message = "monad " + m.Name() + ": " + op + " failed: " + err.Message
	}
	return err
}
