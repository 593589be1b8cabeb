package comprehend

import (
	"errors"
	"fmt"

	"github.com/funvibe/mcomp/internal/evaluator"
)

// Funcs defines a monad with Go functions over Go values. A nil UnitFn or
// BindFn is reported as a contract violation when the rewritten function
// first needs it.
type Funcs struct {
	Name   string
	UnitFn func(v any) (any, error)
	BindFn func(m any, k func(any) (any, error)) (any, error)
	// ZeroFn is optional; it is only used by guards.
	ZeroFn func() (any, error)
}

// Custom turns f into a Monad.
func Custom(f Funcs) Monad {
	return &goMonad{f: f, m: NewMarshaller()}
}

type goMonad struct {
	f Funcs
	m *Marshaller
}

func (g *goMonad) Name() string {
	if g.f.Name == "" {
		return "custom"
	}
	return g.f.Name
}

func (g *goMonad) Unit(e *evaluator.Evaluator, v evaluator.Object) evaluator.Object {
	if g.f.UnitFn == nil {
		return evaluator.NewContractError("monad %s has no unit operation", g.Name())
	}
	x, err := g.m.FromValue(v, nil)
	if err != nil {
		return evaluator.NewContractError("monad %s: %s", g.Name(), err)
	}
	return g.result(g.f.UnitFn(x))
}

func (g *goMonad) Bind(e *evaluator.Evaluator, mv evaluator.Object, k evaluator.Object) evaluator.Object {
	if g.f.BindFn == nil {
		return evaluator.NewContractError("monad %s has no bind operation", g.Name())
	}
	x, err := g.m.FromValue(mv, nil)
	if err != nil {
		return evaluator.NewContractError("monad %s: %s", g.Name(), err)
	}
	cont := func(a any) (any, error) {
		arg, err := g.m.ToValue(a)
		if err != nil {
			return nil, err
		}
		return g.m.FromValue(e.ApplyFunction(k, []evaluator.Object{arg}), nil)
	}
	return g.result(g.f.BindFn(x, cont))
}

func (g *goMonad) Zero(e *evaluator.Evaluator) evaluator.Object {
	if g.f.ZeroFn == nil {
		return evaluator.NewContractError("monad %s has no zero, so guards cannot fail", g.Name())
	}
	return g.result(g.f.ZeroFn())
}

// result converts a Go result back. Script errors coming out of the
// continuation keep their identity so they are not blamed on the monad.
func (g *goMonad) result(v any, err error) evaluator.Object {
	if err != nil {
		var rerr *evaluator.Error
		if errors.As(err, &rerr) {
			return rerr
		}
		return &evaluator.Error{Message: err.Error()}
	}
	obj, err := g.m.ToValue(v)
	if err != nil {
		return &evaluator.Error{Message: fmt.Sprintf("monad %s: %s", g.Name(), err)}
	}
	return obj
}
