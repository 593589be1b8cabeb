package evaluator

import (
	"fmt"
	"strings"

	"github.com/funvibe/mcomp/internal/config"
)

var Builtins = map[string]*Builtin{
	config.PrintFuncName: {
		Name: config.PrintFuncName,
		Fn: func(e *Evaluator, args ...Object) Object {
			parts := make([]string, len(args))
			for i, arg := range args {
				// Strings print unquoted at the top level
				if s, ok := arg.(*String); ok {
					parts[i] = s.Value
					continue
				}
				parts[i] = arg.Inspect()
			}
			_, _ = fmt.Fprintln(e.Out, strings.Join(parts, " "))
			return NIL
		},
	},
	config.ShowFuncName: {
		Name: config.ShowFuncName,
		Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 1 {
				return newError("show expects 1 argument, got %d", len(args))
			}
			return &String{Value: args[0].Inspect()}
		},
	},
	config.LenFuncName: {
		Name: config.LenFuncName,
		Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 1 {
				return newError("len expects 1 argument, got %d", len(args))
			}
			switch arg := args[0].(type) {
			case *List:
				return &Integer{Value: int64(len(arg.Elements))}
			case *Tuple:
				return &Integer{Value: int64(len(arg.Elements))}
			case *String:
				return &Integer{Value: int64(len([]rune(arg.Value)))}
			}
			return newError("len not supported for %s", TypeName(args[0]))
		},
	},
	config.RangeFuncName: {
		Name: config.RangeFuncName,
		Fn: func(e *Evaluator, args ...Object) Object {
			var start, end int64
			switch len(args) {
			case 1:
				n, ok := args[0].(*Integer)
				if !ok {
					return newError("range expects Int, got %s", TypeName(args[0]))
				}
				end = n.Value
			case 2:
				a, ok1 := args[0].(*Integer)
				b, ok2 := args[1].(*Integer)
				if !ok1 || !ok2 {
					return newError("range expects Int bounds, got %s and %s", TypeName(args[0]), TypeName(args[1]))
				}
				start, end = a.Value, b.Value
			default:
				return newError("range expects 1 or 2 arguments, got %d", len(args))
			}
			if end < start {
				return NewList(nil)
			}
			if span := uint64(end) - uint64(start); span > MaxRangeLength {
				return newError("range(%d, %d) exceeds %d elements", start, end, MaxRangeLength)
			}
			out := make([]Object, 0, end-start)
			for i := start; i < end; i++ {
				out = append(out, &Integer{Value: i})
			}
			return NewList(out)
		},
	},
	config.ConcatFuncName: {
		Name: config.ConcatFuncName,
		Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 1 {
				return newError("concat expects 1 argument, got %d", len(args))
			}
			outer, ok := args[0].(*List)
			if !ok {
				return newError("concat expects a List of Lists, got %s", TypeName(args[0]))
			}
			var out []Object
			for _, el := range outer.Elements {
				inner, ok := el.(*List)
				if !ok {
					return newError("concat expects a List of Lists, found element %s", TypeName(el))
				}
				out = append(out, inner.Elements...)
			}
			return NewList(out)
		},
	},
	config.MapFuncName: {
		Name: config.MapFuncName,
		Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 2 {
				return newError("map expects 2 arguments, got %d", len(args))
			}
			xs, ok := args[1].(*List)
			if !ok {
				return newError("map expects a List, got %s", TypeName(args[1]))
			}
			out := make([]Object, len(xs.Elements))
			for i, x := range xs.Elements {
				r := e.ApplyFunction(args[0], []Object{x})
				if isError(r) {
					return r
				}
				out[i] = r
			}
			return NewList(out)
		},
	},
	config.SomeCtorName: {
		Name: config.SomeCtorName,
		Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 1 {
				return newError("Some expects 1 argument, got %d", len(args))
			}
			return NewSome(args[0])
		},
	},
	config.OkCtorName: {
		Name: config.OkCtorName,
		Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 1 {
				return newError("Ok expects 1 argument, got %d", len(args))
			}
			return NewOk(args[0])
		},
	},
	config.FailCtorName: {
		Name: config.FailCtorName,
		Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) != 1 {
				return newError("Fail expects 1 argument, got %d", len(args))
			}
			return NewFail(args[0])
		},
	},
	// monad(unit, bind[, zero]) assembles a monad from script functions.
	// nil stands for a missing operation.
	config.MonadFuncName: {
		Name: config.MonadFuncName,
		Fn: func(e *Evaluator, args ...Object) Object {
			if len(args) < 1 || len(args) > 3 {
				return newError("monad expects 1 to 3 arguments, got %d", len(args))
			}
			m := &FuncMonad{}
			ops := []*Object{&m.UnitFn, &m.BindFn, &m.ZeroV}
			for i, arg := range args {
				if _, isNil := arg.(*Nil); isNil {
					continue
				}
				if i < 2 && !isCallable(arg) {
					return newError("monad: %s must be a function, got %s", []string{"unit", "bind"}[i], TypeName(arg))
				}
				*ops[i] = arg
			}
			return &MonadObject{Monad: m}
		},
	},
}

// Monads are the predefined monad descriptors, by script name.
var Monads = map[string]Monad{
	config.ListMonadName:     ListMonad{},
	config.OptionMonadName:   OptionMonad{},
	config.ResultMonadName:   ResultMonad{},
	config.IdentityMonadName: IdentityMonad{},
}

// RegisterBuiltins binds the builtin functions, constructors and monads
// in env.
func RegisterBuiltins(env *Environment) {
	for name, b := range Builtins {
		env.Set(name, b)
	}
	for name, m := range Monads {
		env.Set(name, &MonadObject{Monad: m})
	}
	env.Set(config.NoneCtorName, NewNone())
}

func isCallable(obj Object) bool {
	switch obj.(type) {
	case *Function, *Builtin:
		return true
	}
	return false
}
