package evaluator

import (
	"github.com/funvibe/mcomp/internal/ast"
)

func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *Environment) Object {
	function := e.Eval(node.Function, env)
	if isError(function) {
		return function
	}
	args, errObj := e.evalExpressions(node.Arguments, env)
	if errObj != nil {
		return errObj
	}

	result := e.ApplyFunction(function, args)
	if err, ok := result.(*Error); ok && err.Line == 0 {
		err.Line, err.Column = node.Token.Line, node.Token.Column
	}
	return result
}

// ApplyFunction applies a function to arguments.
func (e *Evaluator) ApplyFunction(fn Object, args []Object) Object {
	switch fn := fn.(type) {
	case *Function:
		if len(args) != len(fn.Parameters) {
			name := fn.Name
			if name == "" {
				name = "lambda"
			}
			return newError("%s expects %d arguments, got %d", name, len(fn.Parameters), len(args))
		}
		if len(e.CallStack) >= MaxCallDepth {
			return e.attachStack(newError("maximum call depth %d exceeded", MaxCallDepth))
		}

		callEnv := NewEnclosedEnvironment(fn.Env)
		for i, param := range fn.Parameters {
			if param.Value == "_" {
				continue
			}
			callEnv.Set(param.Value, args[i])
		}

		name := fn.Name
		if name == "" {
			name = "<lambda>"
		}
		e.PushCall(name, fn.Line, fn.Column)
		defer e.PopCall()

		var result Object
		if fn.Body != nil {
			result = e.evalBlockStatement(fn.Body, callEnv)
		} else {
			result = e.Eval(fn.Expr, callEnv)
		}
		if err, ok := result.(*Error); ok {
			return e.attachStack(err)
		}
		return result

	case *Builtin:
		result := fn.Fn(e, args...)
		if result == nil {
			return NewContractError("%s returned no value", fn.Name)
		}
		return result
	}

	return newError("not a function: %s", TypeName(fn))
}
