package evaluator

import (
	"github.com/funvibe/mcomp/internal/ast"
)

// evalFunctionDeclaration binds a declared function, running its decorators
// first. Decorators apply bottom-up: the one nearest to `fun` sees the plain
// function, the outermost one sees the result of the others. If any
// decorator fails nothing is bound.
func (e *Evaluator) evalFunctionDeclaration(node *ast.FunctionDeclaration, env *Environment) Object {
	var result Object = Instantiate(node, env, e.sourceOf(node))

	for i := len(node.Decorators) - 1; i >= 0; i-- {
		dec := node.Decorators[i]
		impl, ok := e.Decorators[dec.Name.Value]
		if !ok {
			return newErrorWithLocation(dec.Token.Line, dec.Token.Column, "unknown decorator @%s", dec.Name.Value)
		}
		args, errObj := e.evalExpressions(dec.Arguments, env)
		if errObj != nil {
			return errObj
		}
		target, ok := result.(*Function)
		if !ok {
			return newErrorWithLocation(dec.Token.Line, dec.Token.Column,
				"decorator @%s expects a function, got %s", dec.Name.Value, TypeName(result))
		}
		result = impl(e, target, args, dec)
		if isError(result) {
			return result
		}
	}

	env.Set(node.Name.Value, result)
	return NIL
}

func (e *Evaluator) sourceOf(node *ast.FunctionDeclaration) string {
	if node.Start < 0 || node.End <= node.Start || node.End > len(e.Source) {
		return ""
	}
	return e.Source[node.Start:node.End]
}
