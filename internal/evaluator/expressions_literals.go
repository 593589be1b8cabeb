package evaluator

import (
	"github.com/funvibe/mcomp/internal/ast"
)

func (e *Evaluator) evalTupleLiteral(node *ast.TupleLiteral, env *Environment) Object {
	elements, errObj := e.evalExpressions(node.Elements, env)
	if errObj != nil {
		return errObj
	}
	return &Tuple{Elements: elements}
}

func (e *Evaluator) evalListLiteral(node *ast.ListLiteral, env *Environment) Object {
	elements, errObj := e.evalExpressions(node.Elements, env)
	if errObj != nil {
		return errObj
	}
	return NewList(elements)
}

// evalListComprehension evaluates [output | clauses] directly, without any
// monad: generators nest left to right and filters drop environments.
func (e *Evaluator) evalListComprehension(node *ast.ListComprehension, env *Environment) Object {
	// Start with a single empty environment (representing one "iteration")
	envs := []*Environment{NewEnclosedEnvironment(env)}

	for _, clause := range node.Clauses {
		switch c := clause.(type) {
		case *ast.CompGenerator:
			var newEnvs []*Environment
			for _, currentEnv := range envs {
				iterable := e.Eval(c.Iterable, currentEnv)
				if isError(iterable) {
					return iterable
				}

				elements, ok := iterableElements(iterable)
				if !ok {
					return newErrorWithLocation(c.Token.Line, c.Token.Column, "cannot iterate over %s", TypeName(iterable))
				}

				for _, elem := range elements {
					newEnv := NewEnclosedEnvironment(currentEnv)
					if !bindPattern(c.Pattern, elem, newEnv) {
						continue // Pattern didn't match, skip this element
					}
					newEnvs = append(newEnvs, newEnv)
				}
			}
			envs = newEnvs

		case *ast.CompFilter:
			var newEnvs []*Environment
			for _, currentEnv := range envs {
				cond := e.Eval(c.Condition, currentEnv)
				if isError(cond) {
					return cond
				}
				b, ok := cond.(*Boolean)
				if !ok {
					return newErrorWithLocation(c.Token.Line, c.Token.Column, "filter condition must be Bool, got %s", TypeName(cond))
				}
				if b.Value {
					newEnvs = append(newEnvs, currentEnv)
				}
			}
			envs = newEnvs
		}
	}

	results := make([]Object, 0, len(envs))
	for _, currentEnv := range envs {
		result := e.Eval(node.Output, currentEnv)
		if isError(result) {
			return result
		}
		results = append(results, result)
	}
	return NewList(results)
}

// iterableElements extracts the elements a generator walks over.
func iterableElements(obj Object) ([]Object, bool) {
	switch o := obj.(type) {
	case *List:
		return o.Elements, true
	case *Tuple:
		return o.Elements, true
	case *String:
		runes := []rune(o.Value)
		out := make([]Object, len(runes))
		for i, r := range runes {
			out[i] = &String{Value: string(r)}
		}
		return out, true
	}
	return nil, false
}

// bindPattern binds val to pattern in env, reporting whether it matched.
func bindPattern(pattern ast.Pattern, val Object, env *Environment) bool {
	switch p := pattern.(type) {
	case *ast.WildcardPattern:
		return true
	case *ast.IdentifierPattern:
		env.Set(p.Value, val)
		return true
	case *ast.TuplePattern:
		tuple, ok := val.(*Tuple)
		if !ok || len(tuple.Elements) != len(p.Elements) {
			return false
		}
		for i, el := range p.Elements {
			if !bindPattern(el, tuple.Elements[i], env) {
				return false
			}
		}
		return true
	}
	return false
}
