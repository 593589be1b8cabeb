package evaluator

import (
	"math"

	"github.com/funvibe/mcomp/internal/ast"
)

func (e *Evaluator) evalPrefixExpression(node *ast.PrefixExpression, right Object) Object {
	switch node.Operator {
	case "!":
		switch r := right.(type) {
		case *Boolean:
			return nativeBoolToBooleanObject(!r.Value)
		case *Nil:
			return TRUE
		}
		return newErrorWithLocation(node.Token.Line, node.Token.Column, "operator ! not supported for %s", TypeName(right))
	case "-":
		switch r := right.(type) {
		case *Integer:
			return &Integer{Value: -r.Value}
		case *Float:
			return &Float{Value: -r.Value}
		}
		return newErrorWithLocation(node.Token.Line, node.Token.Column, "operator - not supported for %s", TypeName(right))
	}
	return newErrorWithLocation(node.Token.Line, node.Token.Column, "unknown operator: %s%s", node.Operator, TypeName(right))
}

func (e *Evaluator) evalInfixExpression(node *ast.InfixExpression, env *Environment) Object {
	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}

	// Short-circuit logic operators
	switch node.Operator {
	case "&&":
		if !e.isTruthy(left) {
			return FALSE
		}
		right := e.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return nativeBoolToBooleanObject(e.isTruthy(right))
	case "||":
		if e.isTruthy(left) {
			return TRUE
		}
		right := e.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return nativeBoolToBooleanObject(e.isTruthy(right))
	}

	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}

	result := e.applyOperator(node.Operator, left, right)
	if err, ok := result.(*Error); ok && err.Line == 0 {
		err.Line, err.Column = node.Token.Line, node.Token.Column
	}
	return result
}

func (e *Evaluator) applyOperator(op string, left, right Object) Object {
	switch op {
	case "==":
		return nativeBoolToBooleanObject(ObjectsEqual(left, right))
	case "!=":
		return nativeBoolToBooleanObject(!ObjectsEqual(left, right))
	case "++":
		return concatValues(left, right)
	}

	switch l := left.(type) {
	case *Integer:
		switch r := right.(type) {
		case *Integer:
			return integerOperator(op, l.Value, r.Value)
		case *Float:
			return floatOperator(op, float64(l.Value), r.Value)
		}
	case *Float:
		switch r := right.(type) {
		case *Integer:
			return floatOperator(op, l.Value, float64(r.Value))
		case *Float:
			return floatOperator(op, l.Value, r.Value)
		}
	case *String:
		if r, ok := right.(*String); ok {
			return stringOperator(op, l.Value, r.Value)
		}
	case *List:
		if _, ok := right.(*List); ok && op == "+" {
			return concatValues(left, right)
		}
	}
	return newError("operator %s not supported for %s and %s", op, TypeName(left), TypeName(right))
}

func integerOperator(op string, l, r int64) Object {
	switch op {
	case "+":
		return &Integer{Value: l + r}
	case "-":
		return &Integer{Value: l - r}
	case "*":
		return &Integer{Value: l * r}
	case "/":
		if r == 0 {
			return newError("division by zero")
		}
		return &Integer{Value: l / r}
	case "%":
		if r == 0 {
			return newError("division by zero")
		}
		return &Integer{Value: l % r}
	case "<":
		return nativeBoolToBooleanObject(l < r)
	case "<=":
		return nativeBoolToBooleanObject(l <= r)
	case ">":
		return nativeBoolToBooleanObject(l > r)
	case ">=":
		return nativeBoolToBooleanObject(l >= r)
	}
	return newError("operator %s not supported for Int", op)
}

func floatOperator(op string, l, r float64) Object {
	switch op {
	case "+":
		return &Float{Value: l + r}
	case "-":
		return &Float{Value: l - r}
	case "*":
		return &Float{Value: l * r}
	case "/":
		return &Float{Value: l / r}
	case "%":
		return &Float{Value: math.Mod(l, r)}
	case "<":
		return nativeBoolToBooleanObject(l < r)
	case "<=":
		return nativeBoolToBooleanObject(l <= r)
	case ">":
		return nativeBoolToBooleanObject(l > r)
	case ">=":
		return nativeBoolToBooleanObject(l >= r)
	}
	return newError("operator %s not supported for Float", op)
}

func stringOperator(op string, l, r string) Object {
	switch op {
	case "+":
		return &String{Value: l + r}
	case "<":
		return nativeBoolToBooleanObject(l < r)
	case "<=":
		return nativeBoolToBooleanObject(l <= r)
	case ">":
		return nativeBoolToBooleanObject(l > r)
	case ">=":
		return nativeBoolToBooleanObject(l >= r)
	}
	return newError("operator %s not supported for String", op)
}

func concatValues(left, right Object) Object {
	switch l := left.(type) {
	case *List:
		if r, ok := right.(*List); ok {
			out := make([]Object, 0, len(l.Elements)+len(r.Elements))
			out = append(out, l.Elements...)
			return NewList(append(out, r.Elements...))
		}
	case *String:
		if r, ok := right.(*String); ok {
			return &String{Value: l.Value + r.Value}
		}
	}
	return newError("operator ++ not supported for %s and %s", TypeName(left), TypeName(right))
}

func (e *Evaluator) evalIfExpression(node *ast.IfExpression, env *Environment) Object {
	cond := e.Eval(node.Condition, env)
	if isError(cond) {
		return cond
	}
	if _, ok := cond.(*Boolean); !ok {
		return newErrorWithLocation(node.Token.Line, node.Token.Column, "if condition must be Bool, got %s", TypeName(cond))
	}
	if e.isTruthy(cond) {
		return e.evalBlockStatement(node.Consequence, NewEnclosedEnvironment(env))
	}
	if node.Alternative != nil {
		return e.evalBlockStatement(node.Alternative, NewEnclosedEnvironment(env))
	}
	return NIL
}
