package evaluator

import (
	"io"
	"os"

	"github.com/funvibe/mcomp/internal/ast"
)

// MaxCallDepth bounds recursion of script functions.
const MaxCallDepth = 10000

// MaxRangeLength bounds the lists range builds.
const MaxRangeLength = 1 << 24

// CallFrame represents a single frame in the call stack
type CallFrame struct {
	Name   string // Function name
	File   string // Source file
	Line   int    // Line number
	Column int    // Column number
}

// DecoratorFunc applies a decorator to a freshly declared function. It
// returns the object to bind in place of fn, or an *Error.
type DecoratorFunc func(e *Evaluator, fn *Function, args []Object, node *ast.Decorator) Object

type Evaluator struct {
	Out io.Writer
	// Decorators maps decorator names to their implementation.
	Decorators map[string]DecoratorFunc
	// CallStack for stack traces on errors
	CallStack []CallFrame
	// CurrentFile being evaluated
	CurrentFile string
	// Source is the text the evaluated program was parsed from. Declared
	// functions keep the slice of it that spells their declaration.
	Source string
}

func New() *Evaluator {
	return &Evaluator{
		Out:        os.Stdout,
		Decorators: make(map[string]DecoratorFunc),
	}
}

// Eval evaluates node in env. Failures come back as *Error values.
func (e *Evaluator) Eval(node ast.Node, env *Environment) Object {
	switch node := node.(type) {
	// Statements
	case *ast.Program:
		return e.evalProgram(node, env)
	case *ast.BlockStatement:
		return e.evalBlockStatement(node, env)
	case *ast.ExpressionStatement:
		return e.Eval(node.Expression, env)
	case *ast.AssignStatement:
		val := e.Eval(node.Value, env)
		if isError(val) {
			return val
		}
		env.Set(node.Name.Value, val)
		return NIL
	case *ast.FunctionDeclaration:
		return e.evalFunctionDeclaration(node, env)

	// Expressions
	case *ast.IntegerLiteral:
		return &Integer{Value: node.Value}
	case *ast.FloatLiteral:
		return &Float{Value: node.Value}
	case *ast.StringLiteral:
		return &String{Value: node.Value}
	case *ast.BooleanLiteral:
		return nativeBoolToBooleanObject(node.Value)
	case *ast.NilLiteral:
		return NIL
	case *ast.Identifier:
		return e.evalIdentifier(node, env)
	case *ast.TupleLiteral:
		return e.evalTupleLiteral(node, env)
	case *ast.ListLiteral:
		return e.evalListLiteral(node, env)
	case *ast.ListComprehension:
		return e.evalListComprehension(node, env)
	case *ast.PrefixExpression:
		right := e.Eval(node.Right, env)
		if isError(right) {
			return right
		}
		return e.evalPrefixExpression(node, right)
	case *ast.InfixExpression:
		return e.evalInfixExpression(node, env)
	case *ast.IfExpression:
		return e.evalIfExpression(node, env)
	case *ast.FunctionLiteral:
		return &Function{
			Parameters: node.Parameters,
			Expr:       node.Body,
			Env:        env,
			Line:       node.Token.Line,
			Column:     node.Token.Column,
		}
	case *ast.CallExpression:
		return e.evalCallExpression(node, env)
	}

	return newError("cannot evaluate %T", node)
}

func (e *Evaluator) evalProgram(program *ast.Program, env *Environment) Object {
	var result Object = NIL
	for _, statement := range program.Statements {
		result = e.Eval(statement, env)
		if err, ok := result.(*Error); ok {
			return err
		}
	}
	return result
}

func (e *Evaluator) evalBlockStatement(block *ast.BlockStatement, env *Environment) Object {
	var result Object = NIL
	for _, statement := range block.Statements {
		result = e.Eval(statement, env)
		if isError(result) {
			return result
		}
	}
	return result
}

func (e *Evaluator) evalIdentifier(node *ast.Identifier, env *Environment) Object {
	if val, ok := env.Get(node.Value); ok {
		return val
	}
	return newErrorWithLocation(node.Token.Line, node.Token.Column, "identifier not found: %s", node.Value)
}
