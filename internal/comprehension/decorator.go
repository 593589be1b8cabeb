package comprehension

import (
	"errors"
	"fmt"

	"github.com/funvibe/mcomp/internal/ast"
	"github.com/funvibe/mcomp/internal/diagnostics"
	"github.com/funvibe/mcomp/internal/evaluator"
)

// Install registers the rewrite decorator on e. Scripts then write
//
//	@comprehend(List)
//	fun pairs(as, bs) { [(a, b) | a <- as, b <- bs] }
//
// and the declaration binds the rewritten function.
func Install(e *evaluator.Evaluator, opts Options) {
	opts = opts.withDefaults()
	e.Decorators[opts.Decorator] = func(e *evaluator.Evaluator, fn *evaluator.Function, args []evaluator.Object, node *ast.Decorator) evaluator.Object {
		if len(args) != 1 {
			return decoratorError(node, "@%s expects exactly one monad argument, got %d", opts.Decorator, len(args))
		}
		mo, ok := args[0].(*evaluator.MonadObject)
		if !ok {
			return decoratorError(node, "@%s expects a monad, got %s", opts.Decorator, evaluator.TypeName(args[0]))
		}

		out, err := Transform(fn, mo.Monad, opts)
		if err != nil {
			return toRuntimeError(err, node)
		}
		return out
	}
}

func decoratorError(node *ast.Decorator, format string, args ...interface{}) *evaluator.Error {
	return &evaluator.Error{Message: fmt.Sprintf(format, args...), Line: node.Token.Line, Column: node.Token.Column}
}

// toRuntimeError carries a rewrite failure through the evaluator, keeping
// its code so it can be turned back into the same diagnostic.
func toRuntimeError(err error, node *ast.Decorator) *evaluator.Error {
	if d, ok := err.(*diagnostics.DiagnosticError); ok {
		line, col := d.Token.Line, d.Token.Column
		if line == 0 {
			line, col = node.Token.Line, node.Token.Column
		}
		return &evaluator.Error{Message: d.Detail(), Code: d.Code, Line: line, Column: col}
	}
	code := diagnostics.ErrR001
	if errors.Is(err, diagnostics.ErrSourceUnavailable) {
		code = diagnostics.ErrC001
	}
	return &evaluator.Error{Message: err.Error(), Code: code, Line: node.Token.Line, Column: node.Token.Column}
}
