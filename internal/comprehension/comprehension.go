// Package comprehension rewrites script functions whose body is a single
// list comprehension into a chain of monadic bind/unit calls, and installs
// the decorator that triggers the rewrite.
package comprehension

import (
	"errors"
	"fmt"
	"strings"

	"github.com/funvibe/mcomp/internal/ast"
	"github.com/funvibe/mcomp/internal/config"
	"github.com/funvibe/mcomp/internal/diagnostics"
	"github.com/funvibe/mcomp/internal/evaluator"
	"github.com/funvibe/mcomp/internal/parser"
	"github.com/funvibe/mcomp/internal/prettyprinter"
	"github.com/funvibe/mcomp/internal/rewriter"
	"github.com/funvibe/mcomp/internal/token"
)

// Options control how a function is rewritten.
type Options struct {
	// Decorator is the decorator name Install registers.
	Decorator string
	Names     rewriter.Names
	Filters   config.FilterMode
}

// DefaultOptions mirrors config.Default().
func DefaultOptions() Options {
	return FromConfig(config.Default())
}

// FromConfig derives options from a loaded configuration.
func FromConfig(cfg *config.Config) Options {
	return Options{
		Decorator: cfg.Decorator,
		Names: rewriter.Names{
			Bind:  cfg.Names.Bind,
			Unit:  cfg.Names.Unit,
			Guard: cfg.Names.Guard,
		},
		Filters: cfg.Filters,
	}
}

func (o Options) withDefaults() Options {
	def := rewriter.DefaultNames()
	if o.Names.Bind == "" {
		o.Names.Bind = def.Bind
	}
	if o.Names.Unit == "" {
		o.Names.Unit = def.Unit
	}
	if o.Names.Guard == "" {
		o.Names.Guard = def.Guard
	}
	if o.Filters == "" {
		o.Filters = config.FilterReject
	}
	if o.Decorator == "" {
		o.Decorator = config.DecoratorName
	}
	return o
}

// Transform returns a new function with the same name and parameters as fn
// whose body runs the bind/unit chain of m instead of iterating directly.
//
// The steps are: recover fn's source text, parse it, rewrite the body,
// check the rewritten declaration, and instantiate it in fn's enclosing
// environment extended with m's operations. fn is never modified and no
// partial result is returned on failure.
func Transform(fn *evaluator.Function, m evaluator.Monad, opts Options) (*evaluator.Function, error) {
	opts = opts.withDefaults()
	if m == nil {
		return nil, errors.New("comprehension: nil monad")
	}

	name := functionName(fn)
	if fn == nil || !fn.HasSource() {
		var at token.Token
		if fn != nil {
			at = token.Token{Line: fn.Line, Column: fn.Column}
		}
		return nil, diagnostics.NewError(diagnostics.ErrC001, at,
			"source text is not available; only functions declared from source can be rewritten").InFunction(name)
	}

	decl, err := parseDeclaration(fn)
	if err != nil {
		return nil, fmt.Errorf("%w: in function %s: source does not parse as a single declaration: %w",
			diagnostics.ErrSourceUnavailable, name, err)
	}

	rewritten, err := rewriter.NewTransformer(opts.Names, opts.Filters).TransformFunction(decl)
	if err != nil {
		return nil, err
	}

	if err := evaluator.Compile(rewritten, opts.Names.Reserved()); err != nil {
		return nil, err
	}

	ops := evaluator.BindOperations(m, opts.Names.Bind, opts.Names.Unit, opts.Names.Guard)
	env := fn.Env
	if env == nil {
		env = evaluator.NewEnvironment()
	}

	out := evaluator.Instantiate(rewritten, env.Extend(ops), prettyprinter.Print(rewritten))
	out.Line, out.Column = fn.Line, fn.Column
	return out, nil
}

// parseDeclaration parses the source text of fn. The text is padded so
// that token positions, and with them every diagnostic and stack frame of
// the rewritten function, refer to the file fn was declared in.
func parseDeclaration(fn *evaluator.Function) (*ast.FunctionDeclaration, error) {
	decl, err := parser.ParseFunction(fn.Source)
	if err != nil {
		return nil, err
	}
	if shift := fn.Line - decl.Token.Line; shift > 0 {
		return parser.ParseFunction(strings.Repeat("\n", shift) + fn.Source)
	}
	return decl, nil
}

func functionName(fn *evaluator.Function) string {
	if fn == nil || fn.Name == "" {
		return "<lambda>"
	}
	return fn.Name
}
