package rewriter

import (
	"errors"

	"github.com/funvibe/mcomp/internal/ast"
	"github.com/funvibe/mcomp/internal/config"
	"github.com/funvibe/mcomp/internal/diagnostics"
	"github.com/funvibe/mcomp/internal/pipeline"
	"github.com/funvibe/mcomp/internal/token"
)

// RewriterProcessor rewrites every top-level function carrying the
// configured decorator. It does not execute anything; it is the static
// counterpart of decoration used to inspect what a decorator would produce.
type RewriterProcessor struct {
	Transformer *Transformer
	Decorator   string
}

func NewProcessor(cfg *config.Config) *RewriterProcessor {
	names := Names{Bind: cfg.Names.Bind, Unit: cfg.Names.Unit, Guard: cfg.Names.Guard}
	return &RewriterProcessor{
		Transformer: NewTransformer(names, cfg.Filters),
		Decorator:   cfg.Decorator,
	}
}

func (rp *RewriterProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	for i, stmt := range ctx.AstRoot.Statements {
		fn, ok := stmt.(*ast.FunctionDeclaration)
		if !ok || !HasDecorator(fn, rp.Decorator) {
			continue
		}
		out, err := rp.Transformer.TransformFunction(fn)
		if err != nil {
			var de *diagnostics.DiagnosticError
			if !errors.As(err, &de) {
				de = diagnostics.NewError(diagnostics.ErrC002, fn.Token, err.Error())
			}
			de.File = ctx.FilePath
			ctx.Errors = append(ctx.Errors, de)
			continue
		}
		ctx.AstRoot.Statements[i] = out
	}
	return ctx
}

// HasDecorator reports whether fn carries a decorator with the given name.
func HasDecorator(fn *ast.FunctionDeclaration, name string) bool {
	for _, d := range fn.Decorators {
		if d.Name.Value == name {
			return true
		}
	}
	return false
}

// Position returns the token diagnostics for fn should point at.
func Position(fn *ast.FunctionDeclaration) token.Token {
	if len(fn.Decorators) > 0 {
		return fn.Decorators[0].Token
	}
	return fn.Token
}
