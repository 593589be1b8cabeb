package evaluator

import (
	"io"
	"path/filepath"

	"github.com/funvibe/mcomp/internal/pipeline"
)

type EvaluatorProcessor struct {
	Out io.Writer
	// Setup runs on the fresh evaluator before evaluation, e.g. to install
	// decorators.
	Setup func(e *Evaluator)
}

func (ep *EvaluatorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	eval := New()
	if ep.Out != nil {
		eval.Out = ep.Out
	}
	eval.Source = ctx.SourceCode
	if ctx.FilePath != "" {
		eval.CurrentFile = filepath.Base(ctx.FilePath)
	} else {
		eval.CurrentFile = "<stdin>"
	}
	if ep.Setup != nil {
		ep.Setup(eval)
	}

	env := NewEnvironment()
	RegisterBuiltins(env)

	result := eval.Eval(ctx.AstRoot, env)
	if err, ok := result.(*Error); ok {
		ctx.Errors = append(ctx.Errors, err.Diagnostic(ctx.FilePath))
	}
	return ctx
}
