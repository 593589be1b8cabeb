package parser

import (
	"github.com/funvibe/mcomp/internal/ast"
	"github.com/funvibe/mcomp/internal/diagnostics"
	"github.com/funvibe/mcomp/internal/lexer"
	"github.com/funvibe/mcomp/internal/pipeline"
	"github.com/funvibe/mcomp/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Tokens == nil {
		ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "parser: token stream is nil"))
		return ctx
	}

	parser := New(ctx.Tokens, ctx)
	ctx.AstRoot = parser.ParseProgram()
	ctx.AstRoot.File = ctx.FilePath
	return ctx
}

// ParseProgram lexes and parses src in one step.
func ParseProgram(src, file string) (*ast.Program, error) {
	ctx := pipeline.New(&lexer.LexerProcessor{}, &ParserProcessor{}).Run(&pipeline.PipelineContext{
		SourceCode: src,
		FilePath:   file,
	})
	if len(ctx.Errors) > 0 {
		return nil, diagnostics.Join(ctx.Errors)
	}
	return ctx.AstRoot, nil
}

// ParseFunction parses the source text of a single function declaration.
// Anything other than exactly one declaration is reported as an error.
func ParseFunction(src string) (*ast.FunctionDeclaration, error) {
	prog, err := ParseProgram(src, "")
	if err != nil {
		return nil, err
	}
	if len(prog.Statements) != 1 {
		return nil, diagnostics.Errorf(diagnostics.ErrP006, token.Token{}, "expected exactly one function declaration, found %d statements", len(prog.Statements))
	}
	fn, ok := prog.Statements[0].(*ast.FunctionDeclaration)
	if !ok {
		return nil, diagnostics.NewError(diagnostics.ErrP006, prog.Statements[0].GetToken(), "expected a function declaration")
	}
	return fn, nil
}
