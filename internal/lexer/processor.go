package lexer

import (
	"github.com/funvibe/mcomp/internal/diagnostics"
	"github.com/funvibe/mcomp/internal/pipeline"
	"github.com/funvibe/mcomp/internal/token"
)

type LexerProcessor struct{}

// Tokenize runs the lexer to completion. The returned slice always ends with
// an EOF token.
func Tokenize(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.Tokens = Tokenize(ctx.SourceCode)
	for _, tok := range ctx.Tokens {
		if tok.Type == token.ILLEGAL {
			msg := "illegal token " + tok.Lexeme
			if s, ok := tok.Literal.(string); ok && s != tok.Lexeme {
				msg = s
			}
			err := diagnostics.NewError(diagnostics.ErrL001, tok, msg)
			err.File = ctx.FilePath
			ctx.Errors = append(ctx.Errors, err)
		}
	}
	return ctx
}
