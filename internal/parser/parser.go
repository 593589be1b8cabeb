package parser

import (
	"fmt"

	"github.com/funvibe/mcomp/internal/ast"
	"github.com/funvibe/mcomp/internal/diagnostics"
	"github.com/funvibe/mcomp/internal/pipeline"
	"github.com/funvibe/mcomp/internal/token"
)

// MaxRecursionDepth bounds expression nesting so hostile input cannot blow
// the Go stack.
const MaxRecursionDepth = 500

const (
	_ int = iota
	LOWEST
	LOGIC_OR    // ||
	LOGIC_AND   // &&
	EQUALS      // ==
	LESSGREATER // > or <
	CONCAT      // ++
	SUM         // +
	PRODUCT     // *
	PREFIX      // -X or !X
	CALL        // myFunction(X)
)

var precedences = map[token.TokenType]int{
	token.OR:       LOGIC_OR,
	token.AND:      LOGIC_AND,
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.LTE:      LESSGREATER,
	token.GTE:      LESSGREATER,
	token.CONCAT:   CONCAT,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.SLASH:    PRODUCT,
	token.ASTERISK: PRODUCT,
	token.PERCENT:  PRODUCT,
	token.LPAREN:   CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	// groups tracks open delimiters; newlines are insignificant inside
	// parentheses and brackets but separate statements inside braces.
	groups []token.TokenType

	ctx   *pipeline.PipelineContext
	depth int

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	if ctx == nil {
		ctx = &pipeline.PipelineContext{}
	}
	p := &Parser{tokens: tokens, ctx: ctx}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:     p.parseIdentifier,
		token.INT:       p.parseIntegerLiteral,
		token.FLOAT:     p.parseFloatLiteral,
		token.STRING:    p.parseStringLiteral,
		token.TRUE:      p.parseBoolean,
		token.FALSE:     p.parseBoolean,
		token.NIL:       p.parseNil,
		token.BANG:      p.parsePrefixExpression,
		token.MINUS:     p.parsePrefixExpression,
		token.LPAREN:    p.parseGroupedExpression,
		token.LBRACKET:  p.parseListLiteral,
		token.BACKSLASH: p.parseFunctionLiteral,
		token.IF:        p.parseIfExpression,
	}

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for tt := range precedences {
		p.infixParseFns[tt] = p.parseInfixExpression
	}
	p.infixParseFns[token.LPAREN] = p.parseCallExpression

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) read() token.Token {
	for {
		if p.pos >= len(p.tokens) {
			if len(p.tokens) > 0 {
				last := p.tokens[len(p.tokens)-1]
				return token.Token{Type: token.EOF, Line: last.Line, Column: last.Column, Offset: last.Offset}
			}
			return token.Token{Type: token.EOF}
		}
		tok := p.tokens[p.pos]
		p.pos++
		if tok.Type == token.NEWLINE && p.insideGroup() {
			continue
		}
		return tok
	}
}

func (p *Parser) insideGroup() bool {
	if len(p.groups) == 0 {
		return false
	}
	top := p.groups[len(p.groups)-1]
	return top == token.LPAREN || top == token.LBRACKET
}

func (p *Parser) track(tok token.Token) {
	switch tok.Type {
	case token.LPAREN, token.LBRACKET, token.LBRACE:
		p.groups = append(p.groups, tok.Type)
	case token.RPAREN, token.RBRACKET, token.RBRACE:
		if len(p.groups) > 0 {
			p.groups = p.groups[:len(p.groups)-1]
		}
	}
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.track(p.curToken)
	p.peekToken = p.read()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) addError(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	err := diagnostics.Errorf(code, tok, format, args...)
	err.File = p.ctx.FilePath
	p.ctx.Errors = append(p.ctx.Errors, err)
}

func (p *Parser) peekError(t token.TokenType) {
	p.addError(diagnostics.ErrP001, p.peekToken, "expected next token to be %q, got %s instead", string(t), describe(p.peekToken))
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	p.addError(diagnostics.ErrP002, tok, "unexpected %s", describe(tok))
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.NEWLINE:
		return "newline"
	}
	if tok.Lexeme != "" && string(tok.Type) != tok.Lexeme {
		return fmt.Sprintf("%s %q", tok.Type, tok.Lexeme)
	}
	return fmt.Sprintf("%q", string(tok.Type))
}

// ParseProgram parses every top-level statement. Errors are collected in the
// pipeline context; the returned program contains the statements that parsed.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{File: p.ctx.FilePath}

	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		errCount := len(p.ctx.Errors)
		stmt := p.parseStatement()
		if stmt != nil && len(p.ctx.Errors) == errCount {
			program.Statements = append(program.Statements, stmt)
			if !p.expectStatementEnd() {
				p.skipToStatementBoundary()
			}
		} else {
			p.skipToStatementBoundary()
		}
		p.nextToken()
	}

	return program
}

// expectStatementEnd checks that the statement which ends at curToken is
// followed by a newline, a closing brace or the end of input.
func (p *Parser) expectStatementEnd() bool {
	switch p.peekToken.Type {
	case token.NEWLINE, token.EOF, token.RBRACE:
		return true
	}
	p.addError(diagnostics.ErrP001, p.peekToken, "expected end of statement, got %s", describe(p.peekToken))
	return false
}

// skipToStatementBoundary advances until the current token ends a line.
func (p *Parser) skipToStatementBoundary() {
	p.groups = p.groups[:0]
	for !p.peekTokenIs(token.NEWLINE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
	}
}
