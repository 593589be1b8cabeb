package parser

import (
	"github.com/funvibe/mcomp/internal/ast"
	"github.com/funvibe/mcomp/internal/diagnostics"
	"github.com/funvibe/mcomp/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.AT, token.FUN:
		return p.parseFunctionDeclaration()
	case token.IDENT:
		if p.peekTokenIs(token.ASSIGN) {
			return p.parseAssignStatement()
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseAssignStatement() ast.Statement {
	stmt := &ast.AssignStatement{
		Token: p.curToken,
		Name:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
	}
	p.nextToken() // =
	p.nextToken() // start of value
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}
	return stmt
}

// parseDecorators parses @name and @name(args) lines preceding a function.
// On return curToken is the 'fun' keyword.
func (p *Parser) parseDecorators() ([]*ast.Decorator, bool) {
	var decorators []*ast.Decorator
	for p.curTokenIs(token.AT) {
		dec := &ast.Decorator{Token: p.curToken}
		if !p.peekTokenIs(token.IDENT) {
			p.addError(diagnostics.ErrP005, p.peekToken, "decorator name expected after '@', got %s", describe(p.peekToken))
			return nil, false
		}
		p.nextToken()
		dec.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			args := p.parseExpressionList(token.RPAREN)
			if args == nil {
				return nil, false
			}
			dec.Arguments = args
		}
		decorators = append(decorators, dec)

		p.nextToken()
		for p.curTokenIs(token.NEWLINE) {
			p.nextToken()
		}
	}
	if !p.curTokenIs(token.FUN) {
		p.addError(diagnostics.ErrP005, p.curToken, "decorators must be followed by a function declaration, got %s", describe(p.curToken))
		return nil, false
	}
	return decorators, true
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	start := p.curToken.Offset
	decorators, ok := p.parseDecorators()
	if !ok {
		return nil
	}

	fn := &ast.FunctionDeclaration{Token: p.curToken, Decorators: decorators, Start: start}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fn.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params, ok := p.parseParameters(token.RPAREN)
	if !ok {
		return nil
	}
	fn.Parameters = params

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	fn.Body = p.parseBlockStatement()
	if fn.Body == nil {
		return nil
	}
	fn.End = p.curToken.Offset + len(p.curToken.Lexeme)
	return fn
}

// parseParameters parses a comma separated identifier list up to end. The
// opening delimiter (if any) has already been consumed; on return curToken
// is end.
func (p *Parser) parseParameters(end token.TokenType) ([]*ast.Identifier, bool) {
	params := []*ast.Identifier{}
	if p.peekTokenIs(end) {
		p.nextToken()
		return params, true
	}
	for {
		if !p.expectPeek(token.IDENT) {
			return nil, false
		}
		params = append(params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme})
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	if !p.expectPeek(end) {
		return nil, false
	}
	return params, true
}

// parseBlockStatement parses { stmt; stmt } with curToken on '{'. On return
// curToken is the closing '}'.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
		if !p.expectStatementEnd() {
			return nil
		}
		p.nextToken()
	}

	if !p.curTokenIs(token.RBRACE) {
		p.addError(diagnostics.ErrP001, p.curToken, "unterminated block: expected '}'")
		return nil
	}
	return block
}
