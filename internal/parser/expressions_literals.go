package parser

import (
	"github.com/funvibe/mcomp/internal/ast"
	"github.com/funvibe/mcomp/internal/diagnostics"
	"github.com/funvibe/mcomp/internal/token"
)

// parseListLiteral parses [a, b, c] or a list comprehension [expr | ...].
func (p *Parser) parseListLiteral() ast.Expression {
	startToken := p.curToken

	// Empty list []
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return &ast.ListLiteral{Token: startToken, Elements: []ast.Expression{}}
	}

	// | is not an operator, so parsing the first element stops in front of it
	p.nextToken()
	firstExpr := p.parseExpression(LOWEST)
	if firstExpr == nil {
		return nil
	}

	// Check for list comprehension syntax: [expr | ...]
	if p.peekTokenIs(token.PIPE) {
		return p.parseListComprehension(startToken, firstExpr)
	}

	list := &ast.ListLiteral{Token: startToken, Elements: []ast.Expression{firstExpr}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		// Handle trailing comma
		if p.peekTokenIs(token.RBRACKET) {
			break
		}
		p.nextToken()
		expr := p.parseExpression(LOWEST)
		if expr == nil {
			return nil
		}
		list.Elements = append(list.Elements, expr)
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return list
}

// parseListComprehension parses a list comprehension after the output expression.
// Syntax: [output | clause, clause, ...]
// Clause can be: pattern <- iterable (generator) or expression (filter)
func (p *Parser) parseListComprehension(startToken token.Token, output ast.Expression) ast.Expression {
	comp := &ast.ListComprehension{
		Token:  startToken,
		Output: output,
	}

	p.nextToken() // curToken is |

	for {
		p.nextToken() // move to start of clause

		clause := p.parseCompClause()
		if clause == nil {
			return nil
		}
		comp.Clauses = append(comp.Clauses, clause)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken() // consume comma
		if p.peekTokenIs(token.RBRACKET) {
			break
		}
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return comp
}

// parseCompClause parses a single clause in a list comprehension:
// either a generator (pattern <- iterable) or a filter (boolean expression).
func (p *Parser) parseCompClause() ast.CompClause {
	clauseToken := p.curToken

	if !p.hasBindAhead() {
		cond := p.parseExpression(LOWEST)
		if cond == nil {
			return nil
		}
		return &ast.CompFilter{Token: clauseToken, Condition: cond}
	}

	pattern := p.parsePattern()
	if pattern == nil {
		return nil
	}
	if !p.expectPeek(token.L_ARROW) {
		return nil
	}
	p.nextToken() // move to iterable expression

	iterable := p.parseExpression(LOWEST)
	if iterable == nil {
		return nil
	}

	return &ast.CompGenerator{
		Token:    clauseToken,
		Pattern:  pattern,
		Iterable: iterable,
	}
}

// hasBindAhead reports whether a '<-' appears in the current clause, i.e.
// before the next top-level ',' or ']'.
func (p *Parser) hasBindAhead() bool {
	tokens := append([]token.Token{p.curToken, p.peekToken}, p.tokens[min(p.pos, len(p.tokens)):]...)

	depth := 0
	for _, tok := range tokens {
		switch tok.Type {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACE:
			if depth == 0 {
				return false
			}
			depth--
		case token.RBRACKET:
			if depth == 0 {
				return false
			}
			depth--
		case token.COMMA:
			if depth == 0 {
				return false
			}
		case token.L_ARROW:
			if depth == 0 {
				return true
			}
		case token.EOF:
			return false
		}
	}
	return false
}

// parsePattern parses a generator pattern: x, _ or (a, b).
// On return curToken is the last token of the pattern.
func (p *Parser) parsePattern() ast.Pattern {
	switch p.curToken.Type {
	case token.IDENT:
		if p.curToken.Lexeme == "_" {
			return &ast.WildcardPattern{Token: p.curToken}
		}
		return &ast.IdentifierPattern{Token: p.curToken, Value: p.curToken.Lexeme}
	case token.LPAREN:
		tp := &ast.TuplePattern{Token: p.curToken}
		if p.peekTokenIs(token.RPAREN) {
			p.nextToken()
			return tp
		}
		for {
			p.nextToken()
			el := p.parsePattern()
			if el == nil {
				return nil
			}
			tp.Elements = append(tp.Elements, el)
			if !p.peekTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return tp
	}
	p.addError(diagnostics.ErrP004, p.curToken, "invalid pattern: %s", describe(p.curToken))
	return nil
}
