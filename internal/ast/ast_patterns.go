package ast

import "github.com/funvibe/mcomp/internal/token"

// Pattern is the left-hand side of a comprehension generator.
type Pattern interface {
	Node
	patternNode()
	GetToken() token.Token
}

type IdentifierPattern struct {
	Token token.Token
	Value string
}

func (ip *IdentifierPattern) Accept(v Visitor)      { v.VisitIdentifierPattern(ip) }
func (ip *IdentifierPattern) patternNode()          {}
func (ip *IdentifierPattern) TokenLiteral() string  { return ip.Token.Lexeme }
func (ip *IdentifierPattern) GetToken() token.Token { return ip.Token }

type WildcardPattern struct {
	Token token.Token
}

func (wp *WildcardPattern) Accept(v Visitor)      { v.VisitWildcardPattern(wp) }
func (wp *WildcardPattern) patternNode()          {}
func (wp *WildcardPattern) TokenLiteral() string  { return wp.Token.Lexeme }
func (wp *WildcardPattern) GetToken() token.Token { return wp.Token }

// TuplePattern destructures a tuple: (a, b)
type TuplePattern struct {
	Token    token.Token // The '(' token
	Elements []Pattern
}

func (tp *TuplePattern) Accept(v Visitor)      { v.VisitTuplePattern(tp) }
func (tp *TuplePattern) patternNode()          {}
func (tp *TuplePattern) TokenLiteral() string  { return tp.Token.Lexeme }
func (tp *TuplePattern) GetToken() token.Token { return tp.Token }
