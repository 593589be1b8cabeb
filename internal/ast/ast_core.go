package ast

import (
	"github.com/funvibe/mcomp/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File       string // Source file path
	Statements []Statement
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// Functions returns the top-level function declarations in source order.
func (p *Program) Functions() []*FunctionDeclaration {
	var fns []*FunctionDeclaration
	for _, stmt := range p.Statements {
		if fn, ok := stmt.(*FunctionDeclaration); ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

// Decorator is an annotation applied to a function declaration.
// @comprehend(List)
type Decorator struct {
	Token     token.Token // The '@' token
	Name      *Identifier
	Arguments []Expression
}

// FunctionDeclaration represents a named function.
// fun name(a, b) { body }
type FunctionDeclaration struct {
	Token      token.Token // The 'fun' token
	Name       *Identifier
	Parameters []*Identifier
	Decorators []*Decorator
	Body       *BlockStatement
	// Start and End are byte offsets of the declaration (including its
	// decorators) in the text it was parsed from.
	Start int
	End   int
}

func (fd *FunctionDeclaration) Accept(v Visitor)     { v.VisitFunctionDeclaration(fd) }
func (fd *FunctionDeclaration) statementNode()       {}
func (fd *FunctionDeclaration) TokenLiteral() string { return fd.Token.Lexeme }
func (fd *FunctionDeclaration) GetToken() token.Token {
	if fd == nil {
		return token.Token{}
	}
	return fd.Token
}

// Copy returns a shallow copy whose slices can be replaced without touching fd.
func (fd *FunctionDeclaration) Copy() *FunctionDeclaration {
	cp := *fd
	cp.Parameters = append([]*Identifier(nil), fd.Parameters...)
	cp.Decorators = append([]*Decorator(nil), fd.Decorators...)
	if fd.Body != nil {
		body := *fd.Body
		body.Statements = append([]Statement(nil), fd.Body.Statements...)
		cp.Body = &body
	}
	return &cp
}

// AssignStatement binds a name in the current scope.
// x = expr
type AssignStatement struct {
	Token token.Token // The identifier token
	Name  *Identifier
	Value Expression
}

func (as *AssignStatement) Accept(v Visitor)     { v.VisitAssignStatement(as) }
func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Lexeme }
func (as *AssignStatement) GetToken() token.Token {
	if as == nil {
		return token.Token{}
	}
	return as.Token
}

type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) Accept(v Visitor)     { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

type BlockStatement struct {
	Token      token.Token // the { token
	Statements []Statement
}

func (bs *BlockStatement) Accept(v Visitor)     { v.VisitBlockStatement(bs) }
func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token {
	if bs == nil {
		return token.Token{}
	}
	return bs.Token
}
