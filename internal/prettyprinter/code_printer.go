package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/mcomp/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3,
	"!=": 3,
	"<":  4,
	">":  4,
	"<=": 4,
	">=": 4,
	"++": 5,
	"+":  7,
	"-":  7,
	"*":  8,
	"/":  8,
	"%":  8,
}

const prefixPrecedence = 100

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 10 // Default high precedence for unknown ops
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders node as source code.
func Print(node ast.Node) string {
	p := NewCodePrinter()
	node.Accept(p)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	switch e := expr.(type) {
	case *ast.InfixExpression:
		prec := getPrecedence(e.Operator)
		needParens := prec < parentPrec || (prec == parentPrec && isRight)
		if needParens {
			p.write("(")
		}
		p.printExpr(e.Left, prec, false)
		p.write(" " + e.Operator + " ")
		p.printExpr(e.Right, prec, true)
		if needParens {
			p.write(")")
		}
	case *ast.PrefixExpression:
		p.write(e.Operator)
		p.printExpr(e.Right, prefixPrecedence, false)
	case *ast.FunctionLiteral, *ast.IfExpression:
		// Both extend as far right as possible
		if parentPrec > 0 {
			p.write("(")
			expr.Accept(p)
			p.write(")")
			return
		}
		expr.Accept(p)
	default:
		expr.Accept(p)
	}
}

func (p *CodePrinter) printList(exprs []ast.Expression) {
	for i, e := range exprs {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(e, 0, false)
	}
}

func (p *CodePrinter) printBlock(block *ast.BlockStatement) {
	if block == nil || len(block.Statements) == 0 {
		p.write("{}")
		return
	}
	// Single statements stay on one line: fun f(x) { x + 1 }
	if len(block.Statements) == 1 {
		if _, nested := block.Statements[0].(*ast.FunctionDeclaration); !nested {
			p.write("{ ")
			block.Statements[0].Accept(p)
			p.write(" }")
			return
		}
	}
	p.write("{\n")
	p.indent++
	for _, stmt := range block.Statements {
		p.writeIndent()
		stmt.Accept(p)
		p.write("\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitProgram(n *ast.Program) {
	for i, stmt := range n.Statements {
		if i > 0 {
			p.write("\n")
		}
		stmt.Accept(p)
	}
	if len(n.Statements) > 0 {
		p.write("\n")
	}
}

func (p *CodePrinter) VisitFunctionDeclaration(n *ast.FunctionDeclaration) {
	for _, dec := range n.Decorators {
		p.write("@" + dec.Name.Value)
		if dec.Arguments != nil {
			p.write("(")
			p.printList(dec.Arguments)
			p.write(")")
		}
		p.write("\n")
		p.writeIndent()
	}
	p.write("fun " + n.Name.Value + "(")
	for i, param := range n.Parameters {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Value)
	}
	p.write(") ")
	p.printBlock(n.Body)
}

func (p *CodePrinter) VisitAssignStatement(n *ast.AssignStatement) {
	p.write(n.Name.Value + " = ")
	p.printExpr(n.Value, 0, false)
}

func (p *CodePrinter) VisitExpressionStatement(n *ast.ExpressionStatement) {
	p.printExpr(n.Expression, 0, false)
}

func (p *CodePrinter) VisitBlockStatement(n *ast.BlockStatement) {
	p.printBlock(n)
}

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) {
	p.write(n.Value)
}

func (p *CodePrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) {
	p.write(strconv.FormatInt(n.Value, 10))
}

func (p *CodePrinter) VisitFloatLiteral(n *ast.FloatLiteral) {
	s := strconv.FormatFloat(n.Value, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	p.write(s)
}

func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.write(strconv.Quote(n.Value))
}

func (p *CodePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	p.write(strconv.FormatBool(n.Value))
}

func (p *CodePrinter) VisitNilLiteral(n *ast.NilLiteral) {
	p.write("nil")
}

func (p *CodePrinter) VisitTupleLiteral(n *ast.TupleLiteral) {
	p.write("(")
	p.printList(n.Elements)
	if len(n.Elements) == 1 {
		p.write(",")
	}
	p.write(")")
}

func (p *CodePrinter) VisitListLiteral(n *ast.ListLiteral) {
	p.write("[")
	p.printList(n.Elements)
	p.write("]")
}

func (p *CodePrinter) VisitPrefixExpression(n *ast.PrefixExpression) {
	p.printExpr(n, 0, false)
}

func (p *CodePrinter) VisitInfixExpression(n *ast.InfixExpression) {
	// When called directly (not via printExpr), use lowest precedence context
	p.printExpr(n, 0, false)
}

func (p *CodePrinter) VisitIfExpression(n *ast.IfExpression) {
	p.write("if ")
	p.printExpr(n.Condition, 0, false)
	p.write(" ")
	p.printBlock(n.Consequence)
	if n.Alternative != nil {
		p.write(" else ")
		p.printBlock(n.Alternative)
	}
}

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	switch n.Function.(type) {
	case *ast.Identifier, *ast.CallExpression:
		p.printExpr(n.Function, 0, false)
	default:
		p.write("(")
		p.printExpr(n.Function, 0, false)
		p.write(")")
	}
	p.write("(")
	p.printList(n.Arguments)
	p.write(")")
}

func (p *CodePrinter) VisitFunctionLiteral(n *ast.FunctionLiteral) {
	p.write("\\")
	for i, param := range n.Parameters {
		if i > 0 {
			p.write(", ")
		}
		p.write(param.Value)
	}
	p.write(" -> ")
	p.printExpr(n.Body, 0, false)
}

func (p *CodePrinter) VisitListComprehension(n *ast.ListComprehension) {
	p.write("[")
	p.printExpr(n.Output, 0, false)
	p.write(" | ")
	for i, clause := range n.Clauses {
		if i > 0 {
			p.write(", ")
		}
		switch c := clause.(type) {
		case *ast.CompGenerator:
			c.Pattern.Accept(p)
			p.write(" <- ")
			p.printExpr(c.Iterable, 0, false)
		case *ast.CompFilter:
			p.printExpr(c.Condition, 0, false)
		}
	}
	p.write("]")
}

func (p *CodePrinter) VisitIdentifierPattern(n *ast.IdentifierPattern) {
	p.write(n.Value)
}

func (p *CodePrinter) VisitWildcardPattern(n *ast.WildcardPattern) {
	p.write("_")
}

func (p *CodePrinter) VisitTuplePattern(n *ast.TuplePattern) {
	p.write("(")
	for i, el := range n.Elements {
		if i > 0 {
			p.write(", ")
		}
		el.Accept(p)
	}
	p.write(")")
}
