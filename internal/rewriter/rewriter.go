// Package rewriter turns a function whose body is a single list comprehension
// into the equivalent chain of monadic bind/unit calls:
//
//	[E | x <- xs, y <- ys]
//
// becomes
//
//	__bind__(xs, \x -> __bind__(ys, \y -> __unit__(E)))
//
// Generators keep their left-to-right order as outer-to-inner nesting, so a
// list monad reproduces the nested-loop order of the comprehension.
package rewriter

import (
	"fmt"

	"github.com/funvibe/mcomp/internal/ast"
	"github.com/funvibe/mcomp/internal/config"
	"github.com/funvibe/mcomp/internal/diagnostics"
	"github.com/funvibe/mcomp/internal/prettyprinter"
	"github.com/funvibe/mcomp/internal/token"
)

// Names are the identifiers the rewritten body calls. They are resolved in
// the environment the rewritten function is instantiated in.
type Names struct {
	Bind  string
	Unit  string
	Guard string
}

func DefaultNames() Names {
	return Names{
		Bind:  config.BindFuncName,
		Unit:  config.UnitFuncName,
		Guard: config.GuardFuncName,
	}
}

// Reserved lists the names in the order bind, unit, guard.
func (n Names) Reserved() []string {
	return []string{n.Bind, n.Unit, n.Guard}
}

type Transformer struct {
	Names   Names
	Filters config.FilterMode
}

func NewTransformer(names Names, filters config.FilterMode) *Transformer {
	if filters == "" {
		filters = config.FilterReject
	}
	return &Transformer{Names: names, Filters: filters}
}

// TransformFunction returns a copy of fn whose single body statement is
// replaced by the bind/unit chain and whose decorators are removed, so the
// result can be instantiated without re-applying the decorator that
// triggered the rewrite. fn itself is left untouched.
func (t *Transformer) TransformFunction(fn *ast.FunctionDeclaration) (*ast.FunctionDeclaration, error) {
	comp, err := t.comprehensionBody(fn)
	if err != nil {
		return nil, err.InFunction(fn.Name.Value)
	}

	call := t.BuildCall(comp.Clauses, comp.Output)

	out := fn.Copy()
	out.Decorators = nil
	out.Body.Statements = []ast.Statement{
		&ast.ExpressionStatement{Token: call.GetToken(), Expression: call},
	}
	return out, nil
}

func (t *Transformer) comprehensionBody(fn *ast.FunctionDeclaration) (*ast.ListComprehension, *diagnostics.DiagnosticError) {
	if fn.Body == nil || len(fn.Body.Statements) != 1 {
		n := 0
		if fn.Body != nil {
			n = len(fn.Body.Statements)
		}
		return nil, diagnostics.Errorf(diagnostics.ErrC002, fn.Token,
			"body must be exactly one list comprehension, found %d statements", n)
	}

	stmt, ok := fn.Body.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		return nil, diagnostics.Errorf(diagnostics.ErrC002, fn.Body.Statements[0].GetToken(),
			"body must be a list comprehension, found %s", describeStatement(fn.Body.Statements[0]))
	}
	comp, ok := stmt.Expression.(*ast.ListComprehension)
	if !ok {
		return nil, diagnostics.Errorf(diagnostics.ErrC002, stmt.Expression.GetToken(),
			"body must be a list comprehension, found %s", describeExpression(stmt.Expression))
	}

	if inner := findComprehension(comp.Output); inner != nil {
		return nil, diagnostics.Errorf(diagnostics.ErrC002, inner.Token,
			"nested comprehension %s in the element expression is not supported", prettyprinter.Print(inner))
	}

	for _, clause := range comp.Clauses {
		switch c := clause.(type) {
		case *ast.CompGenerator:
			switch c.Pattern.(type) {
			case *ast.IdentifierPattern, *ast.WildcardPattern:
			default:
				return nil, diagnostics.Errorf(diagnostics.ErrC002, c.Token,
					"destructuring pattern %s in generator is not supported", prettyprinter.Print(c.Pattern))
			}
		case *ast.CompFilter:
			if t.Filters != config.FilterGuard {
				return nil, diagnostics.Errorf(diagnostics.ErrC002, c.Token,
					"filter clause %s is not supported (set filters: guard to enable)", prettyprinter.Print(c.Condition))
			}
		}
	}
	return comp, nil
}

// BuildCall applies the rewrite rule to the remaining clauses:
//
//	BuildCall([], E)        = unit(E)
//	BuildCall([g, ...], E)  = bind(g.iterable, \g.var -> BuildCall([...], E))
//	BuildCall([f, ...], E)  = bind(guard(f.cond), \_ -> BuildCall([...], E))
func (t *Transformer) BuildCall(clauses []ast.CompClause, output ast.Expression) ast.Expression {
	if len(clauses) == 0 {
		at := output.GetToken()
		return &ast.CallExpression{
			Token:     token.Synthetic(token.LPAREN, "(", at),
			Function:  t.ident(t.Names.Unit, at),
			Arguments: []ast.Expression{output},
		}
	}

	first, rest := clauses[0], clauses[1:]
	at := first.GetToken()

	var (
		source ast.Expression
		param  *ast.Identifier
	)
	switch c := first.(type) {
	case *ast.CompGenerator:
		source = c.Iterable
		param = t.ident(patternName(c.Pattern), c.Pattern.GetToken())
	case *ast.CompFilter:
		source = &ast.CallExpression{
			Token:     token.Synthetic(token.LPAREN, "(", at),
			Function:  t.ident(t.Names.Guard, at),
			Arguments: []ast.Expression{c.Condition},
		}
		param = t.ident("_", at)
	default:
		panic(fmt.Sprintf("rewriter: unknown clause %T", first))
	}

	continuation := &ast.FunctionLiteral{
		Token:      token.Synthetic(token.BACKSLASH, "\\", at),
		Parameters: []*ast.Identifier{param},
		Body:       t.BuildCall(rest, output),
	}

	return &ast.CallExpression{
		Token:     token.Synthetic(token.LPAREN, "(", at),
		Function:  t.ident(t.Names.Bind, at),
		Arguments: []ast.Expression{source, continuation},
	}
}

func (t *Transformer) ident(name string, at token.Token) *ast.Identifier {
	return &ast.Identifier{Token: token.Synthetic(token.IDENT, name, at), Value: name}
}

func patternName(p ast.Pattern) string {
	if ip, ok := p.(*ast.IdentifierPattern); ok {
		return ip.Value
	}
	return "_"
}

func describeStatement(stmt ast.Statement) string {
	switch s := stmt.(type) {
	case *ast.AssignStatement:
		return "assignment to " + s.Name.Value
	case *ast.FunctionDeclaration:
		return "function declaration " + s.Name.Value
	}
	return fmt.Sprintf("%T", stmt)
}

func describeExpression(expr ast.Expression) string {
	switch expr.(type) {
	case *ast.ListLiteral:
		return "list literal " + prettyprinter.Print(expr)
	case *ast.CallExpression:
		return "call " + prettyprinter.Print(expr)
	case *ast.FunctionLiteral:
		return "lambda " + prettyprinter.Print(expr)
	}
	return "expression " + prettyprinter.Print(expr)
}

// findComprehension returns the first comprehension inside expr, if any.
func findComprehension(expr ast.Expression) *ast.ListComprehension {
	var found *ast.ListComprehension
	ast.Inspect(expr, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		if c, ok := n.(*ast.ListComprehension); ok {
			found = c
			return false
		}
		return true
	})
	return found
}
