package ast

// Inspect traverses the tree rooted at node in depth-first order, calling f
// for each node. If f returns false the children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if isNilNode(node) || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Statements {
			Inspect(s, f)
		}
	case *FunctionDeclaration:
		for _, d := range n.Decorators {
			for _, a := range d.Arguments {
				Inspect(a, f)
			}
		}
		Inspect(n.Name, f)
		for _, p := range n.Parameters {
			Inspect(p, f)
		}
		Inspect(n.Body, f)
	case *AssignStatement:
		Inspect(n.Name, f)
		Inspect(n.Value, f)
	case *ExpressionStatement:
		Inspect(n.Expression, f)
	case *BlockStatement:
		for _, s := range n.Statements {
			Inspect(s, f)
		}
	case *TupleLiteral:
		for _, e := range n.Elements {
			Inspect(e, f)
		}
	case *ListLiteral:
		for _, e := range n.Elements {
			Inspect(e, f)
		}
	case *PrefixExpression:
		Inspect(n.Right, f)
	case *InfixExpression:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *IfExpression:
		Inspect(n.Condition, f)
		Inspect(n.Consequence, f)
		if n.Alternative != nil {
			Inspect(n.Alternative, f)
		}
	case *CallExpression:
		Inspect(n.Function, f)
		for _, a := range n.Arguments {
			Inspect(a, f)
		}
	case *FunctionLiteral:
		for _, p := range n.Parameters {
			Inspect(p, f)
		}
		Inspect(n.Body, f)
	case *ListComprehension:
		Inspect(n.Output, f)
		for _, c := range n.Clauses {
			switch c := c.(type) {
			case *CompGenerator:
				Inspect(c.Pattern, f)
				Inspect(c.Iterable, f)
			case *CompFilter:
				Inspect(c.Condition, f)
			}
		}
	case *TuplePattern:
		for _, e := range n.Elements {
			Inspect(e, f)
		}
	}
}

func isNilNode(node Node) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *BlockStatement:
		return n == nil
	case *Identifier:
		return n == nil
	}
	return false
}
