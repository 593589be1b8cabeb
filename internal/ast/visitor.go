package ast

// Visitor walks the syntax tree. Implementations decide whether to descend
// into children.
type Visitor interface {
	VisitProgram(node *Program)
	VisitFunctionDeclaration(node *FunctionDeclaration)
	VisitAssignStatement(node *AssignStatement)
	VisitExpressionStatement(node *ExpressionStatement)
	VisitBlockStatement(node *BlockStatement)

	VisitIdentifier(node *Identifier)
	VisitIntegerLiteral(node *IntegerLiteral)
	VisitFloatLiteral(node *FloatLiteral)
	VisitStringLiteral(node *StringLiteral)
	VisitBooleanLiteral(node *BooleanLiteral)
	VisitNilLiteral(node *NilLiteral)
	VisitTupleLiteral(node *TupleLiteral)
	VisitListLiteral(node *ListLiteral)
	VisitPrefixExpression(node *PrefixExpression)
	VisitInfixExpression(node *InfixExpression)
	VisitIfExpression(node *IfExpression)
	VisitCallExpression(node *CallExpression)
	VisitFunctionLiteral(node *FunctionLiteral)
	VisitListComprehension(node *ListComprehension)

	VisitIdentifierPattern(node *IdentifierPattern)
	VisitWildcardPattern(node *WildcardPattern)
	VisitTuplePattern(node *TuplePattern)
}
