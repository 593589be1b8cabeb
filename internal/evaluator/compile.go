package evaluator

import (
	"github.com/google/uuid"

	"github.com/funvibe/mcomp/internal/ast"
	"github.com/funvibe/mcomp/internal/diagnostics"
)

// Compile performs the static checks a declaration must pass before it can
// be instantiated: parameters must be distinct, and no binding inside the
// function may shadow one of the reserved names, since the body relies on
// them resolving to the environment the function is instantiated in.
func Compile(decl *ast.FunctionDeclaration, reserved []string) error {
	isReserved := make(map[string]bool, len(reserved))
	for _, r := range reserved {
		isReserved[r] = true
	}

	seen := make(map[string]bool, len(decl.Parameters))
	for _, p := range decl.Parameters {
		if seen[p.Value] {
			return diagnostics.Errorf(diagnostics.ErrC003, p.Token, "duplicate parameter %s", p.Value).InFunction(decl.Name.Value)
		}
		seen[p.Value] = true
	}

	var err *diagnostics.DiagnosticError
	check := func(id *ast.Identifier, what string) {
		if err == nil && isReserved[id.Value] {
			err = diagnostics.Errorf(diagnostics.ErrC003, id.Token,
				"%s %s collides with the name bound to the monad operation", what, id.Value)
		}
	}

	for _, p := range decl.Parameters {
		check(p, "parameter")
	}
	ast.Inspect(decl.Body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FunctionLiteral:
			for _, p := range n.Parameters {
				check(p, "lambda parameter")
			}
		case *ast.AssignStatement:
			check(n.Name, "local variable")
		case *ast.IdentifierPattern:
			check(&ast.Identifier{Token: n.Token, Value: n.Value}, "comprehension variable")
		case *ast.FunctionDeclaration:
			check(n.Name, "local function")
			for _, p := range n.Parameters {
				check(p, "parameter")
			}
		}
		return err == nil
	})
	if err != nil {
		return err.InFunction(decl.Name.Value)
	}
	return nil
}

// Instantiate creates the function value for decl closing over env.
func Instantiate(decl *ast.FunctionDeclaration, env *Environment, source string) *Function {
	return &Function{
		Name:       decl.Name.Value,
		Parameters: decl.Parameters,
		Body:       decl.Body,
		Env:        env,
		Decl:       decl,
		Source:     source,
		ID:         uuid.New(),
		Line:       decl.Token.Line,
		Column:     decl.Token.Column,
	}
}
