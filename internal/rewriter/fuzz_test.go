package rewriter_test

import (
	"testing"

	"github.com/funvibe/mcomp/internal/ast"
	"github.com/funvibe/mcomp/internal/config"
	"github.com/funvibe/mcomp/internal/parser"
	"github.com/funvibe/mcomp/internal/prettyprinter"
	"github.com/funvibe/mcomp/internal/rewriter"
)

// FuzzTransformFunction feeds arbitrary declarations to the rewriter. It
// must either refuse them or produce a declaration that prints to source
// which parses again and contains no comprehension at the top.
func FuzzTransformFunction(f *testing.F) {
	f.Add("fun f(xs) { [x | x <- xs] }")
	f.Add("fun f(as, bs) { [(a, b) | a <- as, b <- bs, a != b] }")
	f.Add("fun f(xs) { [[y | y <- x] | x <- xs] }")
	f.Add("fun f() { [1 | _ <- range(3)] }")
	f.Add("fun f(xs) { xs }")

	f.Fuzz(func(t *testing.T, input string) {
		if len(input) > 1000 {
			return
		}
		decl, err := parser.ParseFunction(input)
		if err != nil {
			return
		}
		before := prettyprinter.Print(decl)

		for _, mode := range []config.FilterMode{config.FilterReject, config.FilterGuard} {
			out, err := rewriter.NewTransformer(rewriter.DefaultNames(), mode).TransformFunction(decl)
			if prettyprinter.Print(decl) != before {
				t.Fatalf("input was modified in %s mode", mode)
			}
			if err != nil {
				continue
			}
			printed := prettyprinter.Print(out)
			reparsed, err := parser.ParseFunction(printed)
			if err != nil {
				t.Fatalf("rewritten function does not parse: %v\n%s", err, printed)
			}
			stmt := reparsed.Body.Statements[0].(*ast.ExpressionStatement)
			if _, ok := stmt.Expression.(*ast.CallExpression); !ok {
				t.Fatalf("rewritten body is %T, want a call", stmt.Expression)
			}
		}
	})
}
