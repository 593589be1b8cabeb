package rewriter_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/mcomp/internal/ast"
	"github.com/funvibe/mcomp/internal/config"
	"github.com/funvibe/mcomp/internal/diagnostics"
	"github.com/funvibe/mcomp/internal/lexer"
	"github.com/funvibe/mcomp/internal/parser"
	"github.com/funvibe/mcomp/internal/pipeline"
	"github.com/funvibe/mcomp/internal/prettyprinter"
	"github.com/funvibe/mcomp/internal/rewriter"
)

func mustParseFunction(t *testing.T, src string) *ast.FunctionDeclaration {
	t.Helper()
	fn, err := parser.ParseFunction(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return fn
}

func TestTransformFunction(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		filters config.FilterMode
		want    string
	}{
		{
			name:  "single_clause",
			input: "fun double(xs) { [x * 2 | x <- xs] }",
			want:  `fun double(xs) { __bind__(xs, \x -> __unit__(x * 2)) }`,
		},
		{
			name:  "two_clauses",
			input: "fun pairs(as, bs) { [(a, b) | a <- as, b <- bs] }",
			want:  `fun pairs(as, bs) { __bind__(as, \a -> __bind__(bs, \b -> __unit__((a, b)))) }`,
		},
		{
			name:  "dependent_clause",
			input: "fun f(xss) { [x | xs <- xss, x <- xs] }",
			want:  `fun f(xss) { __bind__(xss, \xs -> __bind__(xs, \x -> __unit__(x))) }`,
		},
		{
			name:  "wildcard",
			input: "fun f(xs) { [0 | _ <- xs] }",
			want:  `fun f(xs) { __bind__(xs, \_ -> __unit__(0)) }`,
		},
		{
			name:  "decorators_dropped",
			input: "@comprehend(List)\nfun f(xs) { [x | x <- range(3)] }",
			want:  `fun f(xs) { __bind__(range(3), \x -> __unit__(x)) }`,
		},
		{
			name:  "lambda_element",
			input: `fun f(xs) { [\y -> x + y | x <- xs] }`,
			want:  `fun f(xs) { __bind__(xs, \x -> __unit__(\y -> x + y)) }`,
		},
		{
			name:    "guard",
			input:   "fun f(xs) { [x | x <- xs, x > 1] }",
			filters: config.FilterGuard,
			want:    `fun f(xs) { __bind__(xs, \x -> __bind__(__guard__(x > 1), \_ -> __unit__(x))) }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := mustParseFunction(t, tt.input)
			before := prettyprinter.Print(fn)

			tr := rewriter.NewTransformer(rewriter.DefaultNames(), tt.filters)
			out, err := tr.TransformFunction(fn)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := prettyprinter.Print(out); got != tt.want {
				t.Errorf("rewrite mismatch:\n--- expected\n%s\n--- actual\n%s", tt.want, got)
			}
			if after := prettyprinter.Print(fn); after != before {
				t.Errorf("input tree was modified:\n%s", after)
			}
			if out.Name.Value != fn.Name.Value || len(out.Parameters) != len(fn.Parameters) {
				t.Errorf("signature changed: %s", prettyprinter.Print(out))
			}
		})
	}
}

func TestCustomNames(t *testing.T) {
	fn := mustParseFunction(t, "fun f(xs) { [x | x <- xs] }")
	tr := rewriter.NewTransformer(rewriter.Names{Bind: "flatMap", Unit: "pure", Guard: "when"}, "")
	out, err := tr.TransformFunction(fn)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := prettyprinter.Print(out), `fun f(xs) { flatMap(xs, \x -> pure(x)) }`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestBuildCallBaseCase(t *testing.T) {
	tr := rewriter.NewTransformer(rewriter.DefaultNames(), config.FilterReject)
	call := tr.BuildCall(nil, &ast.IntegerLiteral{Value: 42})
	if got := prettyprinter.Print(call); got != "__unit__(42)" {
		t.Errorf("zero clauses = %s, want __unit__(42)", got)
	}
}

func TestTransformErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
		line    int
	}{
		{"two_statements", "fun f(xs) {\n  ys = xs\n  [y | y <- ys]\n}", "found 2 statements", 1},
		{"empty_body", "fun f() { }", "found 0 statements", 1},
		{"assignment", "fun f(xs) { ys = [y | y <- xs] }", "assignment to ys", 1},
		{"plain_expression", "fun f(xs) { len(xs) }", "found call len(xs)", 1},
		{"list_literal", "fun f(x) { [x] }", "found list literal [x]", 1},
		{"filter_rejected", "fun f(xs) {\n  [x | x <- xs, x > 0]\n}", "filter clause x > 0", 2},
		{"destructuring", "fun f(ps) { [a + b | (a, b) <- ps] }", "destructuring pattern (a, b)", 1},
		{"nested_output", "fun f(xs) { [[x | x <- xs] | y <- xs] }", "nested comprehension [x | x <- xs]", 1},
		{"nested_in_output", "fun f(xs) { [(y, [x | x <- xs]) | y <- xs] }", "nested comprehension [x | x <- xs] in the element expression", 1},
		{"nested_in_lambda", "fun f(xs) { [(\\z -> [z | _ <- xs]) | y <- xs] }", "nested comprehension [z | _ <- xs]", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := mustParseFunction(t, tt.input)
			out, err := rewriter.NewTransformer(rewriter.DefaultNames(), config.FilterReject).TransformFunction(fn)
			if out != nil {
				t.Errorf("expected no result, got %s", prettyprinter.Print(out))
			}
			if !errors.Is(err, diagnostics.ErrUnsupportedBodyShape) {
				t.Fatalf("expected ErrUnsupportedBodyShape, got %v", err)
			}
			var d *diagnostics.DiagnosticError
			if !errors.As(err, &d) {
				t.Fatalf("expected a diagnostic, got %T", err)
			}
			if d.Function != "f" {
				t.Errorf("function = %q, want f", d.Function)
			}
			if d.Token.Line != tt.line {
				t.Errorf("line = %d, want %d", d.Token.Line, tt.line)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestRewriterProcessor(t *testing.T) {
	input := `x = [1, 2]

@comprehend(List)
fun pairs(as, bs) { [(a, b) | a <- as, b <- bs] }

fun plain(xs) { [x | x <- xs] }

@comprehend(Option)
fun bad(xs) { xs }
`
	ctx := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		rewriter.NewProcessor(config.Default()),
	).Run(&pipeline.PipelineContext{SourceCode: input, FilePath: "demo.mc"})

	if len(ctx.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", ctx.Errors)
	}
	if err := ctx.Errors[0]; err.Code != diagnostics.ErrC002 || err.File != "demo.mc" || err.Function != "bad" {
		t.Errorf("unexpected error %v", err)
	}

	want := `x = [1, 2]
fun pairs(as, bs) { __bind__(as, \a -> __bind__(bs, \b -> __unit__((a, b)))) }
fun plain(xs) { [x | x <- xs] }
@comprehend(Option)
fun bad(xs) { xs }
`
	if got := prettyprinter.Print(ctx.AstRoot); got != want {
		t.Errorf("program mismatch:\n--- expected\n%s\n--- actual\n%s", want, got)
	}
}
