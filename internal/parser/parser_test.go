package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/mcomp/internal/ast"
	"github.com/funvibe/mcomp/internal/diagnostics"
	"github.com/funvibe/mcomp/internal/lexer"
	"github.com/funvibe/mcomp/internal/parser"
	"github.com/funvibe/mcomp/internal/pipeline"
	"github.com/funvibe/mcomp/internal/prettyprinter"
)

func parse(t *testing.T, input string) (*ast.Program, []*diagnostics.DiagnosticError) {
	t.Helper()
	ctx := &pipeline.PipelineContext{SourceCode: input, FilePath: "test.mc"}
	ctx = (&lexer.LexerProcessor{}).Process(ctx)
	ctx = (&parser.ParserProcessor{}).Process(ctx)
	return ctx.AstRoot, ctx.Errors
}

func TestParser(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_assignment", "a = 5", "a = 5"},
		{"infix_precedence", "a = 5 + 2 * 10", "a = 5 + 2 * 10"},
		{"grouping_kept", "a = (b + c) * -d", "a = (b + c) * -d"},
		{"redundant_parens_dropped", "a = (b * c) + d", "a = b * c + d"},
		{"left_assoc", "a = 1 - 2 - 3", "a = 1 - 2 - 3"},
		{"right_grouping", "a = 1 - (2 - 3)", "a = 1 - (2 - 3)"},
		{"logic", "ok = a < b && !c || d == e", "ok = a < b && !c || d == e"},
		{"concat", `s = "a" ++ "b"`, `s = "a" ++ "b"`},
		{"tuple_literal", "x = (1, true, a)", "x = (1, true, a)"},
		{"single_tuple", "x = (1,)", "x = (1,)"},
		{"empty_tuple", "x = ()", "x = ()"},
		{"list_literal", "xs = [1, 2.5, nil]", "xs = [1, 2.5, nil]"},
		{"empty_list", "xs = []", "xs = []"},
		{"lambda", `f = \x, y -> x + y`, `f = \x, y -> x + y`},
		{"lambda_argument", `g(\x -> x, 1)`, `g(\x -> x, 1)`},
		{"call_chain", "f(1)(2)", "f(1)(2)"},
		{"if_else", "x = if a { 1 } else { 2 }", "x = if a { 1 } else { 2 }"},
		{"else_if", "x = if a { 1 } else if b { 2 } else { 3 }", "x = if a { 1 } else { if b { 2 } else { 3 } }"},
		{"comprehension", "[(a, b) | a <- as, b <- bs]", "[(a, b) | a <- as, b <- bs]"},
		{"comprehension_filter", "[x | x <- xs, x > 1]", "[x | x <- xs, x > 1]"},
		{"comprehension_patterns", "[a | (a, _) <- ps]", "[a | (a, _) <- ps]"},
		{"comprehension_multiline", "[x |\n  x <- xs,\n  y <- ys]", "[x | x <- xs, y <- ys]"},
		{"function", "fun add(x, y) { x + y }", "fun add(x, y) { x + y }"},
		{"function_no_params", "fun zero() { 0 }", "fun zero() { 0 }"},
		{"function_block", "fun f(x) {\n  y = x\n  y * 2\n}", "fun f(x) {\n    y = x\n    y * 2\n}"},
		{"decorated", "@comprehend(List)\nfun f(xs) { [x | x <- xs] }", "@comprehend(List)\nfun f(xs) { [x | x <- xs] }"},
		{"bare_decorator", "@trace\n\n@comprehend(Option)\nfun f(x) { x }", "@trace\n@comprehend(Option)\nfun f(x) { x }"},
		{"comments", "// leading\na = 1 // trailing", "a = 1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			program, errs := parse(t, tc.input)
			if len(errs) > 0 {
				var msgs []string
				for _, err := range errs {
					msgs = append(msgs, err.Error())
				}
				t.Fatalf("parsing failed with errors:\n%s", strings.Join(msgs, "\n"))
			}
			got := prettyprinter.Print(program)
			if got != tc.want+"\n" {
				t.Errorf("source mismatch:\n--- expected\n%s\n--- actual\n%s", tc.want, got)
			}
		})
	}
}

func TestFunctionSourceSpan(t *testing.T) {
	input := "x = 1\n\n@comprehend(List)\nfun pairs(as, bs) {\n  [(a, b) | a <- as, b <- bs]\n}\nprint(x)"
	program, errs := parse(t, input)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fns := program.Functions()
	if len(fns) != 1 {
		t.Fatalf("expected 1 function, got %d", len(fns))
	}
	fn := fns[0]
	want := "@comprehend(List)\nfun pairs(as, bs) {\n  [(a, b) | a <- as, b <- bs]\n}"
	if got := input[fn.Start:fn.End]; got != want {
		t.Errorf("span = %q, want %q", got, want)
	}
	if fn.Token.Line != 4 {
		t.Errorf("fun token line = %d, want 4", fn.Token.Line)
	}
	if len(fn.Decorators) != 1 || fn.Decorators[0].Name.Value != "comprehend" {
		t.Errorf("decorators = %v", fn.Decorators)
	}
}

func TestComprehensionClauses(t *testing.T) {
	program, errs := parse(t, "[f(x, y) | x <- xs, g(x), y <- h(x, 1)]")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	comp, ok := stmt.Expression.(*ast.ListComprehension)
	if !ok {
		t.Fatalf("expected ListComprehension, got %T", stmt.Expression)
	}
	if len(comp.Clauses) != 3 {
		t.Fatalf("expected 3 clauses, got %d", len(comp.Clauses))
	}
	if _, ok := comp.Clauses[0].(*ast.CompGenerator); !ok {
		t.Errorf("clause 0 is %T, want generator", comp.Clauses[0])
	}
	if _, ok := comp.Clauses[1].(*ast.CompFilter); !ok {
		t.Errorf("clause 1 is %T, want filter", comp.Clauses[1])
	}
	gen, ok := comp.Clauses[2].(*ast.CompGenerator)
	if !ok {
		t.Fatalf("clause 2 is %T, want generator", comp.Clauses[2])
	}
	if got := prettyprinter.Print(gen.Iterable); got != "h(x, 1)" {
		t.Errorf("iterable = %q", got)
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diagnostics.ErrorCode
		line  int
	}{
		{"missing_paren", "f(1, 2", diagnostics.ErrP001, 1},
		{"no_prefix", "a = * 2", diagnostics.ErrP002, 1},
		{"bad_pattern", "[x | 1 <- xs]", diagnostics.ErrP004, 1},
		{"decorator_without_fun", "@comprehend(List)\nx = 1", diagnostics.ErrP005, 2},
		{"two_statements_one_line", "a = 1 b = 2", diagnostics.ErrP001, 1},
		{"unterminated_block", "fun f(x) {\n  x", diagnostics.ErrP001, 2},
		{"illegal_char", "a = 1 # 2", diagnostics.ErrL001, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parse(t, tt.input)
			if len(errs) == 0 {
				t.Fatal("expected errors")
			}
			if errs[0].Code != tt.code {
				t.Errorf("code = %s, want %s (%v)", errs[0].Code, tt.code, errs[0])
			}
			if errs[0].Token.Line != tt.line {
				t.Errorf("line = %d, want %d", errs[0].Token.Line, tt.line)
			}
			if !errors.Is(errs[0], diagnostics.ErrSyntax) {
				t.Errorf("%v is not a syntax error", errs[0])
			}
		})
	}
}

func TestRecoversAfterError(t *testing.T) {
	program, errs := parse(t, "a = * 1\nb = 2\nc = )\nd = 4")
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	if len(program.Statements) != 2 {
		t.Errorf("expected the 2 valid statements to survive, got %d", len(program.Statements))
	}
}

func TestParseFunction(t *testing.T) {
	fn, err := parser.ParseFunction("fun f(x) { [x | x <- x] }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fn.Name.Value != "f" {
		t.Errorf("name = %s", fn.Name.Value)
	}

	for _, src := range []string{"x = 1", "fun f() { 1 }\nfun g() { 2 }", ""} {
		if _, err := parser.ParseFunction(src); err == nil {
			t.Errorf("ParseFunction(%q) succeeded", src)
		}
	}
}
