package diagnostics

import (
	"errors"
	"testing"

	"github.com/funvibe/mcomp/internal/token"
)

func TestErrorFormat(t *testing.T) {
	at := token.Token{Line: 3, Column: 7}
	tests := []struct {
		name string
		err  *DiagnosticError
		want string
	}{
		{"plain", NewError(ErrC002, token.Token{}, "bad body"), "C002: bad body"},
		{"position", NewError(ErrP001, at, "unexpected )"), "3:7: P001: unexpected )"},
		{"file", &DiagnosticError{Code: ErrR001, Token: at, Message: "boom", File: "a.mc"}, "a.mc:3:7: R001: boom"},
		{"file_no_position", &DiagnosticError{Code: ErrF001, Message: "bad", File: "mcomp.yaml"}, "mcomp.yaml: F001: bad"},
		{"function", Errorf(ErrC003, at, "undefined %s", "y").InFunction("f"), "3:7: C003: in function f: undefined y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		code ErrorCode
		kind error
	}{
		{ErrL001, ErrSyntax},
		{ErrP004, ErrSyntax},
		{ErrC001, ErrSourceUnavailable},
		{ErrC002, ErrUnsupportedBodyShape},
		{ErrC003, ErrRecompileFailure},
		{ErrC004, ErrMonadContractViolation},
		{ErrR001, ErrRuntime},
		{ErrF001, ErrConfig},
	}
	for _, tt := range tests {
		err := error(NewError(tt.code, token.Token{}, "x"))
		if !errors.Is(err, tt.kind) {
			t.Errorf("%s: expected errors.Is(%v)", tt.code, tt.kind)
		}
	}
}

func TestInFunctionCopies(t *testing.T) {
	orig := NewError(ErrC002, token.Token{}, "x")
	named := orig.InFunction("g")
	if orig.Function != "" {
		t.Error("InFunction modified the receiver")
	}
	if named.Detail() != "in function g: x" {
		t.Errorf("detail = %q", named.Detail())
	}
}

func TestJoin(t *testing.T) {
	if Join(nil) != nil {
		t.Error("Join(nil) should be nil")
	}
	one := NewError(ErrP001, token.Token{}, "a")
	if Join([]*DiagnosticError{one}) != error(one) {
		t.Error("a single diagnostic should be returned as is")
	}
	two := NewError(ErrC002, token.Token{}, "b")
	err := Join([]*DiagnosticError{one, two})
	if !errors.Is(err, ErrSyntax) || !errors.Is(err, ErrUnsupportedBodyShape) {
		t.Errorf("joined error lost a kind: %v", err)
	}
}
