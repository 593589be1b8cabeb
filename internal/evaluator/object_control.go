package evaluator

import (
	"fmt"
	"strings"

	"github.com/funvibe/mcomp/internal/diagnostics"
	"github.com/funvibe/mcomp/internal/token"
)

// Error is a runtime failure travelling through evaluation as a value.
type Error struct {
	Message    string
	Code       diagnostics.ErrorCode
	Line       int
	Column     int
	StackTrace []StackFrame
}

// StackFrame for error stack traces
type StackFrame struct {
	Name   string
	File   string
	Line   int
	Column int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "ERROR: " + e.Message }

// Error lets runtime errors cross APIs that speak Go errors.
func (e *Error) Error() string { return e.Message }

// Diagnostic converts the runtime error into a diagnostic, rendering the
// stack trace into the message.
func (e *Error) Diagnostic(file string) *diagnostics.DiagnosticError {
	code := e.Code
	if code == "" {
		code = diagnostics.ErrR001
	}
	var sb strings.Builder
	sb.WriteString(e.Message)
	if len(e.StackTrace) > 0 {
		sb.WriteString("\nStack trace:")
		for i := len(e.StackTrace) - 1; i >= 0; i-- {
			frame := e.StackTrace[i]
			f := frame.File
			if f == "" {
				f = file
			}
			fmt.Fprintf(&sb, "\n  at %s:%d (called %s)", f, frame.Line, frame.Name)
		}
	}
	d := diagnostics.NewError(code, token.Token{Line: e.Line, Column: e.Column}, sb.String())
	d.File = file
	return d
}
