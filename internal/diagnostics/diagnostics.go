// Package diagnostics defines the error values produced by every stage of
// the comprehension pipeline. Each error carries a stable code, the token it
// refers to, and the taxonomy kind it belongs to so callers can match it with
// errors.Is.
package diagnostics

import (
	"errors"
	"fmt"

	"github.com/funvibe/mcomp/internal/token"
)

type ErrorCode string

const (
	// Lexer
	ErrL001 ErrorCode = "L001" // illegal token

	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // no prefix parse function
	ErrP003 ErrorCode = "P003" // invalid literal
	ErrP004 ErrorCode = "P004" // invalid pattern
	ErrP005 ErrorCode = "P005" // invalid decorator
	ErrP006 ErrorCode = "P006" // invalid construct

	// Comprehension rewrite
	ErrC001 ErrorCode = "C001" // source unavailable
	ErrC002 ErrorCode = "C002" // unsupported body shape
	ErrC003 ErrorCode = "C003" // recompile failure
	ErrC004 ErrorCode = "C004" // monad contract violation

	// Runtime
	ErrR001 ErrorCode = "R001"

	// Configuration
	ErrF001 ErrorCode = "F001"
)

// Taxonomy of rewrite failures.
var (
	ErrSourceUnavailable      = errors.New("source unavailable")
	ErrUnsupportedBodyShape   = errors.New("unsupported body shape")
	ErrRecompileFailure       = errors.New("recompile failure")
	ErrMonadContractViolation = errors.New("monad contract violation")
	ErrSyntax                 = errors.New("syntax error")
	ErrRuntime                = errors.New("runtime error")
	ErrConfig                 = errors.New("invalid configuration")
)

// KindOf maps an error code to its taxonomy sentinel.
func KindOf(code ErrorCode) error {
	switch code {
	case ErrC001:
		return ErrSourceUnavailable
	case ErrC002:
		return ErrUnsupportedBodyShape
	case ErrC003:
		return ErrRecompileFailure
	case ErrC004:
		return ErrMonadContractViolation
	case ErrR001:
		return ErrRuntime
	case ErrF001:
		return ErrConfig
	default:
		return ErrSyntax
	}
}

type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	Message string
	File    string
	// Function names the function being processed when the error occurred.
	Function string
}

func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

func Errorf(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return NewError(code, tok, fmt.Sprintf(format, args...))
}

// InFunction returns a copy of e attributed to the named function.
func (e *DiagnosticError) InFunction(name string) *DiagnosticError {
	cp := *e
	cp.Function = name
	return &cp
}

// Detail is the message with its function attribution but no position.
func (e *DiagnosticError) Detail() string {
	if e.Function != "" {
		return fmt.Sprintf("in function %s: %s", e.Function, e.Message)
	}
	return e.Message
}

func (e *DiagnosticError) Error() string {
	msg := e.Detail()
	if e.Token.Line == 0 {
		if e.File != "" {
			return fmt.Sprintf("%s: %s: %s", e.File, e.Code, msg)
		}
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.File, e.Token.Line, e.Token.Column, e.Code, msg)
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Token.Line, e.Token.Column, e.Code, msg)
}

func (e *DiagnosticError) Unwrap() error {
	return KindOf(e.Code)
}

// Join collapses a list of diagnostics into a single error, or nil.
func Join(errs []*DiagnosticError) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}
	list := make([]error, len(errs))
	for i, err := range errs {
		list[i] = err
	}
	return errors.Join(list...)
}
