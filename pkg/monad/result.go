package monad

import (
	"errors"
	"fmt"
)

// Result is either a value or the error that prevented computing it.
type Result[A any] struct {
	value A
	err   error
}

func Ok[A any](a A) Result[A] {
	return Result[A]{value: a}
}

// Fail builds a failed result. A nil err is replaced by ErrNilFailure so
// the result is never mistaken for success.
func Fail[A any](err error) Result[A] {
	if err == nil {
		err = ErrNilFailure
	}
	return Result[A]{err: err}
}

// ErrNilFailure marks a Result built with Fail(nil).
var ErrNilFailure = errors.New("monad: failure without error")

func (r Result[A]) IsOk() bool { return r.err == nil }
func (r Result[A]) Err() error { return r.err }

// Unpack returns the value and error in the usual Go shape.
func (r Result[A]) Unpack() (A, error) { return r.value, r.err }

func (r Result[A]) String() string {
	if r.err != nil {
		return fmt.Sprintf("Fail(%v)", r.err)
	}
	return fmt.Sprintf("Ok(%v)", r.value)
}

// ResultBind propagates the first failure.
func ResultBind[A, B any](r Result[A], f func(A) Result[B]) Result[B] {
	if r.err != nil {
		return Fail[B](r.err)
	}
	return f(r.value)
}

func ResultKind[A any]() Kind[Result[A], A] {
	return Kind[Result[A], A]{
		Unit: Ok[A],
		Bind: ResultBind[A, A],
	}
}
