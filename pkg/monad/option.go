package monad

import "fmt"

// Option is a value that may be absent.
type Option[A any] struct {
	value A
	some  bool
}

func Some[A any](a A) Option[A] {
	return Option[A]{value: a, some: true}
}

func None[A any]() Option[A] {
	return Option[A]{}
}

func (o Option[A]) IsSome() bool { return o.some }
func (o Option[A]) IsNone() bool { return !o.some }

// Get returns the value and whether it is present.
func (o Option[A]) Get() (A, bool) { return o.value, o.some }

// UnwrapOr returns the value, or def when absent.
func (o Option[A]) UnwrapOr(def A) A {
	if o.some {
		return o.value
	}
	return def
}

func (o Option[A]) String() string {
	if o.some {
		return fmt.Sprintf("Some(%v)", o.value)
	}
	return "None"
}

// OptionBind short-circuits on None.
func OptionBind[A, B any](o Option[A], f func(A) Option[B]) Option[B] {
	if !o.some {
		return None[B]()
	}
	return f(o.value)
}

func OptionKind[A any]() Kind[Option[A], A] {
	return Kind[Option[A], A]{
		Unit: Some[A],
		Bind: OptionBind[A, A],
	}
}
