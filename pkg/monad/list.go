package monad

// Unit returns the one-element list [a].
func Unit[A any](a A) []A {
	return []A{a}
}

// FlatMap concatenates f applied to every element of xs, in order.
func FlatMap[A, B any](xs []A, f func(A) []B) []B {
	out := make([]B, 0, len(xs))
	for _, x := range xs {
		out = append(out, f(x)...)
	}
	return out
}

// FlatMapErr is FlatMap for a continuation that can fail. The first error
// stops the traversal.
func FlatMapErr[A, B any](xs []A, f func(A) ([]B, error)) ([]B, error) {
	out := make([]B, 0, len(xs))
	for _, x := range xs {
		ys, err := f(x)
		if err != nil {
			return nil, err
		}
		out = append(out, ys...)
	}
	return out, nil
}

// Map applies f to every element of xs.
func Map[A, B any](xs []A, f func(A) B) []B {
	out := make([]B, len(xs))
	for i, x := range xs {
		out[i] = f(x)
	}
	return out
}

// ListKind is the list monad. Binding walks the outer list first, so
// chained generators produce nested-loop order.
func ListKind[A any]() Kind[[]A, A] {
	return Kind[[]A, A]{
		Unit: Unit[A],
		Bind: FlatMap[A, A],
	}
}
