// Package monad provides typed monad descriptors and the chaining helpers a
// comprehension desugars into, for Go code that wants to write the bind
// chain directly:
//
//	[f(a, b) | a <- ma, b <- mb]
//
// is
//
//	Do2(k, ma, mb, f)
//
// which expands to k.Bind(ma, func(a) k.Bind(mb, func(b) k.Unit(f(a, b)))).
package monad

// Kind describes a monad M over element type A.
//
// Minimal definition: Unit and Bind. Implementations are expected to obey
// the monad laws; the helpers below rely on nothing else.
type Kind[M, A any] struct {
	Unit func(A) M
	Bind func(M, func(A) M) M
}

// Map applies a pure function inside m.
func (k Kind[M, A]) Map(m M, f func(A) A) M {
	return k.Bind(m, func(a A) M { return k.Unit(f(a)) })
}

// Then sequences m and n, discarding the value of m.
func (k Kind[M, A]) Then(m, n M) M {
	return k.Bind(m, func(A) M { return n })
}

// Do2 is the two-generator comprehension [f(a, b) | a <- ma, b <- mb].
func Do2[M, A any](k Kind[M, A], ma, mb M, f func(a, b A) A) M {
	return k.Bind(ma, func(a A) M {
		return k.Bind(mb, func(b A) M {
			return k.Unit(f(a, b))
		})
	})
}

// Do3 is the three-generator comprehension [f(a, b, c) | a <- ma, b <- mb, c <- mc].
func Do3[M, A any](k Kind[M, A], ma, mb, mc M, f func(a, b, c A) A) M {
	return k.Bind(ma, func(a A) M {
		return k.Bind(mb, func(b A) M {
			return k.Bind(mc, func(c A) M {
				return k.Unit(f(a, b, c))
			})
		})
	})
}

// Sequence is the n-generator comprehension [f(x0, ..., xn) | x0 <- ms[0], ...].
// Generators nest left to right, so ms[0] is the outermost loop. With no
// generators the result is Unit(f()).
func Sequence[M, A any](k Kind[M, A], ms []M, f func(values []A) A) M {
	var step func(i int, acc []A) M
	step = func(i int, acc []A) M {
		if i == len(ms) {
			return k.Unit(f(acc))
		}
		return k.Bind(ms[i], func(a A) M {
			next := make([]A, len(acc), len(acc)+1)
			copy(next, acc)
			return step(i+1, append(next, a))
		})
	}
	return step(0, nil)
}

// IdentityKind is the identity monad: Unit(a) = a, Bind(m, f) = f(m).
func IdentityKind[A any]() Kind[A, A] {
	return Kind[A, A]{
		Unit: func(a A) A { return a },
		Bind: func(m A, f func(A) A) A { return f(m) },
	}
}
