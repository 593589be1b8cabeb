package monad_test

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/funvibe/mcomp/pkg/monad"
)

const propertyN = 1000

// randInt returns a random int in [-1000, 1000].
func randInt(rng *rand.Rand) int {
	return rng.IntN(2001) - 1000
}

// randList returns a random list of length [0, 4].
func randList(rng *rand.Rand) []int {
	xs := make([]int, rng.IntN(5))
	for i := range xs {
		xs[i] = randInt(rng)
	}
	return xs
}

func randOption(rng *rand.Rand) monad.Option[int] {
	if rng.IntN(4) == 0 {
		return monad.None[int]()
	}
	return monad.Some(randInt(rng))
}

var errOdd = errors.New("odd")

func randResult(rng *rand.Rand) monad.Result[int] {
	if rng.IntN(4) == 0 {
		return monad.Fail[int](errOdd)
	}
	return monad.Ok(randInt(rng))
}

// checkLaws checks left identity, right identity and associativity for k.
func checkLaws[M, A any](t *testing.T, k monad.Kind[M, A], a A, m M, f, g func(A) M) {
	t.Helper()
	if left, right := k.Bind(k.Unit(a), f), f(a); !reflect.DeepEqual(left, right) {
		t.Fatalf("left identity: %v != %v (a=%v)", left, right, a)
	}
	if left := k.Bind(m, k.Unit); !reflect.DeepEqual(left, m) {
		t.Fatalf("right identity: %v != %v", left, m)
	}
	left := k.Bind(k.Bind(m, f), g)
	right := k.Bind(m, func(x A) M { return k.Bind(f(x), g) })
	if !reflect.DeepEqual(left, right) {
		t.Fatalf("associativity: %v != %v (m=%v)", left, right, m)
	}
}

func TestPropertyListLaws(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	k := monad.ListKind[int]()
	f := func(x int) []int { return []int{x, x + 1} }
	g := func(x int) []int {
		if x%2 == 0 {
			return nil
		}
		return []int{x * 2}
	}
	for range propertyN {
		checkLaws(t, k, randInt(rng), randList(rng), f, g)
	}
}

func TestPropertyOptionLaws(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	k := monad.OptionKind[int]()
	f := func(x int) monad.Option[int] {
		if x < 0 {
			return monad.None[int]()
		}
		return monad.Some(x + 3)
	}
	g := func(x int) monad.Option[int] { return monad.Some(x * 2) }
	for range propertyN {
		checkLaws(t, k, randInt(rng), randOption(rng), f, g)
	}
}

func TestPropertyResultLaws(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	k := monad.ResultKind[int]()
	f := func(x int) monad.Result[int] {
		if x%3 == 0 {
			return monad.Fail[int](errOdd)
		}
		return monad.Ok(x - 1)
	}
	g := func(x int) monad.Result[int] { return monad.Ok(x * 5) }
	for range propertyN {
		checkLaws(t, k, randInt(rng), randResult(rng), f, g)
	}
}

func TestPropertyIdentityLaws(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	k := monad.IdentityKind[int]()
	f := func(x int) int { return x + 7 }
	g := func(x int) int { return x * 3 }
	for range propertyN {
		checkLaws(t, k, randInt(rng), randInt(rng), f, g)
	}
}

// TestPropertyListDo2MatchesLoops: Do2 over lists equals the nested loop.
func TestPropertyListDo2MatchesLoops(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		xs, ys := randList(rng), randList(rng)
		var want []int
		for _, x := range xs {
			for _, y := range ys {
				want = append(want, x*100+y)
			}
		}
		got := monad.Do2(monad.ListKind[int](), xs, ys, func(a, b int) int { return a*100 + b })
		if len(got) != len(want) || (len(want) > 0 && !reflect.DeepEqual(got, want)) {
			t.Fatalf("Do2(%v, %v) = %v, want %v", xs, ys, got, want)
		}
	}
}
