package monad_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/funvibe/mcomp/pkg/monad"
)

func TestSequence(t *testing.T) {
	sum := func(vs []int) int {
		total := 0
		for _, v := range vs {
			total += v
		}
		return total
	}

	tests := []struct {
		name string
		ms   [][]int
		want []int
	}{
		{"no generators", nil, []int{0}},
		{"one generator", [][]int{{1, 2, 3}}, []int{1, 2, 3}},
		{"two generators", [][]int{{1, 2}, {10, 20}}, []int{11, 21, 12, 22}},
		{"empty generator", [][]int{{1, 2}, {}}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := monad.Sequence(monad.ListKind[int](), tt.ms, sum)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Sequence = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOptionShortCircuit(t *testing.T) {
	calls := 0
	k := monad.OptionKind[int]()
	got := monad.Do2(k, monad.None[int](), monad.Some(2), func(a, b int) int {
		calls++
		return a + b
	})
	if got.IsSome() {
		t.Errorf("expected None, got %v", got)
	}
	if calls != 0 {
		t.Errorf("continuation ran %d times after None", calls)
	}
}

func TestResultKeepsFirstFailure(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	k := monad.ResultKind[int]()
	got := monad.Do2(k, monad.Fail[int](first), monad.Fail[int](second), func(a, b int) int { return a + b })
	if !errors.Is(got.Err(), first) {
		t.Errorf("expected first failure, got %v", got.Err())
	}
	if !errors.Is(monad.Fail[int](nil).Err(), monad.ErrNilFailure) {
		t.Error("Fail(nil) must still be a failure")
	}
}

func TestFlatMapErrStops(t *testing.T) {
	boom := errors.New("boom")
	seen := 0
	_, err := monad.FlatMapErr([]int{1, 2, 3}, func(x int) ([]int, error) {
		seen++
		if x == 2 {
			return nil, boom
		}
		return []int{x}, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if seen != 2 {
		t.Errorf("continuation ran %d times, want 2", seen)
	}
}

func ExampleDo2() {
	pairs := monad.Do2(monad.ListKind[int](), []int{1, 2}, []int{10, 20}, func(a, b int) int {
		return a + b
	})
	fmt.Println(pairs)
	// Output: [11 21 12 22]
}

func ExampleOptionKind() {
	k := monad.OptionKind[int]()
	fmt.Println(monad.Do2(k, monad.Some(1), monad.Some(2), func(a, b int) int { return a + b }))
	fmt.Println(monad.Do2(k, monad.Some(1), monad.None[int](), func(a, b int) int { return a + b }))
	// Output:
	// Some(3)
	// None
}

func ExampleResult_Unpack() {
	r := monad.ResultBind(monad.Ok(20), func(x int) monad.Result[int] { return monad.Ok(x + 1) })
	v, err := r.Unpack()
	fmt.Println(v, err)
	// Output: 21 <nil>
}
