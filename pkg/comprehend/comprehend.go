// Package comprehend rewrites script functions whose body is a single list
// comprehension into a bind/unit chain over a chosen monad.
//
//	pairs, _ := comprehend.Define(`fun pairs(as, bs) { [(a, b) | a <- as, b <- bs] }`, nil)
//	opt, _ := comprehend.Rewrite(comprehend.Option)(pairs)
//	opt.Call(monad.Some[any](1), monad.Some[any](2)) // Some((1, 2))
//
// The rewrite happens once, when Rewrite's transformer (or Transform) is
// applied. Errors match the sentinels below with errors.Is.
package comprehend

import (
	"github.com/funvibe/mcomp/internal/comprehension"
	"github.com/funvibe/mcomp/internal/config"
	"github.com/funvibe/mcomp/internal/diagnostics"
	"github.com/funvibe/mcomp/internal/evaluator"
)

// Monad is a monad descriptor: Unit and Bind over script values.
type Monad = evaluator.Monad

// Predefined monads.
var (
	List     Monad = evaluator.ListMonad{}
	Option   Monad = evaluator.OptionMonad{}
	Result   Monad = evaluator.ResultMonad{}
	Identity Monad = evaluator.IdentityMonad{}
)

var (
	// ErrSourceUnavailable: the function has no source text (Wrap'd Go
	// functions, lambdas).
	ErrSourceUnavailable = diagnostics.ErrSourceUnavailable
	// ErrUnsupportedBodyShape: the body is not exactly one supported
	// comprehension.
	ErrUnsupportedBodyShape = diagnostics.ErrUnsupportedBodyShape
	// ErrRecompileFailure: the rewritten function failed its static checks,
	// e.g. a parameter shadows the bind name.
	ErrRecompileFailure = diagnostics.ErrRecompileFailure
	// ErrMonadContractViolation: the monad lacks an operation or one of its
	// operations failed. Reported when the rewritten function is called.
	ErrMonadContractViolation = diagnostics.ErrMonadContractViolation
)

// RewriteOption configures a rewrite.
type RewriteOption func(*comprehension.Options)

// WithFilters selects how filter clauses are handled. The default rejects
// them; config.FilterGuard rewrites them through the monad's zero.
func WithFilters(mode config.FilterMode) RewriteOption {
	return func(o *comprehension.Options) { o.Filters = mode }
}

// WithNames overrides the names the rewritten body calls.
func WithNames(bind, unit, guard string) RewriteOption {
	return func(o *comprehension.Options) {
		o.Names.Bind, o.Names.Unit, o.Names.Guard = bind, unit, guard
	}
}

// WithConfig applies a loaded mcomp.yaml.
func WithConfig(cfg *config.Config) RewriteOption {
	return func(o *comprehension.Options) { *o = comprehension.FromConfig(cfg) }
}

func buildOptions(opts []RewriteOption) comprehension.Options {
	o := comprehension.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Rewrite returns a transformer that rewrites functions against m.
func Rewrite(m Monad, opts ...RewriteOption) func(*Func) (*Func, error) {
	return func(fn *Func) (*Func, error) {
		return Transform(fn, m, opts...)
	}
}

// Transform rewrites fn against m. fn itself is left unchanged.
func Transform(fn *Func, m Monad, opts ...RewriteOption) (*Func, error) {
	var target *evaluator.Function
	if fn != nil {
		if f, ok := fn.obj.(*evaluator.Function); ok {
			target = f
		} else {
			// Host functions have no source; report them by name.
			target = &evaluator.Function{Name: fn.Name()}
		}
	}
	out, err := comprehension.Transform(target, m, buildOptions(opts))
	if err != nil {
		return nil, err
	}
	return fn.derive(out), nil
}
