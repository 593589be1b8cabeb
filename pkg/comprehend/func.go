package comprehend

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"

	"github.com/google/uuid"

	"github.com/funvibe/mcomp/internal/ast"
	"github.com/funvibe/mcomp/internal/comprehension"
	"github.com/funvibe/mcomp/internal/diagnostics"
	"github.com/funvibe/mcomp/internal/evaluator"
	"github.com/funvibe/mcomp/internal/parser"
	"github.com/funvibe/mcomp/internal/token"
)

// Func is a callable script or host function.
type Func struct {
	obj evaluator.Object // *evaluator.Function or *evaluator.Builtin
	out io.Writer

	// source and decorators describe the program the function was declared
	// in. Calls evaluate nested declarations against them.
	source     string
	decorators *comprehension.Options
}

func newFunc(obj evaluator.Object) *Func {
	return &Func{obj: obj, out: os.Stdout}
}

// derive returns a Func for obj that runs in the same program as f.
func (f *Func) derive(obj evaluator.Object) *Func {
	return &Func{obj: obj, out: f.out, source: f.source, decorators: f.decorators}
}

func (f *Func) newEvaluator() *evaluator.Evaluator {
	e := evaluator.New()
	e.Out = f.out
	e.Source = f.source
	if f.decorators != nil {
		comprehension.Install(e, *f.decorators)
	}
	return e
}

// Define evaluates src, which must declare exactly one function, and
// returns it. Decorators in src are applied, so
//
//	@comprehend(List)
//	fun f(xs) { [x * 2 | x <- xs] }
//
// yields the rewritten function directly. globals are visible to the
// function body.
func Define(src string, globals map[string]any) (*Func, error) {
	prog, err := parser.ParseProgram(src, "")
	if err != nil {
		return nil, err
	}
	fns := prog.Functions()
	if len(prog.Statements) != 1 || len(fns) != 1 {
		return nil, diagnostics.Errorf(diagnostics.ErrP006, token.Token{},
			"expected exactly one function declaration, found %d statements", len(prog.Statements))
	}
	decl := fns[0]

	env, err := globalEnv(globals)
	if err != nil {
		return nil, err
	}

	opts := comprehension.DefaultOptions()
	e := evaluator.New()
	e.Source = src
	comprehension.Install(e, opts)
	if res, ok := e.Eval(prog, env).(*evaluator.Error); ok {
		return nil, res.Diagnostic("")
	}

	obj, _ := env.Get(decl.Name.Value)
	f := newFunc(obj)
	f.source, f.decorators = src, &opts
	return f, nil
}

func globalEnv(globals map[string]any) (*evaluator.Environment, error) {
	env := evaluator.NewEnvironment()
	evaluator.RegisterBuiltins(env)

	m := NewMarshaller()
	names := make([]string, 0, len(globals))
	for name := range globals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		val := globals[name]
		var obj evaluator.Object
		if rv := reflect.ValueOf(val); rv.Kind() == reflect.Func {
			obj = m.hostFunction(name, rv)
		} else {
			var err error
			if obj, err = m.ToValue(val); err != nil {
				return nil, fmt.Errorf("global %s: %w", name, err)
			}
		}
		env.Set(name, obj)
	}
	return env, nil
}

// Wrap exposes a Go function under name. It can be called like any Func,
// but has no source text, so rewriting it fails with ErrSourceUnavailable.
func Wrap(name string, fn any) *Func {
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func {
		panic(fmt.Sprintf("comprehend.Wrap: %s is %T, not a function", name, fn))
	}
	return newFunc(NewMarshaller().hostFunction(name, rv))
}

// SetOutput redirects what the function's print calls write.
func (f *Func) SetOutput(w io.Writer) { f.out = w }

// Call marshals args, calls the function and marshals the result back.
// Script failures are returned as *diagnostics.DiagnosticError values.
func (f *Func) Call(args ...any) (any, error) {
	m := NewMarshaller()
	m.scope = f
	objs, err := m.toValues(args)
	if err != nil {
		return nil, err
	}

	e := f.newEvaluator()
	result := e.ApplyFunction(f.obj, objs)
	if rerr, ok := result.(*evaluator.Error); ok {
		return nil, rerr.Diagnostic("").InFunction(f.Name())
	}
	return m.FromValue(result, nil)
}

func (f *Func) Name() string {
	switch o := f.obj.(type) {
	case *evaluator.Function:
		return o.Name
	case *evaluator.Builtin:
		return o.Name
	}
	return ""
}

// Params returns the parameter names; nil for host functions.
func (f *Func) Params() []string {
	if fn, ok := f.obj.(*evaluator.Function); ok {
		return fn.ParamNames()
	}
	return nil
}

// Source returns the function's source text, empty for host functions.
func (f *Func) Source() string {
	if fn, ok := f.obj.(*evaluator.Function); ok {
		return fn.Source
	}
	return ""
}

// ID distinguishes function values; uuid.Nil for host functions.
func (f *Func) ID() uuid.UUID {
	if fn, ok := f.obj.(*evaluator.Function); ok {
		return fn.ID
	}
	return uuid.Nil
}

// Decl returns the declaration the function was built from, nil for host
// functions and lambdas.
func (f *Func) Decl() *ast.FunctionDeclaration {
	if fn, ok := f.obj.(*evaluator.Function); ok {
		return fn.Decl
	}
	return nil
}
