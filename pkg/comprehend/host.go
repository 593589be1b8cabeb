package comprehend

import (
	"fmt"
	"reflect"

	"github.com/funvibe/mcomp/internal/evaluator"
)

// hostFunction exposes a Go function to scripts. A trailing error result
// turns into a script runtime error; other results are marshalled, several
// of them as a tuple.
func (m *Marshaller) hostFunction(name string, fn reflect.Value) *evaluator.Builtin {
	return &evaluator.Builtin{
		Name: name,
		Fn: func(e *evaluator.Evaluator, args ...evaluator.Object) evaluator.Object {
			result, err := m.callHost(fn, args)
			if err != nil {
				if rerr, ok := err.(*evaluator.Error); ok {
					return rerr
				}
				return &evaluator.Error{Message: fmt.Sprintf("%s: %s", name, err)}
			}
			return result
		},
	}
}

func (m *Marshaller) callHost(fn reflect.Value, args []evaluator.Object) (evaluator.Object, error) {
	fnType := fn.Type()
	numIn := fnType.NumIn()
	isVariadic := fnType.IsVariadic()

	// Check arg count
	if isVariadic {
		if len(args) < numIn-1 {
			return nil, fmt.Errorf("expected at least %d arguments, got %d", numIn-1, len(args))
		}
	} else if len(args) != numIn {
		return nil, fmt.Errorf("expected %d arguments, got %d", numIn, len(args))
	}

	goArgs := make([]reflect.Value, len(args))
	for i, arg := range args {
		var targetType reflect.Type
		if isVariadic && i >= numIn-1 {
			targetType = fnType.In(numIn - 1).Elem()
		} else {
			targetType = fnType.In(i)
		}

		val, err := m.FromValue(arg, targetType)
		if err != nil {
			return nil, fmt.Errorf("argument %d conversion failed: %w", i, err)
		}
		rv, err := convertTo(val, targetType)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		goArgs[i] = rv
	}

	results := fn.Call(goArgs)

	if n := len(results); n > 0 && fnType.Out(n-1) == errorType {
		if err, _ := results[n-1].Interface().(error); err != nil {
			return nil, err
		}
		results = results[:n-1]
	}

	switch len(results) {
	case 0:
		return evaluator.NIL, nil
	case 1:
		return m.ToValue(results[0].Interface())
	}
	elements := make([]evaluator.Object, len(results))
	for i, res := range results {
		val, err := m.ToValue(res.Interface())
		if err != nil {
			return nil, err
		}
		elements[i] = val
	}
	return &evaluator.Tuple{Elements: elements}, nil
}
