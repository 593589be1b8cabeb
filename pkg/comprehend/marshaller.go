package comprehend

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/funvibe/mcomp/internal/config"
	"github.com/funvibe/mcomp/internal/evaluator"
	"github.com/funvibe/mcomp/pkg/monad"
)

// Tuple is the Go form of a script tuple such as (a, b).
type Tuple []any

var (
	objectType = reflect.TypeOf((*evaluator.Object)(nil)).Elem()
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
)

// Marshaller handles conversion between Go and script values.
type Marshaller struct {
	// scope, when set, is the Func whose program returned functions belong to.
	scope *Func
}

func NewMarshaller() *Marshaller {
	return &Marshaller{}
}

// ToValue converts a Go value to a script Object.
func (m *Marshaller) ToValue(val any) (evaluator.Object, error) {
	switch v := val.(type) {
	case nil:
		return evaluator.NIL, nil
	case evaluator.Object:
		return v, nil
	case *Func:
		return v.obj, nil
	case Monad:
		return &evaluator.MonadObject{Monad: v}, nil
	case Tuple:
		elements, err := m.toValues(v)
		if err != nil {
			return nil, err
		}
		return &evaluator.Tuple{Elements: elements}, nil
	case monad.Option[any]:
		x, ok := v.Get()
		if !ok {
			return evaluator.NewNone(), nil
		}
		obj, err := m.ToValue(x)
		if err != nil {
			return nil, err
		}
		return evaluator.NewSome(obj), nil
	case monad.Result[any]:
		x, err := v.Unpack()
		if err != nil {
			return evaluator.NewFail(&evaluator.String{Value: err.Error()}), nil
		}
		obj, cerr := m.ToValue(x)
		if cerr != nil {
			return nil, cerr
		}
		return evaluator.NewOk(obj), nil
	case error:
		return &evaluator.String{Value: v.Error()}, nil
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &evaluator.Integer{Value: rv.Int()}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("%s value %d overflows Int", rv.Type(), u)
		}
		return &evaluator.Integer{Value: int64(u)}, nil
	case reflect.Float32, reflect.Float64:
		return &evaluator.Float{Value: rv.Float()}, nil
	case reflect.Bool:
		if rv.Bool() {
			return evaluator.TRUE, nil
		}
		return evaluator.FALSE, nil
	case reflect.String:
		return &evaluator.String{Value: rv.String()}, nil
	case reflect.Slice, reflect.Array:
		elements := make([]evaluator.Object, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			el, err := m.ToValue(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			elements[i] = el
		}
		return evaluator.NewList(elements), nil
	case reflect.Func:
		return m.hostFunction(fmt.Sprintf("%T", val), rv), nil
	default:
		// Pointers, maps and structs stay opaque
		return &evaluator.HostObject{Value: val}, nil
	}
}

func (m *Marshaller) toValues(vals []any) ([]evaluator.Object, error) {
	out := make([]evaluator.Object, len(vals))
	for i, v := range vals {
		obj, err := m.ToValue(v)
		if err != nil {
			return nil, err
		}
		out[i] = obj
	}
	return out, nil
}

// FromValue converts a script Object to a Go value.
// targetType is optional; if provided, tries to convert to that type.
func (m *Marshaller) FromValue(obj evaluator.Object, targetType reflect.Type) (any, error) {
	if obj == nil {
		return nil, nil
	}
	if targetType == objectType {
		return obj, nil
	}

	switch o := obj.(type) {
	case *evaluator.Integer:
		if targetType != nil {
			switch targetType.Kind() {
			case reflect.Int64:
				return o.Value, nil
			case reflect.Float64:
				return float64(o.Value), nil
			}
		}
		return int(o.Value), nil // Default to int
	case *evaluator.Float:
		return o.Value, nil
	case *evaluator.Boolean:
		return o.Value, nil
	case *evaluator.String:
		return o.Value, nil
	case *evaluator.Nil:
		return nil, nil
	case *evaluator.List:
		return m.listToSlice(o, targetType)
	case *evaluator.Tuple:
		out := make(Tuple, len(o.Elements))
		for i, el := range o.Elements {
			v, err := m.FromValue(el, nil)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case *evaluator.DataInstance:
		return m.fromData(o)
	case *evaluator.MonadObject:
		return o.Monad, nil
	case *evaluator.Function, *evaluator.Builtin:
		if m.scope != nil {
			return m.scope.derive(o), nil
		}
		return newFunc(o), nil
	case *evaluator.HostObject:
		return o.Value, nil
	case *evaluator.Error:
		return nil, o
	}
	return nil, fmt.Errorf("unsupported type for conversion: %s", evaluator.TypeName(obj))
}

func (m *Marshaller) fromData(d *evaluator.DataInstance) (any, error) {
	switch {
	case d.Is(config.NoneCtorName):
		return monad.None[any](), nil
	case d.Is(config.SomeCtorName):
		v, err := m.FromValue(d.Fields[0], nil)
		if err != nil {
			return nil, err
		}
		return monad.Some(v), nil
	case d.Is(config.OkCtorName):
		v, err := m.FromValue(d.Fields[0], nil)
		if err != nil {
			return nil, err
		}
		return monad.Ok(v), nil
	case d.Is(config.FailCtorName):
		if s, ok := d.Fields[0].(*evaluator.String); ok {
			return monad.Fail[any](errors.New(s.Value)), nil
		}
		return monad.Fail[any](errors.New(d.Fields[0].Inspect())), nil
	}
	return nil, fmt.Errorf("unsupported constructor %s", d.Name)
}

func (m *Marshaller) listToSlice(l *evaluator.List, targetType reflect.Type) (any, error) {
	// If targetType is nil, default to []any
	elemType := reflect.TypeOf((*any)(nil)).Elem()
	if targetType != nil && targetType.Kind() == reflect.Slice {
		elemType = targetType.Elem()
	}

	slice := reflect.MakeSlice(reflect.SliceOf(elemType), 0, l.Len())
	for _, el := range l.Elements {
		val, err := m.FromValue(el, elemType)
		if err != nil {
			return nil, err
		}
		rv, err := convertTo(val, elemType)
		if err != nil {
			return nil, err
		}
		slice = reflect.Append(slice, rv)
	}
	return slice.Interface(), nil
}

// convertTo turns val into a reflect.Value assignable to t.
func convertTo(val any, t reflect.Type) (reflect.Value, error) {
	if val == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(val)
	switch {
	case rv.Type().AssignableTo(t):
		return rv, nil
	case rv.Type().ConvertibleTo(t):
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", rv.Type(), t)
}
