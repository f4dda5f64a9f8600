package vals

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"src.insp.sh/pkg/errs"
)

// Convert converts v to a reflect.Value of type t, so that it can be passed
// as an argument or used as a map key.
//
// Values assignable to t are used as is. Numbers convert between numeric
// kinds when the value is representable exactly. Values whose type has the
// same kind as t and is convertible to it are converted, which covers named
// types like time.Duration. Slices and arrays convert element-wise, and maps
// entry-wise, so that a []any from an expression can be passed as a []string.
// nil converts to the zero value of pointer, interface, map, slice, func and
// chan types.
func Convert(v any, t reflect.Type) (reflect.Value, error) {
	if m, ok := v.(Method); ok && t.Kind() == reflect.Func {
		v = m.Func()
	}
	if v == nil {
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, wrongType(t, v)
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if isNumber(rv.Kind()) && isNumber(t.Kind()) {
		return convertNumber(rv, t)
	}
	if rv.Kind() == t.Kind() && rv.Type().ConvertibleTo(t) &&
		t.Kind() != reflect.Slice && t.Kind() != reflect.Map && t.Kind() != reflect.Array {
		return rv.Convert(t), nil
	}
	switch t.Kind() {
	case reflect.Slice:
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			out := reflect.MakeSlice(t, rv.Len(), rv.Len())
			return out, convertElems(rv, out, t)
		}
	case reflect.Array:
		if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) && rv.Len() == t.Len() {
			out := reflect.New(t).Elem()
			return out, convertElems(rv, out, t)
		}
	case reflect.Map:
		if rv.Kind() == reflect.Map {
			out := reflect.MakeMapWithSize(t, rv.Len())
			for it := rv.MapRange(); it.Next(); {
				k, err := Convert(it.Key().Interface(), t.Key())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("key %s: %w", Repr(it.Key().Interface()), err)
				}
				if !hashable(k) {
					return reflect.Value{}, fmt.Errorf("key %s: %w", Repr(it.Key().Interface()),
						errs.BadValue{What: "map key", Valid: "comparable", Actual: TypeName(it.Key().Interface())})
				}
				e, err := Convert(it.Value().Interface(), t.Elem())
				if err != nil {
					return reflect.Value{}, fmt.Errorf("value of key %s: %w", Repr(it.Key().Interface()), err)
				}
				out.SetMapIndex(k, e)
			}
			return out, nil
		}
	}
	return reflect.Value{}, wrongType(t, v)
}

func convertElems(from, to reflect.Value, t reflect.Type) error {
	for i := 0; i < from.Len(); i++ {
		e, err := Convert(from.Index(i).Interface(), t.Elem())
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		to.Index(i).Set(e)
	}
	return nil
}

func wrongType(t reflect.Type, v any) error {
	return errs.BadValue{What: "value", Valid: t.String(), Actual: TypeName(v)}
}

func isNumber(k reflect.Kind) bool {
	return isInt(k) || isUint(k) || k == reflect.Float32 || k == reflect.Float64
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func convertNumber(rv reflect.Value, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()
	actual := fmt.Sprint(rv.Interface())
	outOfRange := func() error {
		return errs.OutOfRange{What: "number for " + t.String(),
			ValidLow: "min", ValidHigh: "max", Actual: actual}
	}
	switch {
	case isInt(t.Kind()):
		i, ok := toInt64(rv)
		if !ok {
			return reflect.Value{}, errs.BadValue{What: "value",
				Valid: "integer for " + t.String(), Actual: actual}
		}
		if out.OverflowInt(i) {
			return reflect.Value{}, outOfRange()
		}
		out.SetInt(i)
	case isUint(t.Kind()):
		i, ok := toInt64(rv)
		if rv.Kind() >= reflect.Uint && rv.Kind() <= reflect.Uintptr {
			if out.OverflowUint(rv.Uint()) {
				return reflect.Value{}, outOfRange()
			}
			out.SetUint(rv.Uint())
			break
		}
		if !ok {
			return reflect.Value{}, errs.BadValue{What: "value",
				Valid: "integer for " + t.String(), Actual: actual}
		}
		if i < 0 || out.OverflowUint(uint64(i)) {
			return reflect.Value{}, outOfRange()
		}
		out.SetUint(uint64(i))
	default:
		var f float64
		switch {
		case isInt(rv.Kind()):
			f = float64(rv.Int())
		case isUint(rv.Kind()):
			f = float64(rv.Uint())
		default:
			f = rv.Float()
		}
		if out.OverflowFloat(f) {
			return reflect.Value{}, outOfRange()
		}
		out.SetFloat(f)
	}
	return out, nil
}

// Converts an integer or an integral float to an int64.
func toInt64(rv reflect.Value) (int64, bool) {
	switch {
	case isInt(rv.Kind()):
		return rv.Int(), true
	case isUint(rv.Kind()):
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	}
	return 0, false
}

// ToInt converts an integer-like value to an int. It accepts all integer
// kinds and floats with integral values.
func ToInt(v any) (int, error) {
	if v != nil {
		if i, ok := toInt64(reflect.ValueOf(v)); ok && i == int64(int(i)) {
			return int(i), nil
		}
	}
	return 0, errs.BadValue{What: "index", Valid: "integer", Actual: quoteIfString(v)}
}

func quoteIfString(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return Repr(v)
}
