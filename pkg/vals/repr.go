package vals

import (
	"fmt"
	"reflect"
	"runtime"
	"strconv"
)

// Reprer wraps the Repr method.
type Reprer interface {
	// Repr returns a string that represents the value, preferably as a Go
	// expression that evaluates to it.
	Repr() string
}

// Repr returns the representation of a value. Strings are quoted, funcs are
// shown by name, types implementing Reprer use their Repr method, and other
// values are formatted with the %#v verb, which honors fmt.GoStringer.
func Repr(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case Reprer:
		return v.Repr()
	case string:
		return strconv.Quote(v)
	case bool, int, float64:
		return fmt.Sprint(v)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Func {
		if rv.IsNil() {
			return fmt.Sprintf("%s(nil)", rv.Type())
		}
		return "<func " + funcName(rv) + ">"
	}
	return fmt.Sprintf("%#v", v)
}

// ReprShort is like Repr, but cuts the result to at most max runes, marking
// the cut with an ellipsis. A max of zero or less means no limit.
func ReprShort(v any, max int) string {
	s := Repr(v)
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

func funcName(fn reflect.Value) string {
	if f := runtime.FuncForPC(fn.Pointer()); f != nil {
		return f.Name()
	}
	return fn.Type().String()
}
