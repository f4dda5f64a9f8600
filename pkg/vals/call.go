package vals

import (
	"fmt"
	"reflect"

	"src.insp.sh/pkg/errs"
)

// IsCallable reports whether v can be passed to Call.
func IsCallable(v any) bool {
	if _, ok := v.(Method); ok {
		return true
	}
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}

// Signature returns the type of a callable value as Go writes func types, like
// "func(string, ...int) error". It returns "" for values that are not
// callable.
func Signature(v any) string {
	if !IsCallable(v) {
		return ""
	}
	return TypeName(v)
}

// Call calls fn with args, converting each argument to the type of the
// corresponding parameter with Convert.
//
// If the last result of fn has type error and is not nil, Call returns a
// CallError wrapping it. A panic in fn is recovered and also turned into a
// CallError. Otherwise, a function with no results (after dropping a trailing
// nil error) returns nil, one with one result returns that result, and one with
// more results returns them as a []any.
func Call(fn any, args []any) (result any, err error) {
	name := ""
	var rv reflect.Value
	switch fn := fn.(type) {
	case Method:
		name = fn.recv.Type().String() + "." + fn.name
		rv = fn.fn
	default:
		if !IsCallable(fn) {
			return nil, NotCallable{TypeName(fn)}
		}
		rv = reflect.ValueOf(fn)
		if rv.IsNil() {
			return nil, NotCallable{"nil " + TypeName(fn)}
		}
		name = funcName(rv)
	}

	t := rv.Type()
	nIn := t.NumIn()
	if t.IsVariadic() {
		if len(args) < nIn-1 {
			return nil, errs.ArityMismatch{What: "arguments",
				ValidLow: nIn - 1, ValidHigh: -1, Actual: len(args)}
		}
	} else if len(args) != nIn {
		return nil, errs.ArityMismatch{What: "arguments",
			ValidLow: nIn, ValidHigh: nIn, Actual: len(args)}
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var paramType reflect.Type
		if t.IsVariadic() && i >= nIn-1 {
			paramType = t.In(nIn - 1).Elem()
		} else {
			paramType = t.In(i)
		}
		v, err := Convert(arg, paramType)
		if err != nil {
			return nil, CallError{Func: name,
				Err: fmt.Errorf("argument %d: %w", i+1, err)}
		}
		in[i] = v
	}

	defer func() {
		if r := recover(); r != nil {
			result, err = nil, CallError{Func: name, Panic: r}
		}
	}()
	outs := rv.Call(in)

	if n := len(outs); n > 0 && t.Out(n-1) == errorType {
		if e := outs[n-1].Interface(); e != nil {
			return nil, CallError{Func: name, Err: e.(error)}
		}
		outs = outs[:n-1]
	}
	switch len(outs) {
	case 0:
		return nil, nil
	case 1:
		return outs[0].Interface(), nil
	default:
		results := make([]any, len(outs))
		for i, out := range outs {
			results[i] = out.Interface()
		}
		return results, nil
	}
}
