// Package vals implements the operations the inspector performs on arbitrary
// Go values, using reflection.
//
// The operations mirror what the user can type at the prompt: GetAttr for
// ".name", Call for "(args)" and Index for "[key]". Other functions describe a
// value: its Kind, TypeName, Repr, Signature, Doc and Members.
package vals

import (
	"reflect"
)

var (
	dummy              any
	nilValue           = reflect.ValueOf(&dummy).Elem()
	emptyInterfaceType = reflect.TypeOf(&dummy).Elem()
	errorType          = reflect.TypeOf((*error)(nil)).Elem()
)

// ValueOf is like reflect.ValueOf, except that when given an argument of nil,
// it does not return a zero Value, but the Value for the zero value of the
// empty interface.
func ValueOf(i any) reflect.Value {
	if i == nil {
		return nilValue
	}
	return reflect.ValueOf(i)
}

// TypeOf is like reflect.TypeOf, except that when given an argument of nil, it
// does not return nil, but the Type for the empty interface.
func TypeOf(i any) reflect.Type {
	if i == nil {
		return emptyInterfaceType
	}
	return reflect.TypeOf(i)
}

// Kind returns a short word describing what sort of value v is. It is "nil"
// for nil, "method" for a Method, and the name of the reflect.Kind otherwise.
func Kind(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case Method:
		return "method"
	}
	return reflect.TypeOf(v).Kind().String()
}

// TypeName returns the name of the type of v, as Go would write it.
func TypeName(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case Method:
		return v.fn.Type().String()
	}
	return reflect.TypeOf(v).String()
}

// Returns v with pointers and interfaces followed, stopping at nil ones.
func indirect(v reflect.Value) reflect.Value {
	for (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

// Returns an addressable copy of v, or v itself if it is already addressable.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c
}
