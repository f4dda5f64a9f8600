package vals

import "reflect"

// Hashable reports whether v can be used as a map key without panicking.
// Unlike reflect.Type.Comparable, it looks at the dynamic values held in
// interfaces, including interface fields of structs and elements of arrays.
func Hashable(v any) bool {
	return v == nil || hashable(reflect.ValueOf(v))
}

func hashable(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Interface:
		return rv.IsNil() || hashable(rv.Elem())
	case reflect.Slice, reflect.Map, reflect.Func:
		return false
	case reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if !hashable(rv.Index(i)) {
				return false
			}
		}
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if !hashable(rv.Field(i)) {
				return false
			}
		}
	}
	return true
}
