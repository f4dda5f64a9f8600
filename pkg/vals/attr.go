package vals

import (
	"reflect"
	"unsafe"
)

// Method is a method bound to its receiver. It is what GetAttr returns for
// method names, and can be passed to Call.
type Method struct {
	recv reflect.Value
	name string
	fn   reflect.Value
}

// Name returns the name of the method.
func (m Method) Name() string { return m.name }

// Func returns the bound method as a func value.
func (m Method) Func() any { return m.fn.Interface() }

// Repr returns "<method T.Name>".
func (m Method) Repr() string {
	return "<method " + m.recv.Type().String() + "." + m.name + ">"
}

// GetAttr returns the member of v with the given name. Methods are looked up
// first, including methods with a pointer receiver, which are bound to a copy
// of v if v is not a pointer. Then struct fields are looked up, following
// pointers and including promoted fields. Unexported fields can be read, but
// the result is a copy.
func GetAttr(v any, name string) (any, error) {
	if m, ok := v.(Method); ok {
		v = m.Func()
	}
	if v == nil {
		return nil, NoSuchAttr{"nil", name}
	}
	rv := reflect.ValueOf(v)
	if m, ok := methodByName(rv, name); ok {
		return m, nil
	}
	if f, ok := fieldByName(rv, name); ok {
		return f, nil
	}
	return nil, NoSuchAttr{TypeName(v), name}
}

func methodByName(rv reflect.Value, name string) (Method, bool) {
	if fn := rv.MethodByName(name); fn.IsValid() {
		return Method{rv, name, fn}, true
	}
	if rv.Kind() != reflect.Ptr {
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		if fn := ptr.MethodByName(name); fn.IsValid() {
			return Method{ptr, name, fn}, true
		}
	}
	return Method{}, false
}

func fieldByName(rv reflect.Value, name string) (any, bool) {
	rv = indirect(rv)
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	sf, ok := rv.Type().FieldByName(name)
	if !ok {
		return nil, false
	}
	rv = addressable(rv)
	f, err := rv.FieldByIndexErr(sf.Index)
	if err != nil {
		// Promoted through a nil embedded pointer.
		return nil, false
	}
	if f.CanInterface() {
		return f.Interface(), true
	}
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem().Interface(), true
}
