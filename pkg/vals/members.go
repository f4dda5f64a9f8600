package vals

import (
	"reflect"
	"sort"
)

// Tiers holds the member names of a value, sorted and split by visibility.
type Tiers struct {
	// Exported fields and methods, except protocol methods.
	Public []string
	// Unexported fields.
	Private []string
	// Methods that implement well-known standard interfaces.
	Protocol []string
}

// All returns the names of all tiers, in tier order.
func (t Tiers) All() []string {
	all := make([]string, 0, len(t.Public)+len(t.Private)+len(t.Protocol))
	all = append(all, t.Public...)
	all = append(all, t.Private...)
	return append(all, t.Protocol...)
}

// Len returns the total number of names.
func (t Tiers) Len() int {
	return len(t.Public) + len(t.Private) + len(t.Protocol)
}

var protocolMethods = map[string]bool{}

func init() {
	for _, name := range []string{
		"String", "GoString", "Format", "Error", "Unwrap", "Is", "As",
		"Len", "Less", "Swap",
		"Read", "Write", "Close", "Seek", "ReadAt", "WriteAt", "ReadFrom",
		"WriteTo", "ReadByte", "WriteByte", "ReadRune", "WriteString",
		"UnreadByte", "UnreadRune",
		"MarshalJSON", "UnmarshalJSON", "MarshalText", "UnmarshalText",
		"MarshalBinary", "UnmarshalBinary", "MarshalYAML", "UnmarshalYAML",
		"GobEncode", "GobDecode",
		"ServeHTTP", "Scan", "Value",
	} {
		protocolMethods[name] = true
	}
}

// Reports whether name is the name of a method of a well-known standard
// interface, like String or MarshalJSON.
func isProtocolMethod(name string) bool {
	return protocolMethods[name]
}

// Members returns the names GetAttr accepts for v. Methods include those with
// a pointer receiver. Fields include promoted fields and fields of the value a
// pointer points to.
func Members(v any) Tiers {
	if m, ok := v.(Method); ok {
		v = m.Func()
	}
	var t Tiers
	if v == nil {
		return t
	}
	seen := map[string]bool{}
	add := func(list *[]string, name string) {
		if !seen[name] {
			seen[name] = true
			*list = append(*list, name)
		}
	}

	typ := reflect.TypeOf(v)
	mt := typ
	if mt.Kind() != reflect.Ptr && mt.Kind() != reflect.Interface {
		mt = reflect.PtrTo(mt)
	}
	for i := 0; i < mt.NumMethod(); i++ {
		name := mt.Method(i).Name
		if isProtocolMethod(name) {
			add(&t.Protocol, name)
		} else {
			add(&t.Public, name)
		}
	}

	rv := indirect(reflect.ValueOf(v))
	if rv.Kind() == reflect.Struct {
		for _, f := range reflect.VisibleFields(rv.Type()) {
			if f.IsExported() {
				add(&t.Public, f.Name)
			} else {
				add(&t.Private, f.Name)
			}
		}
	}

	sort.Strings(t.Public)
	sort.Strings(t.Private)
	sort.Strings(t.Protocol)
	return t
}
