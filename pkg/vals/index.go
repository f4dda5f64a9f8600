package vals

import (
	"reflect"
	"strconv"

	"src.insp.sh/pkg/errs"
)

// Indexer wraps the Index method.
type Indexer interface {
	// Index retrieves the value corresponding to the specified key in the
	// container. It returns the value (if any), and whether it actually exists.
	Index(k any) (v any, ok bool)
}

// ErrIndexer wraps the Index method.
type ErrIndexer interface {
	// Index retrieves one value from the receiver at the specified index.
	Index(k any) (any, error)
}

// Slice is an index key that selects a range of a string, slice or array. A
// nil Low or High means the start or the end.
type Slice struct {
	Low  any
	High any
}

// Repr returns the range as typed inside brackets, like "1:3" or ":2".
func (s Slice) Repr() string {
	repr := func(v any) string {
		if v == nil {
			return ""
		}
		return Repr(v)
	}
	return repr(s.Low) + ":" + repr(s.High)
}

// Index indexes a value with the given key.
//
// Strings, slices and arrays take integer indices, where a negative index
// counts from the end, and Slice keys. Indexing a string yields a byte. Maps
// take keys convertible to their key type. Values implementing Indexer or
// ErrIndexer use their Index method. Pointers and interfaces are followed.
func Index(a, k any) (any, error) {
	switch ia := a.(type) {
	case Indexer:
		return indexWith(a, k, func() (any, error) {
			v, ok := ia.Index(k)
			if !ok {
				return nil, NoSuchKey{k}
			}
			return v, nil
		})
	case ErrIndexer:
		return indexWith(a, k, func() (any, error) { return ia.Index(k) })
	case nil:
		return nil, NotIndexable{"nil"}
	}
	rv := indirect(reflect.ValueOf(a))
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array:
		if s, ok := k.(Slice); ok {
			return indexRange(rv, s)
		}
		i, err := ToInt(k)
		if err != nil {
			return nil, err
		}
		n := rv.Len()
		if i < -n || i >= n {
			return nil, errs.OutOfRange{What: "index",
				ValidLow: strconv.Itoa(-n), ValidHigh: strconv.Itoa(n - 1),
				Actual: strconv.Itoa(i)}
		}
		if i < 0 {
			i += n
		}
		return rv.Index(i).Interface(), nil
	case reflect.Map:
		key, err := Convert(k, rv.Type().Key())
		if err != nil || !hashable(key) {
			return nil, NoSuchKey{k}
		}
		v := rv.MapIndex(key)
		if !v.IsValid() {
			return nil, NoSuchKey{k}
		}
		return v.Interface(), nil
	}
	return nil, NotIndexable{TypeName(a)}
}

// Calls the Index method of a, turning a panic into an IndexError.
func indexWith(a, k any, f func() (any, error)) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, IndexError{Type: TypeName(a), Key: k, Panic: r}
		}
	}()
	return f()
}

func indexRange(rv reflect.Value, s Slice) (any, error) {
	n := rv.Len()
	bound := func(v any, def int) (int, error) {
		if v == nil {
			return def, nil
		}
		i, err := ToInt(v)
		if err != nil {
			return 0, err
		}
		if i < 0 {
			i += n
		}
		if i < 0 || i > n {
			return 0, errs.OutOfRange{What: "slice bound",
				ValidLow: strconv.Itoa(-n), ValidHigh: strconv.Itoa(n),
				Actual: Repr(v)}
		}
		return i, nil
	}
	low, err := bound(s.Low, 0)
	if err != nil {
		return nil, err
	}
	high, err := bound(s.High, n)
	if err != nil {
		return nil, err
	}
	if low > high {
		return nil, errs.OutOfRange{What: "slice end",
			ValidLow: strconv.Itoa(low), ValidHigh: strconv.Itoa(n),
			Actual: strconv.Itoa(high)}
	}
	if rv.Kind() == reflect.Array {
		rv = addressable(rv)
	}
	return rv.Slice(low, high).Interface(), nil
}
