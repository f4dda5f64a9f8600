package vals

import (
	"fmt"

	"src.insp.sh/pkg/errs"
)

// NoSuchAttr is returned by GetAttr when the value has no member with the
// given name.
type NoSuchAttr struct {
	Type string
	Name string
}

// Kind returns errs.KindAttr.
func (NoSuchAttr) Kind() string { return errs.KindAttr }

func (e NoSuchAttr) Error() string {
	return fmt.Sprintf("%s has no attribute %q", e.Type, e.Name)
}

// NoSuchKey is returned by Index when a map-like value has no entry for the
// key.
type NoSuchKey struct {
	Key any
}

// Kind returns errs.KindKey.
func (NoSuchKey) Kind() string { return errs.KindKey }

func (e NoSuchKey) Error() string {
	return "no such key: " + Repr(e.Key)
}

// NotIndexable is returned by Index for values that cannot be indexed.
type NotIndexable struct {
	Type string
}

// Kind returns errs.KindIndex.
func (NotIndexable) Kind() string { return errs.KindIndex }

func (e NotIndexable) Error() string {
	return e.Type + " is not indexable"
}

// IndexError is returned by Index when the Index method of a value panics.
type IndexError struct {
	Type  string
	Key   any
	Panic any
}

// Kind returns errs.KindIndex.
func (IndexError) Kind() string { return errs.KindIndex }

func (e IndexError) Error() string {
	return fmt.Sprintf("%s.Index(%s) panicked: %v", e.Type, Repr(e.Key), e.Panic)
}

// NotCallable is returned by Call for values that are not functions.
type NotCallable struct {
	Type string
}

// Kind returns errs.KindCall.
func (NotCallable) Kind() string { return errs.KindCall }

func (e NotCallable) Error() string {
	return e.Type + " is not callable"
}

// CallError is returned by Call when the arguments cannot be passed to the
// function, when the function returns a non-nil error as its last result, or
// when it panics. In the second case the message is that of the function's
// error, and Unwrap returns it.
type CallError struct {
	Func  string
	Err   error
	Panic any
}

// Kind returns errs.KindCall.
func (CallError) Kind() string { return errs.KindCall }

func (e CallError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s panicked: %v", e.Func, e.Panic)
	}
	return e.Err.Error()
}

func (e CallError) Unwrap() error { return e.Err }
