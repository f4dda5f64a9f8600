package diag

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ErrorTag is used to parameterize [Error] into different concrete types. The
// ErrorTag method is called with a zero receiver, and its return value is used
// as the kind of the error.
type ErrorTag interface {
	ErrorTag() string
}

// Error represents an error with context that can be showed.
type Error[T ErrorTag] struct {
	Message string
	Context Context
	// Indicates whether the error may be caused by partial input. More
	// input can fix such an error.
	Partial bool
}

// Kind returns the kind of the error, as determined by the type parameter.
func (e *Error[T]) Kind() string {
	var t T
	return t.ErrorTag()
}

// Error returns a plain text representation of the error.
func (e *Error[T]) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Kind(), e.Context.describeStart(), e.Message)
}

// Range returns the range of the error.
func (e *Error[T]) Range() Ranging {
	return e.Context.Range()
}

// Variables controlling how the message is marked. Can be changed in tests.
var (
	messageStart = "\033[31;1m"
	messageEnd   = "\033[m"
)

// Show shows the error.
func (e *Error[T]) Show(indent string) string {
	header := fmt.Sprintf("%s: %s%s%s\n", capitalize(e.Kind()), messageStart, e.Message, messageEnd)
	return header + indent + "  " + e.Context.Show(indent+"  ")
}

// UnpackErrors returns all errors of the given tag wrapped in err. It
// understands errors that wrap several errors with an Unwrap() []error method.
func UnpackErrors[T ErrorTag](err error) []*Error[T] {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error[T]); ok {
		return []*Error[T]{e}
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var all []*Error[T]
		for _, e := range joined.Unwrap() {
			all = append(all, UnpackErrors[T](e)...)
		}
		return all
	}
	var e *Error[T]
	if errors.As(err, &e) {
		return []*Error[T]{e}
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}
