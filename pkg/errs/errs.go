// Package errs declares error types shared by the reflection and operation
// layers, and the taxonomy of error kinds shown to the user.
package errs

import (
	"errors"
	"fmt"
	"strconv"
)

// Kinds of errors, as shown to the user before the error message.
const (
	KindSyntax = "syntax error"
	KindAttr   = "attribute error"
	KindCall   = "call error"
	KindIndex  = "index error"
	KindKey    = "key error"
	KindName   = "name error"
	KindType   = "type error"
)

// Kinder is implemented by errors that belong to one of the kinds above.
type Kinder interface {
	error
	Kind() string
}

// KindOf returns the kind of the first error in err's chain that has one, or
// "error" if none does.
func KindOf(err error) string {
	var k Kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return "error"
}

// OutOfRange encodes an error where a value is out of its valid range.
type OutOfRange struct {
	What      string
	ValidLow  string
	ValidHigh string
	Actual    string
}

// Kind returns KindIndex.
func (e OutOfRange) Kind() string { return KindIndex }

// Error implements the error interface.
func (e OutOfRange) Error() string {
	if isInt(e.ValidLow) && isInt(e.ValidHigh) && atoi(e.ValidHigh) < atoi(e.ValidLow) {
		return fmt.Sprintf(
			"out of range: %v has no valid value, but is %v", e.What, e.Actual)
	}
	return fmt.Sprintf(
		"out of range: %s must be from %s to %s, but is %s",
		e.What, e.ValidLow, e.ValidHigh, e.Actual)
}

// ArityMismatch encodes an error where the expected number of values is out of
// the valid range.
type ArityMismatch struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    int
}

// Kind returns KindCall.
func (e ArityMismatch) Kind() string { return KindCall }

// Error implements the error interface.
func (e ArityMismatch) Error() string {
	switch {
	case e.ValidHigh == e.ValidLow:
		return fmt.Sprintf("arity mismatch: %v must be %v, but is %v",
			e.What, nValues(e.ValidLow), nValues(e.Actual))
	case e.ValidHigh == -1:
		return fmt.Sprintf("arity mismatch: %v must be %v or more values, but is %v",
			e.What, e.ValidLow, nValues(e.Actual))
	default:
		return fmt.Sprintf("arity mismatch: %v must be %v to %v values, but is %v",
			e.What, e.ValidLow, e.ValidHigh, nValues(e.Actual))
	}
}

// BadValue encodes an error where the value does not meet a requirement.
type BadValue struct {
	What   string
	Valid  string
	Actual string
}

// Kind returns KindType.
func (e BadValue) Kind() string { return KindType }

// Error implements the error interface.
func (e BadValue) Error() string {
	return fmt.Sprintf(
		"bad value: %v must be %v, but is %v", e.What, e.Valid, e.Actual)
}

func nValues(n int) string {
	if n == 1 {
		return "1 value"
	}
	return strconv.Itoa(n) + " values"
}

func isInt(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}
