// Package session implements the exploration state of one inspection: the
// root value, the operations applied to it so far, and the current value.
//
// The current value is always the result of applying the logged operations to
// the root, in order. Rewinding to an earlier point recomputes the current
// value by replaying the remaining operations from the root; intermediate
// values are never cached, so operations with side effects are run again.
package session

import (
	"strconv"
	"strings"

	"src.insp.sh/pkg/errs"
	"src.insp.sh/pkg/logutil"
	"src.insp.sh/pkg/op"
	"src.insp.sh/pkg/vals"
)

var logger = logutil.GetLogger("[session] ")

// RootLabelWidth is the maximum width of the label of the root entry in
// Describe.
const RootLabelWidth = 40

// Session holds the state of one inspection.
type Session struct {
	root    any
	current any
	log     []op.Op
}

// New creates a Session inspecting root.
func New(root any) *Session {
	return &Session{root: root, current: root}
}

// Root returns the value the session was created with.
func (s *Session) Root() any { return s.root }

// Current returns the result of applying all logged operations to the root.
func (s *Session) Current() any { return s.current }

// Len returns the number of logged operations.
func (s *Session) Len() int { return len(s.log) }

// Ops returns a copy of the logged operations.
func (s *Session) Ops() []op.Op { return append([]op.Op(nil), s.log...) }

// ApplyError is returned by Apply and RewindTo when an operation fails.
type ApplyError struct {
	// Position of the failing operation, among those passed to Apply or in
	// the log for RewindTo.
	Index int
	Op    op.Op
	Err   error
}

func (e *ApplyError) Error() string { return e.Err.Error() }

func (e *ApplyError) Unwrap() error { return e.Err }

// Fold applies ops to v in order. It returns the last value computed and the
// number of operations that succeeded. The error, if any, is an *ApplyError
// for the first operation that failed.
func Fold(ops []op.Op, v any) (any, int, error) {
	for i, o := range ops {
		result, err := o.Apply(v)
		if err != nil {
			return v, i, &ApplyError{i, o, err}
		}
		v = result
	}
	return v, len(ops), nil
}

// Apply applies ops to the current value in order, appending each operation
// to the log as it succeeds. If an operation fails, the operations before it
// stay applied, and it and the operations after it are not logged.
func (s *Session) Apply(ops ...op.Op) error {
	v, n, err := Fold(ops, s.current)
	s.current = v
	s.log = append(s.log, ops[:n]...)
	if err != nil {
		logger.Printf("apply %s: failed at %d: %v", op.Reprs(ops), n, err)
		return err
	}
	logger.Printf("apply %s: log length %d", op.Reprs(ops), len(s.log))
	return nil
}

// RewindTo truncates the log to its first k operations and recomputes the
// current value by replaying them from the root. It requires 0 <= k <= Len().
//
// If an operation fails during replay, the log is truncated further to the
// operations that replayed successfully, and an *ApplyError is returned.
func (s *Session) RewindTo(k int) error {
	if k < 0 || k > len(s.log) {
		return errs.OutOfRange{What: "history index",
			ValidLow: "0", ValidHigh: strconv.Itoa(len(s.log)), Actual: strconv.Itoa(k)}
	}
	v, n, err := Fold(s.log[:k], s.root)
	s.log = s.log[:n]
	s.current = v
	if err != nil {
		logger.Printf("rewind to %d: replay failed at %d: %v", k, n, err)
		return err
	}
	logger.Printf("rewind to %d", k)
	return nil
}

// Entry is one item of the history of a Session.
type Entry struct {
	// Number of operations needed to get to this point; passing it to
	// RewindTo gets back here.
	Index int
	// Label of the entry; the short representation of the root value for the
	// root entry, the literal form of the operation for others.
	Text string
}

// Describe returns the history of the session: an entry for the root,
// followed by one for each logged operation.
func (s *Session) Describe() []Entry {
	entries := make([]Entry, 0, len(s.log)+1)
	entries = append(entries, Entry{0, vals.ReprShort(s.root, RootLabelWidth)})
	for i, o := range s.log {
		entries = append(entries, Entry{i + 1, o.Repr()})
	}
	return entries
}

// String returns the labels of all entries concatenated, which reads like the
// expression that computes the current value.
func (s *Session) String() string {
	var sb strings.Builder
	for _, e := range s.Describe() {
		sb.WriteString(e.Text)
	}
	return sb.String()
}
