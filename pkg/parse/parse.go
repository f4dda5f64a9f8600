// Package parse implements the tokenizer for operation chains.
//
// An operation chain is what the user types at the inspector prompt, like
// `.Header.Get("Accept")[0]`. It consists of three kinds of nodes:
//
//   - An attribute access, a "." followed by an identifier;
//   - A call, text enclosed in "(" and ")";
//   - An index, text enclosed in "[" and "]".
//
// Whitespace between nodes is ignored. The text inside calls and indices is
// not interpreted here; see package expr.
package parse

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"src.insp.sh/pkg/diag"
)

// Source describes a piece of input.
type Source struct {
	Name string
	Code string
}

// Error is a syntax error in an operation chain.
type Error = diag.Error[ErrorTag]

// ErrorTag parameterizes [diag.Error] to define [Error].
type ErrorTag struct{}

func (ErrorTag) ErrorTag() string { return "syntax error" }

// Kind of a Node.
type Kind int

// Possible values for Kind.
const (
	Attr Kind = iota
	Call
	Index
)

var kindNames = [...]string{Attr: "attr", Call: "call", Index: "index"}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Node is one syntactic operation.
type Node struct {
	Kind Kind
	// The attribute name for Attr nodes, or the text between the delimiters
	// for Call and Index nodes.
	Text string
	// Range of the whole node, including the dot or delimiters.
	diag.Ranging
	// Range of Text.
	TextRange diag.Ranging
}

// String returns the literal form of the node.
func (n Node) String() string {
	switch n.Kind {
	case Attr:
		return "." + n.Text
	case Call:
		return "(" + n.Text + ")"
	default:
		return "[" + n.Text + "]"
	}
}

// Parse splits the source into nodes. On failure it returns a nil slice and
// an *Error.
func Parse(src Source) ([]Node, error) {
	ps := &parser{srcName: src.Name, src: src.Code}
	nodes := ps.parse()
	if ps.err != nil {
		return nil, ps.err
	}
	return nodes, nil
}

// parser maintains the mutable state of parsing.
type parser struct {
	srcName string
	src     string
	pos     int
	err     *Error
}

const eof rune = -1

func (ps *parser) peek() rune {
	if ps.pos == len(ps.src) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(ps.src[ps.pos:])
	return r
}

func (ps *parser) next() rune {
	if ps.pos == len(ps.src) {
		return eof
	}
	r, s := utf8.DecodeRuneInString(ps.src[ps.pos:])
	ps.pos += s
	return r
}

func (ps *parser) errorp(r diag.Ranger, partial bool, format string, args ...any) {
	ps.err = &Error{
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(ps.srcName, ps.src, r),
		Partial: partial,
	}
}

func (ps *parser) parse() []Node {
	var nodes []Node
	for ps.err == nil {
		for unicode.IsSpace(ps.peek()) {
			ps.next()
		}
		begin := ps.pos
		switch r := ps.peek(); r {
		case eof:
			return nodes
		case '.':
			ps.next()
			nodes = append(nodes, ps.attr(begin))
		case '(', '[':
			ps.next()
			nodes = append(nodes, ps.group(begin, r))
		default:
			_, size := utf8.DecodeRuneInString(ps.src[ps.pos:])
			ps.errorp(diag.Ranging{From: begin, To: begin + size}, false,
				"unexpected %q, should be '.', '(' or '['", r)
		}
	}
	return nil
}

// Consumes a word up to the next '(', '[' or '.', and uses it as the
// attribute name after trimming whitespace.
func (ps *parser) attr(begin int) Node {
	wordBegin := ps.pos
	for r := ps.peek(); r != eof && r != '(' && r != '[' && r != '.'; r = ps.peek() {
		ps.next()
	}
	word := ps.src[wordBegin:ps.pos]
	name := strings.TrimSpace(word)
	nameBegin := wordBegin + strings.Index(word, name)
	nameRange := diag.Ranging{From: nameBegin, To: nameBegin + len(name)}
	if name == "" {
		ps.errorp(diag.Ranging{From: begin, To: ps.pos}, ps.pos == len(ps.src),
			"missing attribute name after '.'")
	} else if !IsIdentifier(name) {
		ps.errorp(nameRange, false, "bad attribute name %q", name)
	}
	return Node{Attr, name, diag.Ranging{From: begin, To: ps.pos}, nameRange}
}

var closerOf = map[rune]rune{'(': ')', '[': ']', '{': '}'}

// Consumes text up to the closer matching the opener that was just consumed.
// Nested groups must be closed by the closer of their own kind; delimiters
// inside quoted strings are ignored.
func (ps *parser) group(begin int, opener rune) Node {
	kind := Call
	if opener == '[' {
		kind = Index
	}
	textBegin := ps.pos
	want := []rune{closerOf[opener]}
	for len(want) > 0 {
		at := ps.pos
		r := ps.next()
		switch r {
		case eof:
			ps.errorp(diag.Ranging{From: begin, To: ps.pos}, true,
				"unterminated %q, missing %q", opener, want[len(want)-1])
			return Node{}
		case '"', '\'', '`':
			if !ps.quoted(at, r) {
				return Node{}
			}
		case '(', '[', '{':
			want = append(want, closerOf[r])
		case ')', ']', '}':
			if r != want[len(want)-1] {
				ps.errorp(diag.Ranging{From: at, To: ps.pos}, false,
					"mismatched %q, should be %q", r, want[len(want)-1])
				return Node{}
			}
			want = want[:len(want)-1]
		}
	}
	textEnd := ps.pos - 1
	return Node{kind, ps.src[textBegin:textEnd],
		diag.Ranging{From: begin, To: ps.pos},
		diag.Ranging{From: textBegin, To: textEnd}}
}

// Skips a quoted string whose opening quote has been consumed. Backslash
// escapes are honored except in raw strings.
func (ps *parser) quoted(begin int, quote rune) bool {
	for {
		switch r := ps.next(); r {
		case eof:
			ps.errorp(diag.Ranging{From: begin, To: ps.pos}, true,
				"unterminated string, missing %q", quote)
			return false
		case quote:
			return true
		case '\\':
			if quote != '`' {
				ps.next()
			}
		}
	}
}

// IsIdentifier returns whether s is a valid Go identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !(r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r))) {
			return false
		}
	}
	return true
}
