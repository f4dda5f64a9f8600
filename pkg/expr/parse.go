// Package expr implements the small expression language used in the arguments
// of calls and the keys of indices in operation chains.
//
// The language is a subset of Go expressions:
//
//	List   = [ Expr { "," Expr } [ "," ] ]
//	Index  = Expr | [ Expr ] ":" [ Expr ]
//	Expr   = [ "-" | "!" ] Primary { "." Ident | "(" List ")" | "[" Index "]" }
//	Primary = Int | Float | String | Rune | Ident
//	        | "[" List "]" | "{" [ Expr ":" Expr { "," Expr ":" Expr } [ "," ] ] "}"
//	        | "(" Expr ")"
//
// Integers evaluate to int, floats to float64, runes to rune, "[...]" to a
// []any and "{...}" to a map[any]any. Identifiers are looked up in a Scope,
// falling back to the predeclared true, false and nil. The postfix forms
// have the same meaning as the operations of an operation chain.
package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"src.insp.sh/pkg/diag"
)

// Error is a syntax error in an expression.
type Error = diag.Error[ErrorTag]

// ErrorTag parameterizes [diag.Error] to define [Error].
type ErrorTag struct{}

func (ErrorTag) ErrorTag() string { return "syntax error" }

// Source is an expression embedded in a larger piece of input. The
// expression is the part of Code within Ranging; positions in errors are
// relative to the whole of Code.
type Source struct {
	Name string
	Code string
	diag.Ranging
}

// NewSource returns a Source covering all of code.
func NewSource(name, code string) Source {
	return Source{Name: name, Code: code, Ranging: diag.Ranging{From: 0, To: len(code)}}
}

// ParseList parses a comma-separated list of expressions, with an optional
// trailing comma.
func ParseList(src Source) ([]Node, error) {
	ps := newParser(src)
	nodes := ps.list(eof)
	ps.done()
	if ps.err != nil {
		return nil, ps.err
	}
	return nodes, nil
}

// ParseIndex parses an index key, which is either an expression or a range of
// the form "low:high" where both ends are optional.
func ParseIndex(src Source) (Node, error) {
	ps := newParser(src)
	node := ps.index(eof)
	ps.done()
	if ps.err != nil {
		return nil, ps.err
	}
	return node, nil
}

type parser struct {
	srcName string
	src     string
	pos     int
	end     int
	err     *Error
}

const eof rune = -1

func newParser(src Source) *parser {
	return &parser{srcName: src.Name, src: src.Code,
		pos: src.From, end: src.To}
}

func (ps *parser) peek() rune {
	if ps.pos >= ps.end {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(ps.src[ps.pos:ps.end])
	return r
}

func (ps *parser) next() rune {
	if ps.pos >= ps.end {
		return eof
	}
	r, s := utf8.DecodeRuneInString(ps.src[ps.pos:ps.end])
	ps.pos += s
	return r
}

func (ps *parser) skipSpace() {
	for unicode.IsSpace(ps.peek()) {
		ps.next()
	}
}

func (ps *parser) errorp(r diag.Ranger, format string, args ...any) {
	if ps.err != nil {
		return
	}
	ps.err = &Error{
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(ps.srcName, ps.src, r),
	}
}

// Reports an error about the rune at the current position.
func (ps *parser) unexpected(should string) {
	r := ps.peek()
	if r == eof {
		ps.errorp(diag.PointRanging(ps.pos), "unexpected end of input, should be %s", should)
		return
	}
	ps.errorp(diag.Ranging{From: ps.pos, To: ps.pos + utf8.RuneLen(r)},
		"unexpected %q, should be %s", r, should)
}

func (ps *parser) done() {
	ps.skipSpace()
	if ps.err == nil && ps.peek() != eof {
		ps.unexpected("end of input")
	}
}

func (ps *parser) list(closer rune) []Node {
	var nodes []Node
	for ps.err == nil {
		ps.skipSpace()
		if ps.peek() == closer {
			return nodes
		}
		nodes = append(nodes, ps.expr())
		ps.skipSpace()
		switch ps.peek() {
		case ',':
			ps.next()
		case closer:
		default:
			ps.unexpected(describeListEnd(closer))
		}
	}
	return nil
}

func describeListEnd(closer rune) string {
	if closer == eof {
		return "','"
	}
	return fmt.Sprintf("',' or %q", closer)
}

func (ps *parser) index(closer rune) Node {
	ps.skipSpace()
	begin := ps.pos
	var low Node
	if ps.peek() != ':' {
		low = ps.expr()
		ps.skipSpace()
		if ps.peek() != ':' {
			return low
		}
	}
	ps.next()
	ps.skipSpace()
	var high Node
	if r := ps.peek(); r != closer {
		high = ps.expr()
	}
	return &sliceKey{diag.Ranging{From: begin, To: ps.pos}, low, high}
}

func (ps *parser) expr() Node {
	ps.skipSpace()
	begin := ps.pos
	if r := ps.peek(); r == '-' || r == '!' {
		ps.next()
		operand := ps.expr()
		if ps.err != nil {
			return nil
		}
		return &unary{diag.Ranging{From: begin, To: ps.pos}, r, operand}
	}
	n := ps.primary()
	for ps.err == nil {
		ps.skipSpace()
		switch ps.peek() {
		case '.':
			ps.next()
			ps.skipSpace()
			nameBegin := ps.pos
			name := ps.word()
			if name == "" {
				ps.unexpected("attribute name")
				return nil
			}
			n = &attrExpr{diag.Ranging{From: begin, To: ps.pos}, n,
				name, diag.Ranging{From: nameBegin, To: ps.pos}}
		case '(':
			ps.next()
			args := ps.list(')')
			ps.next()
			n = &callExpr{diag.Ranging{From: begin, To: ps.pos}, n, args}
		case '[':
			ps.next()
			key := ps.index(']')
			ps.skipSpace()
			if ps.peek() != ']' {
				ps.unexpected("']'")
				return nil
			}
			ps.next()
			n = &indexExpr{diag.Ranging{From: begin, To: ps.pos}, n, key}
		default:
			return n
		}
	}
	return nil
}

func (ps *parser) primary() Node {
	ps.skipSpace()
	begin := ps.pos
	r := ps.peek()
	switch {
	case r == '"' || r == '`' || r == '\'':
		return ps.quoted()
	case '0' <= r && r <= '9' || r == '.':
		return ps.number()
	case r == '_' || unicode.IsLetter(r):
		name := ps.word()
		return &ident{diag.Ranging{From: begin, To: ps.pos}, name}
	case r == '[':
		ps.next()
		elems := ps.list(']')
		ps.next()
		return &listLit{diag.Ranging{From: begin, To: ps.pos}, elems}
	case r == '{':
		ps.next()
		return ps.mapLit(begin)
	case r == '(':
		ps.next()
		inner := ps.expr()
		ps.skipSpace()
		if ps.err == nil && ps.peek() != ')' {
			ps.unexpected("')'")
		}
		ps.next()
		return inner
	}
	ps.unexpected("expression")
	return nil
}

func (ps *parser) word() string {
	begin := ps.pos
	for r := ps.peek(); r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r); r = ps.peek() {
		ps.next()
	}
	return ps.src[begin:ps.pos]
}

func (ps *parser) mapLit(begin int) Node {
	var keys, values []Node
	for ps.err == nil {
		ps.skipSpace()
		if ps.peek() == '}' {
			ps.next()
			return &mapLit{diag.Ranging{From: begin, To: ps.pos}, keys, values}
		}
		keys = append(keys, ps.expr())
		ps.skipSpace()
		if ps.err == nil && ps.peek() != ':' {
			ps.unexpected("':'")
		}
		ps.next()
		values = append(values, ps.expr())
		ps.skipSpace()
		switch ps.peek() {
		case ',':
			ps.next()
		case '}':
		default:
			ps.unexpected("',' or '}'")
		}
	}
	return nil
}

func isNumberRune(r rune) bool {
	return r == '_' || r == '.' || '0' <= r && r <= '9' || 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func (ps *parser) number() Node {
	begin := ps.pos
	for r := ps.peek(); isNumberRune(r); r = ps.peek() {
		ps.next()
		// Signed exponent of a decimal or hexadecimal float.
		if (r == 'e' || r == 'E' || r == 'p' || r == 'P') && (ps.peek() == '+' || ps.peek() == '-') {
			ps.next()
		}
	}
	text := ps.src[begin:ps.pos]
	r := diag.Ranging{From: begin, To: ps.pos}
	if i, err := strconv.ParseInt(text, 0, 0); err == nil {
		return &literal{r, int(i)}
	} else if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange && !strings.ContainsAny(text, ".eEpP") {
		ps.errorp(r, "integer %s overflows int", text)
		return nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return &literal{r, f}
	}
	ps.errorp(r, "bad number %s", text)
	return nil
}

func (ps *parser) quoted() Node {
	begin := ps.pos
	quote := ps.next()
	for {
		r := ps.next()
		if r == eof {
			ps.errorp(diag.Ranging{From: begin, To: ps.pos}, "unterminated %s", quoteName(quote))
			return nil
		}
		if r == quote {
			break
		}
		if r == '\\' && quote != '`' {
			ps.next()
		}
	}
	text := ps.src[begin:ps.pos]
	rg := diag.Ranging{From: begin, To: ps.pos}
	s, err := strconv.Unquote(text)
	if err != nil {
		ps.errorp(rg, "bad %s %s", quoteName(quote), text)
		return nil
	}
	if quote == '\'' {
		r, _ := utf8.DecodeRuneInString(s)
		return &literal{rg, r}
	}
	return &literal{rg, s}
}

func quoteName(quote rune) string {
	switch quote {
	case '\'':
		return "rune literal"
	case '`':
		return "raw string"
	default:
		return "string"
	}
}
