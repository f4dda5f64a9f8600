// Package op implements operations, the units of an operation chain.
//
// There are three kinds of operations, mirroring the three kinds of nodes
// produced by package parse: GetAttr, Call and Index. An operation is
// immutable once constructed; the arguments of a Call and the key of an Index
// are evaluated once, when the operation is built, and reused each time it is
// applied.
package op

import (
	"src.insp.sh/pkg/expr"
	"src.insp.sh/pkg/parse"
	"src.insp.sh/pkg/vals"
)

// Op is an operation that can be applied to a value.
type Op interface {
	// Apply applies the operation to v and returns the result.
	Apply(v any) (any, error)
	// Repr returns the literal form of the operation, which parses back to an
	// equivalent operation.
	Repr() string
}

// GetAttr looks up a field or method by name.
type GetAttr struct {
	Name string
}

func (op GetAttr) Apply(v any) (any, error) { return vals.GetAttr(v, op.Name) }

func (op GetAttr) Repr() string { return "." + op.Name }

// Call calls a function with arguments that were evaluated when the operation
// was built.
type Call struct {
	ArgsText string
	args     []any
}

// NewCall builds a Call from the text between the parentheses, evaluating it
// as a list of expressions in scope.
func NewCall(argsText string, scope expr.Scope) (Call, error) {
	return newCall(expr.NewSource("[args]", argsText), scope)
}

func newCall(src expr.Source, scope expr.Scope) (Call, error) {
	nodes, err := expr.ParseList(src)
	if err != nil {
		return Call{}, err
	}
	args, err := expr.EvalList(nodes, scope)
	if err != nil {
		return Call{}, err
	}
	return Call{src.Code[src.From:src.To], args}, nil
}

// Args returns a copy of the evaluated arguments.
func (op Call) Args() []any { return append([]any(nil), op.args...) }

func (op Call) Apply(v any) (any, error) { return vals.Call(v, op.args) }

func (op Call) Repr() string { return "(" + op.ArgsText + ")" }

// Index indexes a value with a key that was evaluated when the operation was
// built.
type Index struct {
	IndexText string
	key       any
}

// NewIndex builds an Index from the text between the brackets, evaluating it
// as an index key in scope.
func NewIndex(indexText string, scope expr.Scope) (Index, error) {
	return newIndex(expr.NewSource("[index]", indexText), scope)
}

func newIndex(src expr.Source, scope expr.Scope) (Index, error) {
	node, err := expr.ParseIndex(src)
	if err != nil {
		return Index{}, err
	}
	key, err := node.Eval(scope)
	if err != nil {
		return Index{}, err
	}
	return Index{src.Code[src.From:src.To], key}, nil
}

// Key returns the evaluated key.
func (op Index) Key() any { return op.key }

func (op Index) Apply(v any) (any, error) { return vals.Index(v, op.key) }

func (op Index) Repr() string { return "[" + op.IndexText + "]" }

// Parse parses an operation chain and builds its operations, evaluating the
// arguments of calls and the keys of indices in scope. If any part fails, no
// operations are returned.
func Parse(src parse.Source, scope expr.Scope) ([]Op, error) {
	nodes, err := parse.Parse(src)
	if err != nil {
		return nil, err
	}
	ops := make([]Op, len(nodes))
	for i, n := range nodes {
		exprSrc := expr.Source{Name: src.Name, Code: src.Code, Ranging: n.TextRange}
		switch n.Kind {
		case parse.Attr:
			ops[i] = GetAttr{n.Text}
		case parse.Call:
			ops[i], err = newCall(exprSrc, scope)
		case parse.Index:
			ops[i], err = newIndex(exprSrc, scope)
		}
		if err != nil {
			return nil, err
		}
	}
	return ops, nil
}

// Reprs returns the concatenated literal forms of ops.
func Reprs(ops []Op) string {
	s := ""
	for _, op := range ops {
		s += op.Repr()
	}
	return s
}
