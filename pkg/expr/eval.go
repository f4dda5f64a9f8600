package expr

import (
	"reflect"

	"src.insp.sh/pkg/diag"
	"src.insp.sh/pkg/errs"
	"src.insp.sh/pkg/vals"
)

// Scope maps names to the values they stand for in expressions.
type Scope map[string]any

// NoSuchName is returned when evaluating an identifier that is neither in the
// Scope nor predeclared.
type NoSuchName struct {
	Name string
}

// Kind returns errs.KindName.
func (NoSuchName) Kind() string { return errs.KindName }

func (e NoSuchName) Error() string { return "undefined: " + e.Name }

var predeclared = map[string]any{"true": true, "false": false, "nil": nil}

// Node is a parsed expression.
type Node interface {
	diag.Ranger
	// Eval evaluates the expression, resolving identifiers in scope.
	Eval(scope Scope) (any, error)
}

// EvalList evaluates each node in turn and returns the values.
func EvalList(nodes []Node, scope Scope) ([]any, error) {
	values := make([]any, len(nodes))
	for i, n := range nodes {
		v, err := n.Eval(scope)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

type literal struct {
	diag.Ranging
	value any
}

func (n *literal) Eval(Scope) (any, error) { return n.value, nil }

type ident struct {
	diag.Ranging
	name string
}

func (n *ident) Eval(scope Scope) (any, error) {
	if v, ok := scope[n.name]; ok {
		return v, nil
	}
	if v, ok := predeclared[n.name]; ok {
		return v, nil
	}
	return nil, NoSuchName{n.name}
}

type listLit struct {
	diag.Ranging
	elems []Node
}

func (n *listLit) Eval(scope Scope) (any, error) {
	values, err := EvalList(n.elems, scope)
	if err != nil {
		return nil, err
	}
	return values, nil
}

type mapLit struct {
	diag.Ranging
	keys   []Node
	values []Node
}

func (n *mapLit) Eval(scope Scope) (any, error) {
	m := make(map[any]any, len(n.keys))
	for i, kn := range n.keys {
		k, err := kn.Eval(scope)
		if err != nil {
			return nil, err
		}
		if !vals.Hashable(k) {
			return nil, errs.BadValue{What: "map key",
				Valid: "comparable", Actual: vals.TypeName(k)}
		}
		v, err := n.values[i].Eval(scope)
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}

type unary struct {
	diag.Ranging
	op      rune
	operand Node
}

func (n *unary) Eval(scope Scope) (any, error) {
	v, err := n.operand.Eval(scope)
	if err != nil {
		return nil, err
	}
	if n.op == '!' {
		b, ok := v.(bool)
		if !ok {
			return nil, errs.BadValue{What: "operand of !",
				Valid: "bool", Actual: vals.TypeName(v)}
		}
		return !b, nil
	}
	rv := vals.ValueOf(v)
	neg := reflect.New(rv.Type()).Elem()
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		neg.SetInt(-rv.Int())
	case reflect.Float32, reflect.Float64:
		neg.SetFloat(-rv.Float())
	default:
		return nil, errs.BadValue{What: "operand of -",
			Valid: "signed number", Actual: vals.TypeName(v)}
	}
	return neg.Interface(), nil
}

type attrExpr struct {
	diag.Ranging
	obj       Node
	name      string
	nameRange diag.Ranging
}

func (n *attrExpr) Eval(scope Scope) (any, error) {
	v, err := n.obj.Eval(scope)
	if err != nil {
		return nil, err
	}
	return vals.GetAttr(v, n.name)
}

type callExpr struct {
	diag.Ranging
	fn   Node
	args []Node
}

func (n *callExpr) Eval(scope Scope) (any, error) {
	fn, err := n.fn.Eval(scope)
	if err != nil {
		return nil, err
	}
	args, err := EvalList(n.args, scope)
	if err != nil {
		return nil, err
	}
	return vals.Call(fn, args)
}

type indexExpr struct {
	diag.Ranging
	obj Node
	key Node
}

func (n *indexExpr) Eval(scope Scope) (any, error) {
	v, err := n.obj.Eval(scope)
	if err != nil {
		return nil, err
	}
	k, err := n.key.Eval(scope)
	if err != nil {
		return nil, err
	}
	return vals.Index(v, k)
}

type sliceKey struct {
	diag.Ranging
	low  Node
	high Node
}

func (n *sliceKey) Eval(scope Scope) (any, error) {
	var s vals.Slice
	var err error
	if n.low != nil {
		if s.Low, err = n.low.Eval(scope); err != nil {
			return nil, err
		}
	}
	if n.high != nil {
		if s.High, err = n.high.Eval(scope); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// HasCall reports whether evaluating n would call a function or method.
func HasCall(n Node) bool {
	switch n := n.(type) {
	case *callExpr:
		return true
	case *listLit:
		return anyHasCall(n.elems)
	case *mapLit:
		return anyHasCall(n.keys) || anyHasCall(n.values)
	case *unary:
		return HasCall(n.operand)
	case *attrExpr:
		return HasCall(n.obj)
	case *indexExpr:
		return HasCall(n.obj) || HasCall(n.key)
	case *sliceKey:
		return HasCall(n.low) || HasCall(n.high)
	}
	return false
}

func anyHasCall(nodes []Node) bool {
	for _, n := range nodes {
		if HasCall(n) {
			return true
		}
	}
	return false
}

// Parses and evaluates a single expression.
func evalSource(src Source, scope Scope) (any, error) {
	ps := newParser(src)
	n := ps.expr()
	ps.done()
	if ps.err != nil {
		return nil, ps.err
	}
	return n.Eval(scope)
}
