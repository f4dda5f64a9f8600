package vals

import (
	"reflect"
	"testing"

	. "src.insp.sh/pkg/tt"
)

// point is a small struct used throughout the tests.
type point struct {
	X, Y  int
	label string
}

// Sum returns the sum of the coordinates.
func (p point) Sum() int { return p.X + p.Y }

// Scale multiplies the coordinates by k in place.
func (p *point) Scale(k int) *point {
	p.X *= k
	p.Y *= k
	return p
}

func (p point) String() string { return p.label }

type named struct {
	point
	Name string
}

type documented struct{}

func (documented) Doc() string { return "custom doc" }

// add returns the sum of its arguments.
func add(a, b int) int { return a + b }

func TestValueOf(t *testing.T) {
	Test(t, Fn("ValueOf", func(v any) reflect.Type { return ValueOf(v).Type() }), Table{
		Args(nil).Rets(emptyInterfaceType),
		Args(1).Rets(reflect.TypeOf(1)),
	})
}

func TestKind(t *testing.T) {
	Test(t, Fn("Kind", Kind), Table{
		Args(nil).Rets("nil"),
		Args(1).Rets("int"),
		Args("x").Rets("string"),
		Args([]int{}).Rets("slice"),
		Args(&point{}).Rets("ptr"),
		Args(point{}).Rets("struct"),
		Args(add).Rets("func"),
		Args(mustGetAttr(point{}, "Sum")).Rets("method"),
	})
}

func TestTypeName(t *testing.T) {
	Test(t, Fn("TypeName", TypeName), Table{
		Args(nil).Rets("nil"),
		Args(1).Rets("int"),
		Args(map[string]int{}).Rets("map[string]int"),
		Args(&point{}).Rets("*vals.point"),
		Args(add).Rets("func(int, int) int"),
		Args(mustGetAttr(&point{}, "Scale")).Rets("func(int) *vals.point"),
	})
}

func mustGetAttr(v any, name string) any {
	attr, err := GetAttr(v, name)
	if err != nil {
		panic(err)
	}
	return attr
}
