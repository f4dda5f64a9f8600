package vals

import (
	"math"
	"reflect"
	"testing"
	"time"

	"src.insp.sh/pkg/errs"
	. "src.insp.sh/pkg/tt"
)

func convertTo(v any, t reflect.Type) (any, error) {
	rv, err := Convert(v, t)
	if err != nil {
		return nil, err
	}
	return rv.Interface(), nil
}

var (
	intType      = reflect.TypeOf(0)
	int8Type     = reflect.TypeOf(int8(0))
	uintType     = reflect.TypeOf(uint(0))
	float32Type  = reflect.TypeOf(float32(0))
	stringType   = reflect.TypeOf("")
	durationType = reflect.TypeOf(time.Duration(0))
	anyType      = reflect.TypeOf((*any)(nil)).Elem()
)

func TestConvert(t *testing.T) {
	Test(t, Fn("Convert", convertTo), Table{
		Args(1, intType).Rets(1, nil),
		Args("x", anyType).Rets("x", nil),
		Args(1, int8Type).Rets(int8(1), nil),
		Args(1.0, intType).Rets(1, nil),
		Args(1, float32Type).Rets(float32(1), nil),
		Args(3, uintType).Rets(uint(3), nil),
		Args(5, durationType).Rets(time.Duration(5), nil),
		Args(int64(7), durationType).Rets(time.Duration(7), nil),
		Args('a', stringType).Rets(nil, errs.BadValue{
			What: "value", Valid: "string", Actual: "int32"}),

		Args(1.5, intType).Rets(nil, errs.BadValue{
			What: "value", Valid: "integer for int", Actual: "1.5"}),
		Args(300, int8Type).Rets(nil, errs.OutOfRange{
			What: "number for int8", ValidLow: "min", ValidHigh: "max", Actual: "300"}),
		Args(-1, uintType).Rets(nil, errs.OutOfRange{
			What: "number for uint", ValidLow: "min", ValidHigh: "max", Actual: "-1"}),
		Args(math.MaxFloat64, float32Type).Rets(nil, errs.OutOfRange{
			What: "number for float32", ValidLow: "min", ValidHigh: "max",
			Actual: "1.7976931348623157e+308"}),

		Args(nil, reflect.TypeOf(&point{})).Rets((*point)(nil), nil),
		Args(nil, reflect.TypeOf([]int{})).Rets([]int(nil), nil),
		Args(nil, intType).Rets(nil, errs.BadValue{
			What: "value", Valid: "int", Actual: "nil"}),

		Args([]any{1, 2}, reflect.TypeOf([]int8{})).Rets([]int8{1, 2}, nil),
		Args([]any{1, 2}, reflect.TypeOf([2]int{})).Rets([2]int{1, 2}, nil),
		Args([]any{1}, reflect.TypeOf([2]int{})).Rets(nil, errs.BadValue{
			What: "value", Valid: "[2]int", Actual: "[]interface {}"}),
		Args(map[any]any{"a": 1}, reflect.TypeOf(map[string]int{})).
			Rets(map[string]int{"a": 1}, nil),
		Args(map[any]any{1: 1}, reflect.TypeOf(map[string]int{})).
			Rets(nil, ErrorWith("key 1")),
	})
}

func TestConvert_Method(t *testing.T) {
	m := mustGetAttr(point{1, 2, ""}, "Sum")
	rv, err := Convert(m, reflect.TypeOf(func() int { return 0 }))
	if err != nil {
		t.Fatal(err)
	}
	if got := rv.Interface().(func() int)(); got != 3 {
		t.Errorf("converted method returns %v, want 3", got)
	}
}

func TestToInt(t *testing.T) {
	Test(t, Fn("ToInt", ToInt), Table{
		Args(1).Rets(1, nil),
		Args(int64(-2)).Rets(-2, nil),
		Args(uint8(3)).Rets(3, nil),
		Args(4.0).Rets(4, nil),
		Args(4.5).Rets(0, errs.BadValue{What: "index", Valid: "integer", Actual: "4.5"}),
		Args("4").Rets(0, errs.BadValue{What: "index", Valid: "integer", Actual: `"4"`}),
		Args(nil).Rets(0, errs.BadValue{What: "index", Valid: "integer", Actual: "nil"}),
	})
}
