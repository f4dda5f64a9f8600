package vals

import (
	"strings"
	"testing"

	. "src.insp.sh/pkg/tt"
)

func TestRepr(t *testing.T) {
	Test(t, Fn("Repr", Repr), Table{
		Args(nil).Rets("nil"),
		Args(true).Rets("true"),
		Args(12).Rets("12"),
		Args(1.5).Rets("1.5"),
		Args("a\n").Rets(`"a\n"`),
		Args([]int{1, 2}).Rets("[]int{1, 2}"),
		Args(point{1, 2, "p"}).Rets(`vals.point{X:1, Y:2, label:"p"}`),
		Args(uint8(3)).Rets("0x3"),
		Args(strings.Repeat).Rets("<func strings.Repeat>"),
		Args((func())(nil)).Rets("func()(nil)"),
		Args(mustGetAttr(point{}, "Sum")).Rets("<method vals.point.Sum>"),
	})
}

func TestReprShort(t *testing.T) {
	Test(t, Fn("ReprShort", ReprShort), Table{
		Args("abc", 0).Rets(`"abc"`),
		Args("abc", 5).Rets(`"abc"`),
		Args("abcdef", 5).Rets(`"abc…`),
		Args("abc", 1).Rets("…"),
		Args([]int{1, 2, 3}, 6).Rets("[]int…"),
	})
}
