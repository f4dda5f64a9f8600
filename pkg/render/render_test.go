package render

import (
	"strings"
	"testing"

	"src.insp.sh/pkg/op"
	"src.insp.sh/pkg/session"
	"src.insp.sh/pkg/testutil"
	"src.insp.sh/pkg/tt"
	"src.insp.sh/pkg/ui"
)

var Args = tt.Args

// double returns twice x.
func double(x int) int { return 2 * x }

type pair struct {
	Left, Right int
	note        string
}

func (p pair) Sum() int { return p.Left + p.Right }
func (p pair) String() string { return p.note }
func (p *pair) Swap(i, j int) {}
func (p *pair) Reset(note string) { p.note = note }

func TestGrid(t *testing.T) {
	tt.Test(t, tt.Fn("Grid", Grid), tt.Table{
		Args([][]string(nil), GridConfig{}).Rets(""),
		Args([][]string{{}, {}}, GridConfig{}).Rets(""),
		Args([][]string{{"a", "bb", "ccc"}}, GridConfig{Width: 8, Padding: 1}).
			Rets("   a  bb\n ccc"),
		// Column width is the widest name across all groups.
		Args([][]string{{"x"}, {"yyyy"}}, GridConfig{Width: 80, Padding: 1}).
			Rets("    x\n\n yyyy"),
		// Empty groups are skipped.
		Args([][]string{{"x"}, {}, {"yy"}}, GridConfig{Width: 80, Padding: 1}).
			Rets("  x\n\n yy"),
		// At least one column.
		Args([][]string{{"long", "names"}}, GridConfig{Width: 2, Padding: 1}).
			Rets("  long\n names"),
		// Display width of wide characters.
		Args([][]string{{"你好", "a"}}, GridConfig{Width: 80}).Rets("你好   a"),
		// Zero width means 80.
		Args([][]string{{"a", "b"}}, GridConfig{Padding: 39}).
			Rets(strings.Repeat(" ", 39) + "a" + strings.Repeat(" ", 39) + "b"),
	})
}

func TestHistory(t *testing.T) {
	sess := session.New([]int{1, 2})
	idx, err := op.NewIndex("0", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := sess.Apply(idx); err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	History(&sb, sess, &Options{})
	want := "\nInspect:\n" +
		"            0  1\n" +
		"  []int{1, 2}[0]\n"
	if sb.String() != want {
		t.Errorf("History wrote %q, want %q", sb.String(), want)
	}
}

func TestHistory_LabelNarrowerThanIndex(t *testing.T) {
	type self struct{ X any }
	var v self
	v.X = &v
	sess := session.New(&v)
	ops := make([]op.Op, 10)
	for i := range ops {
		ops[i] = op.GetAttr{Name: "X"}
	}
	if err := sess.Apply(ops...); err != nil {
		t.Fatal(err)
	}

	var sb strings.Builder
	History(&sb, sess, &Options{})
	lines := strings.Split(sb.String(), "\n")
	// The last entry, "10", is as wide as its label ".X".
	if !strings.HasSuffix(lines[2], " 9 10") {
		t.Errorf("index line %q does not end with %q", lines[2], " 9 10")
	}
	if !strings.HasSuffix(lines[3], ".X.X") {
		t.Errorf("label line %q does not end with %q", lines[3], ".X.X")
	}
}

func TestHistory_Color(t *testing.T) {
	sess := session.New(true)
	var sb strings.Builder
	History(&sb, sess, &Options{Color: true, Current: ui.Inverse, Heading: ui.Bold})
	want := "\n\033[1mInspect:\033[m\n" +
		"     0\n" +
		"  \033[7mtrue\033[m\n"
	if sb.String() != want {
		t.Errorf("History wrote %q, want %q", sb.String(), want)
	}
}

func TestDetails(t *testing.T) {
	var sb strings.Builder
	Details(&sb, 1, &Options{})
	if want := "Value: 1\nType: int\n"; sb.String() != want {
		t.Errorf("Details wrote %q, want %q", sb.String(), want)
	}
}

func TestDetails_Callable(t *testing.T) {
	var sb strings.Builder
	Details(&sb, double, &Options{Doc: true})
	want := testutil.Dedent(`
		Value: <func src.insp.sh/pkg/render.double>
		Type: func(int) int
		Args: func(int) int

		Documentation:
		  double returns twice x.
		`)
	if sb.String() != want {
		t.Errorf("Details wrote %q, want %q", sb.String(), want)
	}
}

func TestDetails_Dump(t *testing.T) {
	var sb strings.Builder
	Details(&sb, 1, &Options{Dump: true})
	want := "Value: 1\nType: int\n\nDump:\n  (int) 1\n"
	if sb.String() != want {
		t.Errorf("Details wrote %q, want %q", sb.String(), want)
	}
}

func TestAttrs(t *testing.T) {
	var sb strings.Builder
	Attrs(&sb, pair{}, &Options{Grid: GridConfig{Width: 80, Padding: 1}})
	want := "\nAttributes:\n" +
		"   Left  Reset  Right    Sum\n" +
		"\n" +
		"   note\n" +
		"\n" +
		" String   Swap\n"
	if sb.String() != want {
		t.Errorf("Attrs wrote %q, want %q", sb.String(), want)
	}
}

func TestAttrs_NoMembers(t *testing.T) {
	var sb strings.Builder
	Attrs(&sb, 1, &Options{})
	if want := "\nAttributes:\n"; sb.String() != want {
		t.Errorf("Attrs wrote %q, want %q", sb.String(), want)
	}
}

func TestAll(t *testing.T) {
	var sb strings.Builder
	All(&sb, session.New(1), &Options{})
	want := "\nInspect:\n   0\n  1\n" +
		"Value: 1\nType: int\n" +
		"\nAttributes:\n"
	if sb.String() != want {
		t.Errorf("All wrote %q, want %q", sb.String(), want)
	}
}
