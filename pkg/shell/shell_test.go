package shell

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.insp.sh/pkg/config"
	"src.insp.sh/pkg/expr"
	. "src.insp.sh/pkg/prog/progtest"
	"src.insp.sh/pkg/session"
	"src.insp.sh/pkg/tt"
)

var Args = tt.Args

type list []int

func (l list) Append(x int) list { return append(append(list(nil), l...), x) }

func (l list) Len() int { return len(l) }

type counter struct{ n int }

func (c *counter) Incr() int {
	c.n++
	return c.n
}

type tree struct {
	Name     string
	Children []*tree
}

func testConfig() *Config {
	rc := config.Default()
	noDoc := false
	rc.Doc = &noDoc
	return &Config{RC: rc}
}

func interact(t *testing.T, root any, cfg *Config, input string) (*session.Session, *Fixture) {
	t.Helper()
	f := Setup()
	t.Cleanup(f.Cleanup)
	f.FeedIn(input)
	sess := session.New(root)
	if err := Interact(f.Fds(), sess, cfg); err != nil {
		t.Errorf("Interact -> error %v", err)
	}
	return sess, f
}

func TestInteract_Apply(t *testing.T) {
	sess, f := interact(t, list{1, 2, 3}, testConfig(), ".Append(4)[-1]\n")

	if sess.Current() != 4 || sess.Len() != 3 {
		t.Errorf("current %v, len %v; want 4, 3", sess.Current(), sess.Len())
	}
	out := f.Output(1)
	if n := strings.Count(out, "Inspect:"); n != 2 {
		t.Errorf("rendered %d times, want 2", n)
	}
	if !strings.Contains(out, "shell.list{1, 2, 3}.Append(4)[-1]") {
		t.Errorf("history not rendered, output: %q", out)
	}
	if !strings.Contains(out, "Value: 4\nType: int\n") {
		t.Errorf("details not rendered, output: %q", out)
	}
	f.TestOut(t, 2, "")
}

func TestInteract_AttributeError(t *testing.T) {
	sess, f := interact(t, list{1}, testConfig(), ".Missing\n")

	if sess.Len() != 0 {
		t.Errorf("len %v, want 0", sess.Len())
	}
	f.TestOutSnippet(t, 2, `attribute error: shell.list has no attribute "Missing"`)
	if n := strings.Count(f.Output(1), "Inspect:"); n != 1 {
		t.Errorf("rendered %d times, want 1", n)
	}
}

func TestInteract_PartialFailure(t *testing.T) {
	sess, f := interact(t, list{1}, testConfig(), ".Append(4).Nope\n")

	if sess.Len() != 2 {
		t.Errorf("len %v, want 2", sess.Len())
	}
	f.TestOutSnippet(t, 2, "attribute error: ")
	// The successful part is applied, so the state is rendered again.
	if n := strings.Count(f.Output(1), "Inspect:"); n != 2 {
		t.Errorf("rendered %d times, want 2", n)
	}
}

func TestInteract_SyntaxError(t *testing.T) {
	sess, f := interact(t, list{1}, testConfig(), ".Append(4\n")

	if sess.Len() != 0 {
		t.Errorf("len %v, want 0", sess.Len())
	}
	f.TestOutSnippet(t, 2, "Syntax error: ")
	f.TestOutSnippet(t, 2, "[tty 1]:1:")
}

func TestInteract_Rewind(t *testing.T) {
	root := list{1}
	sess, f := interact(t, root, testConfig(), ".Append(4)\n.Len()\n2\n")

	if sess.Len() != 2 {
		t.Errorf("len %v, want 2", sess.Len())
	}
	if diff := cmp.Diff(list{1, 4}, sess.Current()); diff != "" {
		t.Errorf("current (-want +got):\n%s", diff)
	}
	f.TestOut(t, 2, "")
}

func TestInteract_RewindOutOfRange(t *testing.T) {
	sess, f := interact(t, list{1}, testConfig(),
		"5\n99999999999999999999999\n")

	if sess.Len() != 0 {
		t.Errorf("len %v, want 0", sess.Len())
	}
	f.TestOutSnippet(t, 2,
		"index error: out of range: history index must be from 0 to 0, but is 5")
	f.TestOutSnippet(t, 2, "but is 99999999999999999999999")
}

func TestInteract_BlankLinesAndEOF(t *testing.T) {
	_, f := interact(t, list{}, testConfig(), "\n  \n")

	out := f.Output(1)
	if n := strings.Count(out, "Inspect:"); n != 1 {
		t.Errorf("rendered %d times, want 1", n)
	}
	if n := strings.Count(out, "Apply: "); n != 3 {
		t.Errorf("prompted %d times, want 3", n)
	}
	f.TestOut(t, 2, "")
}

func TestInteract_LastLineWithoutNewline(t *testing.T) {
	sess, _ := interact(t, list{}, testConfig(), ".Append(1)")

	if sess.Len() != 2 {
		t.Errorf("len %v, want 2", sess.Len())
	}
}

func TestInteract_Scope(t *testing.T) {
	cfg := testConfig()
	cfg.Scope = expr.Scope{"n": 7}
	sess, f := interact(t, list{}, cfg, ".Append(n)[0]\n.Append(m)\n")

	if sess.Current() != 7 {
		t.Errorf("current %v, want 7", sess.Current())
	}
	f.TestOutSnippet(t, 2, "name error: undefined: m")
}

func TestInteract_Prompt(t *testing.T) {
	cfg := testConfig()
	cfg.RC.Prompt = "> "
	_, f := interact(t, list{}, cfg, "")

	f.TestOutSnippet(t, 1, "\n> ")
}

func TestInteract_DefaultConfig(t *testing.T) {
	_, f := interact(t, 1, &Config{}, "")

	f.TestOutSnippet(t, 1, "Value: 1\n")
}

func TestCompleteMembers(t *testing.T) {
	root := &tree{Name: "root", Children: []*tree{{Name: "child"}}}
	scope := expr.Scope{"i": 0}
	tt.Test(t, tt.Fn("completeMembers", completeMembers), tt.Table{
		Args(root, scope, ".").Rets([]string{".Children", ".Name"}),
		Args(root, scope, ".N").Rets([]string{".Name"}),
		Args(root, scope, ".Children[i].Na").Rets([]string{".Children[i].Name"}),
		Args(root, scope, ".Children[0]. C").Rets([]string(nil)),
		Args(list{}, scope, ".Append(1).L").Rets([]string(nil)),
		Args(root, scope, "Name").Rets([]string(nil)),
		Args(root, scope, ".Children[5].").Rets([]string(nil)),
		Args(root, scope, ".Nope.").Rets([]string(nil)),
	})
}

func TestCompleteMembers_CallsNothing(t *testing.T) {
	c := &counter{}
	scope := expr.Scope{"c": c, "xs": []int{0}}
	for _, line := range []string{
		"[c.Incr()].",
		"[xs[c.Incr()]].",
		"[{1: c.Incr()}[1]].",
		"[c.Incr():].",
		".Incr().",
	} {
		if got := completeMembers(map[int]string{1: "x"}, scope, line); got != nil {
			t.Errorf("completeMembers(%q) -> %v, want nil", line, got)
		}
	}
	if c.n != 0 {
		t.Errorf("Incr called %d times during completion", c.n)
	}
	// Keys without calls are still evaluated.
	got := completeMembers([]*counter{c}, scope, "[xs[0]].I")
	if !cmp.Equal(got, []string{"[xs[0]].Incr"}) {
		t.Errorf("got %v", got)
	}
}
