// Package progtest contains utilities for testing subprograms and the
// interactive loop.
//
// Test and ThatInsp run a [prog.Program] through [prog.Run] and check its
// output and exit status. Fixture connects the standard files of code under
// test to pipes, so that input can be fed and output checked.
package progtest

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"src.insp.sh/pkg/must"
	"src.insp.sh/pkg/prog"
)

// Case is a test case that can be used in Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exitCode int
	stdout   output
	stderr   output
}

type output struct {
	content string
	partial bool
	ignored bool
}

func (o output) String() string {
	if o.partial {
		return "text containing " + o.content
	}
	return o.content
}

// ThatInsp returns a new Case with the specified CLI arguments.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "insp -bad-flag" exits with 2 would
// look like:
//
//	ThatInsp("-bad-flag").ExitsWith(2)
func ThatInsp(args ...string) Case {
	return Case{args: append([]string{"insp"}, args...)}
}

// WithStdin returns an altered Case that provides the given input to stdin.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	ThatInsp("-cpuprofile", "x").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program to exit with
// the given code.
func (c Case) ExitsWith(code int) Case {
	c.want.exitCode = code
	return c
}

// WritesStdout returns an altered Case that requires the program to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program to
// write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// IgnoresStdout returns an altered Case that accepts any output on stdout.
func (c Case) IgnoresStdout() Case {
	c.want.stdout = output{ignored: true}
	return c
}

// WritesStderr returns an altered Case that requires the program to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program to
// write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against the given programs.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(p, c.args, c.stdin)
			if r.exitCode != c.want.exitCode {
				t.Errorf("got exit code %v, want %v", r.exitCode, c.want.exitCode)
			}
			if !matchOutput(r.stdout.content, c.want.stdout) {
				t.Errorf("got stdout %q, want %q", r.stdout.content, c.want.stdout)
			}
			if !matchOutput(r.stderr.content, c.want.stderr) {
				t.Errorf("got stderr %q, want %q", r.stderr.content, c.want.stderr)
			}
		})
	}
}

// Run runs a Program with the given arguments and stdin. It returns the exit
// status of the program and its output.
func Run(p prog.Program, args []string, stdin string) (exit int, stdout, stderr string) {
	r := run(p, append([]string{"insp"}, args...), stdin)
	return r.exitCode, r.stdout.content, r.stderr.content
}

func run(p prog.Program, args []string, stdin string) result {
	f := Setup()
	defer f.Cleanup()
	f.FeedIn(stdin)
	exitCode := prog.Run(f.Fds(), args, p)
	stdout, stderr := f.Output(1), f.Output(2)
	return result{exitCode, output{content: stdout}, output{content: stderr}}
}

func matchOutput(got string, want output) bool {
	switch {
	case want.ignored:
		return true
	case want.partial:
		return strings.Contains(got, want.content)
	default:
		return got == want.content
	}
}

// Fixture is a test fixture with pipes connected to stdin, stdout and stderr.
type Fixture struct {
	pipes [3]*pipe
}

// Setup sets up a test fixture. The caller is responsible for calling the
// Cleanup method of the returned Fixture.
func Setup() *Fixture {
	return &Fixture{[3]*pipe{makePipe(false), makePipe(true), makePipe(true)}}
}

// Cleanup cleans up the fixture.
func (f *Fixture) Cleanup() {
	f.pipes[0].close()
	f.pipes[1].close()
	f.pipes[2].close()
}

// Fds returns the file descriptors in the fixture.
func (f *Fixture) Fds() [3]*os.File {
	return [3]*os.File{f.pipes[0].r, f.pipes[1].w, f.pipes[2].w}
}

// FeedIn feeds input to the standard input, and closes it, so that code
// reading from it sees EOF after the input.
func (f *Fixture) FeedIn(s string) {
	_, err := f.pipes[0].w.WriteString(s)
	if err != nil {
		panic(err)
	}
	f.pipes[0].w.Close()
	f.pipes[0].wClosed = true
}

// TestOut tests that the output on the given fd matches the given text.
func (f *Fixture) TestOut(t *testing.T, fd int, wantOut string) {
	t.Helper()
	if out := f.Output(fd); out != wantOut {
		t.Errorf("got out %q, want %q", out, wantOut)
	}
}

// TestOutSnippet tests that the output on the given fd contains the given
// text.
func (f *Fixture) TestOutSnippet(t *testing.T, fd int, wantOutSnippet string) {
	t.Helper()
	if out := f.Output(fd); !strings.Contains(out, wantOutSnippet) {
		t.Errorf("got out %q, want string containing %q", out, wantOutSnippet)
	}
}

// Output returns everything written to the given fd. It closes the write end
// of the fd, so the code under test must not write to it afterwards.
func (f *Fixture) Output(fd int) string {
	return f.pipes[fd].get()
}

type pipe struct {
	r, w    *os.File
	wClosed bool
	rClosed bool

	// Set for output pipes, which are drained as they are written to so
	// that writers never block on a full pipe.
	drained chan struct{}
	buf     bytes.Buffer
}

func makePipe(drain bool) *pipe {
	r, w := must.Pipe()
	p := &pipe{r: r, w: w}
	if drain {
		p.drained = make(chan struct{})
		go func() {
			io.Copy(&p.buf, r)
			close(p.drained)
		}()
	}
	return p
}

func (p *pipe) get() string {
	if !p.wClosed {
		p.w.Close()
		p.wClosed = true
	}
	<-p.drained
	return p.buf.String()
}

func (p *pipe) close() {
	if !p.wClosed {
		p.w.Close()
		p.wClosed = true
	}
	if p.drained != nil {
		<-p.drained
	}
	if !p.rClosed {
		p.r.Close()
		p.rClosed = true
	}
}
