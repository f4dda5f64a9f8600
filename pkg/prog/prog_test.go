package prog_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"src.insp.sh/pkg/logutil"
	. "src.insp.sh/pkg/prog"
	"src.insp.sh/pkg/prog/progtest"
)

var (
	Test     = progtest.Test
	ThatInsp = progtest.ThatInsp
)

func TestCommonFlagHandling(t *testing.T) {
	dir := t.TempDir()
	cpuprof := filepath.Join(dir, "cpuprof")

	Test(t, testProgram{},
		ThatInsp("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatInsp("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatInsp("-help").
			WritesStdoutContaining("Usage: insp [flags] [file]"),

		ThatInsp("-cpuprofile", cpuprof).DoesNothing(),
		ThatInsp("-cpuprofile", "/a/bad/path").
			WritesStderrContaining("Warning: cannot create CPU profile:"),
	)

	// Check for the effect of -cpuprofile. There isn't much to test beyond a
	// sanity check that the profile file now exists.
	_, err := os.Stat(cpuprof)
	if err != nil {
		t.Errorf("CPU profile file does not exist: %v", err)
	}
}

func TestLogFlag(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "log")
	t.Cleanup(func() { logutil.SetOutput(io.Discard) })
	Test(t, testProgram{},
		ThatInsp("-log", logFile).DoesNothing(),
		ThatInsp("-log", "/a/bad/path").WritesStderrContaining("/a/bad/path"),
	)
	if _, err := os.Stat(logFile); err != nil {
		t.Errorf("log file does not exist: %v", err)
	}
}

func TestFlagsArePassed(t *testing.T) {
	var got *Flags
	var gotArgs []string
	p := funcProgram(func(fds [3]*os.File, f *Flags, args []string) error {
		got, gotArgs = f, args
		return nil
	})
	Test(t, p,
		ThatInsp("-format", "json", "-width", "60", "-nocolor", "-norc", "-dump", "file.json"),
	)
	if got == nil {
		t.Fatalf("program did not run")
	}
	if got.Format != "json" || got.Width != 60 || !got.NoColor || !got.NoRc || !got.Dump {
		t.Errorf("got flags %+v", got)
	}
	if strings.Join(gotArgs, " ") != "file.json" {
		t.Errorf("got args %q, want [file.json]", gotArgs)
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{notSuitable: true},
		ThatInsp().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestRun_FirstSuitableProgram(t *testing.T) {
	tests := []struct {
		name     string
		programs []Program
		want     string
	}{
		{"skips unsuitable",
			[]Program{testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}},
			"program 2"},
		{"prefers earlier",
			[]Program{testProgram{writeOut: "program 1"}, testProgram{writeOut: "program 2"}},
			"program 1"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := progtest.Setup()
			defer f.Cleanup()
			exit := Run(f.Fds(), []string{"insp"}, test.programs...)
			if exit != 0 {
				t.Errorf("got exit %v, want 0", exit)
			}
			f.TestOut(t, 1, test.want)
		})
	}
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatInsp().ExitsWith(2).WritesStderrContaining("lorem ipsum\nUsage:"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(3)},
		ThatInsp().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(0)},
		ThatInsp().ExitsWith(0),
	)
}

type testProgram struct {
	notSuitable bool
	writeOut    string
	returnErr   error
}

func (p testProgram) ShouldRun(*Flags) bool { return !p.notSuitable }

func (p testProgram) Run(fds [3]*os.File, _ *Flags, args []string) error {
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}

type funcProgram func(fds [3]*os.File, f *Flags, args []string) error

func (funcProgram) ShouldRun(*Flags) bool { return true }

func (p funcProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	return p(fds, f, args)
}
