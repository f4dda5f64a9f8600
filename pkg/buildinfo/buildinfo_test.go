package buildinfo

import (
	"fmt"
	"runtime/debug"
	"testing"

	. "src.insp.sh/pkg/prog/progtest"
)

func TestProgram(t *testing.T) {
	Test(t, Program,
		ThatInsp("-version").WritesStdout(Value.Version+"\n"),
		ThatInsp("-version", "-json").WritesStdout(mustToJSON(Value.Version)+"\n"),

		ThatInsp("-buildinfo").WritesStdout(
			fmt.Sprintf(
				"Version: %v\nGo version: %v\nReproducible build: %v\n",
				Value.Version, Value.GoVersion, Value.Reproducible)),
		ThatInsp("-buildinfo", "-json").WritesStdout(mustToJSON(Value)+"\n"),

		ThatInsp().ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
	)
}

var versionSuffixTests = []struct {
	name     string
	override string
	bi       *debug.BuildInfo
	want     string
}{
	{"no BuildInfo", "", nil, "-dev.unknown"},
	{"Main.Version is (devel)", "",
		&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, "-dev.unknown"},
	{"Main.Version is a dev version", "",
		&debug.BuildInfo{Main: debug.Module{Version: "v0.3.0-dev.foobar"}}, "-dev.foobar"},
	{"Main.Version is a release", "",
		&debug.BuildInfo{Main: debug.Module{Version: "v0.3.0"}}, ""},
	{"override", "-custom", nil, "-custom"},
}

func TestVersionSuffix(t *testing.T) {
	for _, test := range versionSuffixTests {
		t.Run(test.name, func(t *testing.T) {
			read := func() (*debug.BuildInfo, bool) { return test.bi, test.bi != nil }
			if got := versionSuffix(test.override, read); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}
