// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X src.insp.sh/pkg/buildinfo.Var=value" to "go build" or
// "go install".
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"src.insp.sh/pkg/prog"
)

// VersionBase identifies the version of insp. On development commits, it
// identifies the next release.
const VersionBase = "0.3.0"

// VersionSuffix is appended to VersionBase to build the full version string.
// It is derived from the module version if insp is built with "go install",
// and can be overridden with -ldflags.
var VersionSuffix = ""

// Reproducible identifies whether the build is reproducible. This can be
// overridden with -ldflags.
var Reproducible = "false"

// Type contains all the build information fields.
type Type struct {
	Version      string `json:"version"`
	Reproducible bool   `json:"reproducible"`
	GoVersion    string `json:"goversion"`
}

// Value contains all the build information.
var Value = Type{
	Version:      VersionBase + versionSuffix(VersionSuffix, readBuildInfo),
	Reproducible: Reproducible == "true",
	GoVersion:    runtime.Version(),
}

var readBuildInfo = debug.ReadBuildInfo

func versionSuffix(override string, read func() (*debug.BuildInfo, bool)) string {
	if override != "" {
		return override
	}
	if bi, ok := read(); ok {
		v := bi.Main.Version
		if v != "" && v != "(devel)" {
			if i := strings.Index(v, "-dev."); i >= 0 {
				return v[i:]
			}
			return ""
		}
	}
	return "-dev.unknown"
}

// Program is the buildinfo subprogram.
var Program prog.Program = program{}

type program struct{}

func (program) ShouldRun(f *prog.Flags) bool { return f.Version || f.BuildInfo }

func (program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if f.BuildInfo {
		if f.JSON {
			fmt.Fprintln(fds[1], mustToJSON(Value))
		} else {
			fmt.Fprintln(fds[1], "Version:", Value.Version)
			fmt.Fprintln(fds[1], "Go version:", Value.GoVersion)
			fmt.Fprintln(fds[1], "Reproducible build:", Value.Reproducible)
		}
		return nil
	}
	if f.JSON {
		fmt.Fprintln(fds[1], mustToJSON(Value.Version))
	} else {
		fmt.Fprintln(fds[1], Value.Version)
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
