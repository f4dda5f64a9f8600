package inspect

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"src.insp.sh/pkg/config"
	"src.insp.sh/pkg/must"
	. "src.insp.sh/pkg/prog/progtest"
	"src.insp.sh/pkg/testutil"
)

type point struct{ X, Y int }

func (p point) Sum() int { return p.X + p.Y }

func noDocConfig() *config.Config {
	rc := config.Default()
	noDoc := false
	rc.Doc = &noDoc
	return rc
}

func TestInspect(t *testing.T) {
	f := Setup()
	defer f.Cleanup()
	f.FeedIn(".Sum()\n")

	err := Inspect(point{1, 2}, WithFiles(f.Fds()), WithConfig(noDocConfig()))
	if err != nil {
		t.Errorf("Inspect -> %v", err)
	}
	f.TestOutSnippet(t, 1, "inspect.point{X:1, Y:2}.Sum()\n")
	f.TestOutSnippet(t, 1, "Value: 3\nType: int\n")
	f.TestOut(t, 2, "")
}

func TestInspect_Names(t *testing.T) {
	f := Setup()
	defer f.Cleanup()
	f.FeedIn("[root[\"a\"]]\n[k]\n")

	root := map[string]any{"a": "b", "b": 42, "c": "found"}
	err := Inspect(root, WithFiles(f.Fds()), WithConfig(noDocConfig()),
		WithNames(map[string]any{"k": "c", "root": "shadowed"}))
	if err != nil {
		t.Errorf("Inspect -> %v", err)
	}
	out := f.Output(1)
	if !strings.Contains(out, "Value: 42\n") {
		t.Errorf("root is not bound, output: %q", out)
	}
	f.TestOutSnippet(t, 2, "index error: int is not indexable")
}

func TestProgram_Files(t *testing.T) {
	dir := t.TempDir()
	jsonFile := filepath.Join(dir, "doc.json")
	must.WriteFile(jsonFile, `{"a": [1, 2], "b": {"c": "d"}}`)
	yamlFile := filepath.Join(dir, "doc.yaml")
	must.WriteFile(yamlFile, "a:\n  - 1\n  - 2\nb:\n  c: d\n")
	multiFile := filepath.Join(dir, "multi.yml")
	must.WriteFile(multiFile, "---\na: 1\n---\nb: 2\n")
	jsonAsYAML := filepath.Join(dir, "doc.txt")
	must.WriteFile(jsonAsYAML, `{"a": [1, 2]}`)
	badFile := filepath.Join(dir, "bad.json")
	must.WriteFile(badFile, `{"a": `)

	Test(t, Program,
		ThatInsp("-norc", jsonFile).WithStdin(`["a"][1]`+"\n").
			WritesStdoutContaining("Value: \"2\"\nType: json.Number\n"),
		ThatInsp("-norc", jsonFile).WithStdin(`["a"][1].Int64()`+"\n").
			WritesStdoutContaining("Value: 2\nType: int64\n"),
		ThatInsp("-norc", yamlFile).WithStdin(`["a"][1]`+"\n").
			WritesStdoutContaining("Value: 2\nType: int\n"),
		ThatInsp("-norc", yamlFile).WithStdin(`["b"]["c"]`+"\n").
			WritesStdoutContaining("Value: \"d\"\nType: string\n"),
		ThatInsp("-norc", multiFile).WithStdin(`[1]["b"]`+"\n").
			WritesStdoutContaining("Value: 2\n"),
		ThatInsp("-norc", jsonAsYAML).WithStdin(`["a"][0]`+"\n").
			WritesStdoutContaining("Value: 1\nType: int\n"),
		ThatInsp("-norc", "-format", "json", jsonAsYAML).WithStdin(`["a"][0]`+"\n").
			WritesStdoutContaining("Type: json.Number\n"),
		ThatInsp("-norc", "-dump", yamlFile).
			WritesStdoutContaining("\nDump:\n"),

		ThatInsp("-norc", badFile).ExitsWith(2).
			WritesStderrContaining(badFile+": unexpected EOF"),
		ThatInsp("-norc", filepath.Join(dir, "nonexistent.json")).ExitsWith(2).
			WritesStderrContaining("no such file or directory"),
		ThatInsp("-norc", "-format", "xml", jsonFile).ExitsWith(2).
			WritesStderrContaining(`unknown format "xml", should be yaml or json`),
	)
}

func TestProgram_Stdin(t *testing.T) {
	testutil.Set(t, &openInput, func() *os.File {
		r, w := must.Pipe()
		w.Close()
		return r
	})
	Test(t, Program,
		ThatInsp("-norc", "-").WithStdin("a: 1\n").
			WritesStdoutContaining("Type: map[string]interface {}\n"),
		ThatInsp("-norc", "-").ExitsWith(2).
			WritesStderr("stdin: no document\n"),
	)
}

func TestProgram_BuiltinValues(t *testing.T) {
	Test(t, Program,
		ThatInsp("-norc", "-value", "time").WritesStdoutContaining("Type: time.Time\n"),
		ThatInsp("-norc", "-value", "version").WritesStdoutContaining("Type: buildinfo.Type\n"),
		ThatInsp("-norc", "-value", "env").WritesStdoutContaining("Type: map[string]string\n"),
		ThatInsp("-norc", "-value", "args").WritesStdoutContaining("Type: []string\n"),
		ThatInsp("-norc", "-value", "memstats").WithStdin(".NumGC\n").
			WritesStdoutContaining("Type: uint32\n"),

		ThatInsp("-norc", "-value", "bad").ExitsWith(2).
			WritesStderrContaining(`unknown value "bad", should be one of args, buildinfo, env, memstats, time, version`),
		ThatInsp("-norc", "-value", "time", "file").ExitsWith(2).
			WritesStderrContaining("-value cannot be used with a file argument\nUsage:"),
	)
}

func TestProgram_BadUsage(t *testing.T) {
	Test(t, Program,
		ThatInsp("-norc").ExitsWith(2).
			WritesStderrContaining("no file to inspect\nUsage:"),
		ThatInsp("-norc", "a", "b").ExitsWith(2).
			WritesStderrContaining("only one file can be inspected\nUsage:"),
	)
}

func TestProgram_RC(t *testing.T) {
	dir := t.TempDir()
	rc := filepath.Join(dir, "rc.yaml")
	must.WriteFile(rc, "prompt: '> '\ndoc: false\n")
	badRC := filepath.Join(dir, "bad.yaml")
	must.WriteFile(badRC, "colour: true\n")
	testutil.Setenv(t, "XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	Test(t, Program,
		ThatInsp("-rc", rc, "-value", "time").WritesStdoutContaining("\n> "),
		ThatInsp("-rc", badRC, "-value", "time").ExitsWith(2).
			WritesStderrContaining(badRC+": "),
		// The default rc file does not exist.
		ThatInsp("-value", "time").WritesStdoutContaining("\nApply: "),
	)
}
