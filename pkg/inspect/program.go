package inspect

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"src.insp.sh/pkg/buildinfo"
	"src.insp.sh/pkg/config"
	"src.insp.sh/pkg/logutil"
	"src.insp.sh/pkg/must"
	"src.insp.sh/pkg/prog"
)

var logger = logutil.GetLogger("[inspect] ")

// Program is the inspector subprogram. It should be the last of the programs
// passed to prog.Run, since it always runs.
var Program prog.Program = program{}

type program struct{}

func (program) ShouldRun(*prog.Flags) bool { return true }

func (program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	rc, err := loadRC(f)
	if err != nil {
		return err
	}

	var root any
	names := map[string]any{}
	switch {
	case f.Value != "":
		if len(args) > 0 {
			return prog.BadUsage("-value cannot be used with a file argument")
		}
		root, err = builtinValue(f.Value)
		if err != nil {
			return err
		}
	case len(args) == 0:
		return prog.BadUsage("no file to inspect")
	case len(args) > 1:
		return prog.BadUsage("only one file can be inspected")
	default:
		format, err := detectFormat(args[0], f.Format)
		if err != nil {
			return err
		}
		if args[0] == "-" {
			root, err = loadDocument(fds[0], format)
			if err != nil {
				return fmt.Errorf("stdin: %w", err)
			}
			// Stdin is used up; take input from the terminal if there is one.
			tty := openInput()
			defer tty.Close()
			fds[0] = tty
		} else {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			root, err = loadDocument(file, format)
			file.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
		}
		names["file"] = args[0]
	}

	return Inspect(root, WithNames(names), WithConfig(rc), WithFiles(fds))
}

func loadRC(f *prog.Flags) (*config.Config, error) {
	rc := config.Default()
	if !f.NoRc {
		path := f.RC
		if path == "" {
			var err error
			path, err = config.DefaultPath()
			if err != nil {
				logger.Println("cannot find rc file:", err)
			}
		}
		if path != "" {
			var err error
			rc, err = config.Load(path)
			if err != nil {
				return nil, err
			}
		}
	}
	if f.Width > 0 {
		rc.Width = f.Width
	}
	if f.NoColor {
		noColor := false
		rc.Color = &noColor
	}
	if f.Dump {
		rc.Dump = true
	}
	return rc, nil
}

// Formats of documents.
const (
	formatYAML = "yaml"
	formatJSON = "json"
)

func detectFormat(name, flag string) (string, error) {
	switch flag {
	case formatYAML, formatJSON:
		return flag, nil
	case "":
	default:
		return "", prog.BadUsage(fmt.Sprintf("unknown format %q, should be yaml or json", flag))
	}
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return formatJSON, nil
	}
	// JSON is also valid YAML.
	return formatYAML, nil
}

// Loads all the documents in r. A single document is returned as is, several
// ones as a []any.
func loadDocument(r io.Reader, format string) (any, error) {
	type decoder interface{ Decode(any) error }
	var dec decoder
	if format == formatJSON {
		jsonDec := json.NewDecoder(r)
		jsonDec.UseNumber()
		dec = jsonDec
	} else {
		dec = yaml.NewDecoder(r)
	}
	var docs []any
	for {
		var doc any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	switch len(docs) {
	case 0:
		return nil, errors.New("no document")
	case 1:
		return docs[0], nil
	default:
		return docs, nil
	}
}

var builtinValueNames = []string{"args", "buildinfo", "env", "memstats", "time", "version"}

func builtinValue(name string) (any, error) {
	switch name {
	case "args":
		return os.Args, nil
	case "buildinfo":
		if bi, ok := debug.ReadBuildInfo(); ok {
			return bi, nil
		}
		return nil, errors.New("no build information in the binary")
	case "env":
		env := map[string]string{}
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok {
				env[k] = v
			}
		}
		return env, nil
	case "memstats":
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return &ms, nil
	case "time":
		return time.Now(), nil
	case "version":
		return buildinfo.Value, nil
	}
	return nil, prog.BadUsage(fmt.Sprintf(
		"unknown value %q, should be one of %s", name, strings.Join(builtinValueNames, ", ")))
}

// Returns the controlling terminal, or a file that is already at EOF if there
// is none.
var openInput = func() *os.File {
	if tty, err := os.Open("/dev/tty"); err == nil {
		return tty
	}
	r, w := must.Pipe()
	w.Close()
	return r
}
