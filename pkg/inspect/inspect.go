// Package inspect is the entry point of the inspector.
//
// Inspect opens an interactive explorer on a value, showing its
// representation, type, signature, documentation and members, and lets the
// user drill into it:
//
//	inspect.Inspect(resp, inspect.WithNames(map[string]any{"ctx": ctx}))
//
// Program is the insp command, which inspects YAML or JSON documents and a
// few built-in values.
package inspect

import (
	"os"

	"src.insp.sh/pkg/config"
	"src.insp.sh/pkg/expr"
	"src.insp.sh/pkg/session"
	"src.insp.sh/pkg/shell"
)

// Option configures Inspect.
type Option func(*options)

type options struct {
	names map[string]any
	rc    *config.Config
	fds   [3]*os.File
}

// WithNames makes names available in the arguments of calls and in index
// keys. The name "root" always refers to the inspected value.
func WithNames(names map[string]any) Option {
	return func(o *options) {
		for name, v := range names {
			o.names[name] = v
		}
	}
}

// WithConfig sets the configuration of the display and the prompt. Without
// it, config.Default() is used; the rc file is not read.
func WithConfig(rc *config.Config) Option {
	return func(o *options) { o.rc = rc }
}

// WithFiles sets the files used for input, output and errors, which default
// to the standard files of the process.
func WithFiles(fds [3]*os.File) Option {
	return func(o *options) { o.fds = fds }
}

// Inspect runs the interactive explorer on v until the end of input.
func Inspect(v any, opts ...Option) error {
	o := &options{
		names: map[string]any{},
		fds:   [3]*os.File{os.Stdin, os.Stdout, os.Stderr},
	}
	for _, opt := range opts {
		opt(o)
	}
	scope := expr.Scope{}
	for name, value := range o.names {
		scope[name] = value
	}
	scope["root"] = v
	return shell.Interact(o.fds, session.New(v), &shell.Config{Scope: scope, RC: o.rc})
}
