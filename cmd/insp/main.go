// Command insp is an interactive inspector for YAML and JSON documents and
// built-in runtime values.
//
// Each step shows the current value, its type, documentation and members. At
// the "Apply:" prompt, type an operation chain such as .Header.Get("Accept")
// or ["items"][0] to move into a value, or the number of an earlier step to go
// back to it.
package main

import (
	"os"

	"src.insp.sh/pkg/buildinfo"
	"src.insp.sh/pkg/inspect"
	"src.insp.sh/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		buildinfo.Program, inspect.Program))
}
