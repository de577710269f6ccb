// Command dpm is an embedded S-expression command interpreter. It evaluates
// expressions given as arguments, read from a file, or typed line by line, and
// can run as a language server for editors.
package main

import (
	"os"

	"src.dpm.sh/pkg/buildinfo"
	"src.dpm.sh/pkg/lsp"
	"src.dpm.sh/pkg/pprof"
	"src.dpm.sh/pkg/prog"
	"src.dpm.sh/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&pprof.Program{}, &buildinfo.Program{}, &lsp.Program{}, &shell.Program{})))
}
