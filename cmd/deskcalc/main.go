// Deskcalc is a desk calculator with a normal and a scientific mode. It
// evaluates expressions given as arguments, calc sheets given as files, or
// lines read interactively, and can also run as a language server for calc
// sheets.
package main

import (
	"os"

	"github.com/deskcalc/deskcalc/pkg/buildinfo"
	"github.com/deskcalc/deskcalc/pkg/lsp"
	"github.com/deskcalc/deskcalc/pkg/prog"
	"github.com/deskcalc/deskcalc/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(&buildinfo.Program{}, &lsp.Program{}, &shell.Program{})))
}
