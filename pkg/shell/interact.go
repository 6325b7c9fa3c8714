package shell

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/deskcalc/deskcalc/pkg/diag"
	"github.com/deskcalc/deskcalc/pkg/eval"
	"github.com/deskcalc/deskcalc/pkg/parse"
	"github.com/deskcalc/deskcalc/pkg/store/storedefs"
	"github.com/deskcalc/deskcalc/pkg/sys"
)

// InteractConfig keeps configuration for the interactive mode.
type InteractConfig struct {
	Evaler  *eval.Evaler
	History storedefs.Store
}

// Interact runs an interactive session, reading one expression or command per
// line until the input ends or :quit is entered.
func Interact(fds [3]*os.File, cfg *InteractConfig) {
	ed := newMinEditor(fds[0], fds[2], sys.IsATTY(fds[0].Fd()))
	r := &repl{fds, cfg.Evaler, cfg.History}

	for cmdNum := 1; ; cmdNum++ {
		line, err := ed.ReadCode(r.prompt())
		if quit := r.handle(line, cmdNum); quit {
			return
		}
		if err == io.EOF {
			break
		} else if err != nil {
			fmt.Fprintln(fds[2], "Editor error:", err)
			break
		}
	}
	if ed.showPrompt {
		fmt.Fprintln(fds[2])
	}
}

type repl struct {
	fds     [3]*os.File
	ev      *eval.Evaler
	history storedefs.Store
}

func (r *repl) prompt() string {
	return fmt.Sprintf("%s %s> ", r.ev.Mode(), r.ev.Context.AngleUnit())
}

// Handles one line of input. Returns whether the session should end.
func (r *repl) handle(line string, cmdNum int) bool {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return false
	case strings.HasPrefix(line, ":"):
		quit, err := r.command(strings.Fields(line[1:]))
		if err != nil {
			diag.Complain(r.fds[2], err.Error())
		}
		return quit
	}
	v, err := r.ev.Eval(parse.Source{Name: fmt.Sprintf("[tty %v]", cmdNum), Code: line})
	if err != nil {
		diag.ShowError(r.fds[2], err)
		return false
	}
	fmt.Fprintln(r.fds[1], eval.FormatNumber(v))
	return false
}
