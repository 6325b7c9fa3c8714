package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/deskcalc/deskcalc/pkg/diag"
	"github.com/deskcalc/deskcalc/pkg/eval"
	"github.com/deskcalc/deskcalc/pkg/parse"
	"github.com/deskcalc/deskcalc/pkg/store/storedefs"
	"github.com/deskcalc/deskcalc/pkg/sys"
)

const helpText = `Enter an expression to evaluate it, or one of the commands:
  :mode normal|scientific  switch the mode
  :deg, :rad               set the angle unit
  :history [n]             show the last n history entries (default 10)
  :history from upto       show the history entries from from to upto
  :recall [seq]            set Ans to the value of a history entry
                           (default the last one)
  :clear                   clear the history
  :ac                      clear the last answer
  :ast expression          show the syntax tree of an expression
  :help                    show this help
  :quit                    quit`

const defaultHistoryEntries = 10

// Runs a command. Returns whether the session should end.
func (r *repl) command(fields []string) (bool, error) {
	if len(fields) == 0 {
		return false, errors.New("missing command; try :help")
	}
	name, args := fields[0], fields[1:]
	switch name {
	case "quit", "q", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(r.fds[1], helpText)
	case "mode":
		if len(args) != 1 {
			return false, errors.New("usage: :mode normal|scientific")
		}
		mode, err := eval.ParseMode(args[0])
		if err != nil {
			return false, err
		}
		r.ev.SetMode(mode)
	case "deg":
		r.ev.Context.SetAngleUnit(eval.Degrees)
	case "rad":
		r.ev.Context.SetAngleUnit(eval.Radians)
	case "ac":
		r.ev.Context.Clear()
	case "clear":
		return false, r.history.ClearEntries()
	case "history":
		return false, r.showHistory(args)
	case "recall":
		return false, r.recall(args)
	case "ast":
		code := strings.Join(args, " ")
		tree, err := parse.Parse(parse.Source{Name: "[ast]", Code: code})
		if err != nil {
			diag.ShowError(r.fds[2], err)
			return false, nil
		}
		parse.PprintAST(tree.Root, r.fds[1])
	default:
		return false, fmt.Errorf("unknown command :%s; try :help", name)
	}
	return false, nil
}

func (r *repl) showHistory(args []string) error {
	var entries []storedefs.Entry
	var err error
	switch len(args) {
	case 0, 1:
		n := defaultHistoryEntries
		if len(args) == 1 {
			n, err = strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return fmt.Errorf("invalid number of entries %q", args[0])
			}
		}
		entries, err = r.history.LastEntries(n)
	case 2:
		var from, upto int
		if from, err = parseSeq(args[0]); err != nil {
			return err
		}
		if upto, err = parseSeq(args[1]); err != nil {
			return err
		}
		entries, err = r.history.EntriesWithSeq(from, upto+1)
	default:
		return errors.New("usage: :history [n] or :history from upto")
	}
	if err != nil {
		return err
	}
	width := sys.Width(r.fds[1])
	for _, entry := range entries {
		line := fmt.Sprintf("%4d  %s = %s", entry.Seq, entry.Expr, eval.FormatNumber(entry.Value))
		fmt.Fprintln(r.fds[1], truncate(line, width))
	}
	return nil
}

func (r *repl) recall(args []string) error {
	var seq int
	switch len(args) {
	case 0:
		next, err := r.history.NextSeq()
		if err != nil {
			return err
		}
		seq = next - 1
	case 1:
		var err error
		if seq, err = parseSeq(args[0]); err != nil {
			return err
		}
	default:
		return errors.New("usage: :recall [seq]")
	}
	entry, err := r.history.Entry(seq)
	if errors.Is(err, storedefs.ErrNoMatchingEntry) {
		return fmt.Errorf("no history entry %d", seq)
	} else if err != nil {
		return err
	}
	r.ev.Context.RecordAnswer(entry.Value)
	fmt.Fprintln(r.fds[1], eval.FormatNumber(entry.Value))
	return nil
}

func parseSeq(s string) (int, error) {
	seq, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid sequence number %q", s)
	}
	return seq, nil
}

// Truncates s to at most width runes, marking the truncation with an
// ellipsis.
func truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}
