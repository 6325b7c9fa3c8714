package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/deskcalc/deskcalc/pkg/diag"
	"github.com/deskcalc/deskcalc/pkg/eval"
	"github.com/deskcalc/deskcalc/pkg/parse"
	"github.com/deskcalc/deskcalc/pkg/sheet"
)

// Evaluates each argument as an expression, printing the results. Returns the
// exit status.
func evalArgs(fds [3]*os.File, ev *eval.Evaler, args []string, jsonOut bool) int {
	var srcs []parse.Source
	for i, arg := range args {
		srcs = append(srcs, parse.Source{Name: fmt.Sprintf("[arg %d]", i+1), Code: arg})
	}
	return evalSources(fds, ev, srcs, jsonOut)
}

// Evaluates calc sheets, printing the result of every expression line.
// Returns the exit status.
func evalSheets(fds [3]*os.File, ev *eval.Evaler, paths []string, jsonOut bool) int {
	var srcs []parse.Source
	for _, path := range paths {
		name, err := filepath.Abs(path)
		if err != nil {
			fmt.Fprintf(fds[2], "cannot get full path of sheet %q: %v\n", path, err)
			return 2
		}
		code, err := readFileUTF8(name)
		if err != nil {
			fmt.Fprintf(fds[2], "cannot read sheet %q: %v\n", name, err)
			return 2
		}
		for _, line := range sheet.Lines(code) {
			srcs = append(srcs, sheet.LineSource(name, line))
		}
	}
	return evalSources(fds, ev, srcs, jsonOut)
}

func evalSources(fds [3]*os.File, ev *eval.Evaler, srcs []parse.Source, jsonOut bool) int {
	exit := 0
	var results []resultInJSON
	for _, src := range srcs {
		v, err := ev.Eval(src)
		if err != nil {
			exit = 2
		}
		if jsonOut {
			results = append(results, toJSON(src, v, err))
		} else if err != nil {
			diag.ShowError(fds[2], err)
		} else {
			fmt.Fprintln(fds[1], eval.FormatNumber(v))
		}
	}
	if jsonOut {
		fmt.Fprintf(fds[1], "%s\n", resultsToJSON(results))
	}
	return exit
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}

// An auxiliary struct for converting results to JSON.
type resultInJSON struct {
	Expr    string       `json:"expr"`
	Value   *float64     `json:"value,omitempty"`
	Display string       `json:"display"`
	Error   *errorInJSON `json:"error,omitempty"`
}

// An auxiliary struct for converting errors with diagnostics information to JSON.
type errorInJSON struct {
	FileName string `json:"fileName"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
}

func toJSON(src parse.Source, v float64, err error) resultInJSON {
	if err == nil {
		return resultInJSON{Expr: src.Code, Value: &v, Display: eval.FormatNumber(v)}
	}
	kind := eval.KindOf(err)
	e := &errorInJSON{FileName: src.Name, Kind: kind.String(), Message: errorMessage(err)}
	if r, ok := err.(diag.Ranger); ok {
		e.Start, e.End = r.Range().From, r.Range().To
	}
	return resultInJSON{Expr: src.Code, Display: kind.Message(), Error: e}
}

// Returns the message of an error without the position information that
// parse errors carry in their Error method.
func errorMessage(err error) string {
	var lexErr *parse.LexError
	var syntaxErr *parse.SyntaxError
	switch {
	case errors.As(err, &lexErr):
		return lexErr.Message
	case errors.As(err, &syntaxErr):
		return syntaxErr.Message
	default:
		return err.Error()
	}
}

func resultsToJSON(results []resultInJSON) []byte {
	if results == nil {
		results = []resultInJSON{}
	}
	b, err := json.Marshal(results)
	if err != nil {
		return []byte(`[{"error":{"message":"Unable to convert the results to JSON"}}]`)
	}
	return b
}
