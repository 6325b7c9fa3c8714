// Package sheet evaluates calc sheets.
//
// A calc sheet is a text with one expression per line. Blank lines and lines
// starting with # are skipped. The expressions are evaluated in order in a
// single session, so Ans refers to the value of the previous expression.
package sheet

import (
	"fmt"
	"strings"

	"github.com/deskcalc/deskcalc/pkg/eval"
	"github.com/deskcalc/deskcalc/pkg/parse"
)

// Line is an expression line of a sheet.
type Line struct {
	// Zero-based line number.
	Num int
	// Byte offset of the start of the line in the sheet.
	From int
	// Content of the line, without the line ending.
	Code string
}

// Result is the outcome of evaluating a Line.
type Result struct {
	Line
	Value float64
	Err   error
}

// Lines returns the expression lines of a sheet.
func Lines(code string) []Line {
	var lines []Line
	from := 0
	for num := 0; from <= len(code); num++ {
		end := strings.IndexByte(code[from:], '\n')
		if end == -1 {
			end = len(code)
		} else {
			end += from
		}
		text := strings.TrimSuffix(code[from:end], "\r")
		if trimmed := strings.TrimSpace(text); trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			lines = append(lines, Line{num, from, text})
		}
		from = end + 1
	}
	return lines
}

// Eval evaluates all the expression lines of a sheet named name in the given
// mode and angle unit. A line that fails to evaluate does not change Ans.
func Eval(name, code string, mode eval.Mode, unit eval.AngleUnit) []Result {
	ev := eval.NewEvaler(mode)
	ev.Context.SetAngleUnit(unit)
	var results []Result
	for _, line := range Lines(code) {
		v, err := ev.Eval(LineSource(name, line))
		results = append(results, Result{line, v, err})
	}
	return results
}

// LineSource returns the source of a line in a sheet named name.
func LineSource(name string, line Line) parse.Source {
	return parse.Source{Name: fmt.Sprintf("%s, line %d", name, line.Num+1), Code: line.Code}
}
