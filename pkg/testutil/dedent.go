package testutil

import "strings"

// Dedent removes the longest common leading whitespace from every non-blank
// line of text, and an initial newline. Blank lines are emptied.
//
// This is useful for writing multi-line raw strings indented along with the
// surrounding code, starting on the line after the opening backtick.
func Dedent(text string) string {
	text = strings.TrimPrefix(text, "\n")
	lines := strings.Split(text, "\n")
	margin := ""
	first := true
	for _, line := range lines {
		if strings.TrimLeft(line, " \t") == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			margin, first = indent, false
			continue
		}
		margin = commonPrefix(margin, indent)
	}
	for i, line := range lines {
		if strings.TrimLeft(line, " \t") == "" {
			lines[i] = ""
		} else {
			lines[i] = line[len(margin):]
		}
	}
	return strings.Join(lines, "\n")
}

func commonPrefix(a, b string) string {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return a[:i]
}
