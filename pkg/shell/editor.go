package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// A line reader that shows a prompt when reading from a terminal.
type minEditor struct {
	in         *bufio.Reader
	out        io.Writer
	showPrompt bool
}

func newMinEditor(in, out *os.File, showPrompt bool) *minEditor {
	return &minEditor{bufio.NewReader(in), out, showPrompt}
}

// ReadCode reads one line, without the line ending. The last line of the
// input is returned along with io.EOF if it doesn't end with a newline.
func (ed *minEditor) ReadCode(prompt string) (string, error) {
	if ed.showPrompt {
		fmt.Fprint(ed.out, prompt)
	}
	line, err := ed.in.ReadString('\n')
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), err
}
