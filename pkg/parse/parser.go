package parse

import (
	"errors"
	"strings"

	"github.com/deskcalc/deskcalc/pkg/diag"
)

// parser maintains the mutable state of parsing a token sequence. Parsing
// stops at the first error.
type parser struct {
	src    Source
	tokens []Token
	pos    int
	err    *SyntaxError
}

func (ps *parser) peek() Token {
	if ps.pos == len(ps.tokens) {
		return Token{Kind: EOF, Ranging: diag.PointRanging(len(ps.src.Code))}
	}
	return ps.tokens[ps.pos]
}

func (ps *parser) next() Token {
	tok := ps.peek()
	if ps.pos < len(ps.tokens) {
		ps.pos++
	}
	return tok
}

// Records an error at the given range, unless an error has already been
// recorded.
func (ps *parser) errorp(r diag.Ranger, e error) {
	if ps.err != nil {
		return
	}
	ps.err = &SyntaxError{
		Message: e.Error(),
		Context: *diag.NewContext(ps.src.Name, ps.src.Code, r),
	}
}

// Records an error at the current token.
func (ps *parser) error(e error) {
	ps.errorp(ps.peek(), e)
}

func newError(text string, shouldbe ...string) error {
	if len(shouldbe) == 0 {
		return errors.New(text)
	}
	var sb strings.Builder
	if len(text) > 0 {
		sb.WriteString(text + ", ")
	}
	sb.WriteString("should be " + shouldbe[0])
	for i, opt := range shouldbe[1:] {
		if i == len(shouldbe)-2 {
			sb.WriteString(" or ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(opt)
	}
	return errors.New(sb.String())
}
