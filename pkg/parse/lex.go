package parse

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/deskcalc/deskcalc/pkg/diag"
)

// MaxInputLength is the maximum length of source code in bytes. Longer input
// is rejected by the lexer, which bounds the depth of parse trees.
const MaxInputLength = 1024

// LexError is a lexical error.
type LexError = diag.Error[LexErrorTag]

// LexErrorTag parameterizes [diag.Error] to define [LexError].
type LexErrorTag struct{}

func (LexErrorTag) ErrorTag() string { return "lex error" }

// Kind is the kind of a Token.
type Kind int

// Possible values of Kind.
const (
	Number Kind = iota
	Operator
	Identifier
	LParen
	RParen
	// EOF is returned by Lexer.Next after the last token. It never appears in
	// the result of Tokenize.
	EOF
)

var kindNames = [...]string{
	Number: "number", Operator: "operator", Identifier: "identifier",
	LParen: "'('", RParen: "')'", EOF: "end of input",
}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a lexical unit of source code.
type Token struct {
	Kind Kind
	Text string
	// Numeric value, only set for Number tokens.
	Value float64
	diag.Ranging
}

// Lexer produces tokens from source code lazily. A Lexer is not safe for
// concurrent use; create one Lexer per consumer.
type Lexer struct {
	src Source
	pos int
}

// NewLexer returns a Lexer reading from the start of src.
func NewLexer(src Source) *Lexer {
	return &Lexer{src: src}
}

// Tokenize returns all the tokens of src. The returned error always has type
// *LexError if it is not nil.
func Tokenize(src Source) ([]Token, error) {
	lx := NewLexer(src)
	var tokens []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token, or a token of kind EOF if the input is
// exhausted. The returned error always has type *LexError if it is not nil.
func (lx *Lexer) Next() (Token, error) {
	code := lx.src.Code
	if len(code) > MaxInputLength {
		return Token{}, lx.errorf(diag.Ranging{From: MaxInputLength, To: len(code)},
			"input longer than %d bytes", MaxInputLength)
	}
	for lx.pos < len(code) {
		r, _ := utf8.DecodeRuneInString(code[lx.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		lx.pos += utf8.RuneLen(r)
	}
	if lx.pos == len(code) {
		return Token{Kind: EOF, Ranging: diag.PointRanging(lx.pos)}, nil
	}

	begin := lx.pos
	r, size := utf8.DecodeRuneInString(code[begin:])
	switch {
	case r == '*' && begin+1 < len(code) && code[begin+1] == '*':
		return lx.emit(Operator, begin+2), nil
	case r == '+' || r == '-' || r == '*' || r == '/' || r == '^' || r == '%' || r == '!':
		return lx.emit(Operator, begin+1), nil
	case r == '(':
		return lx.emit(LParen, begin+1), nil
	case r == ')':
		return lx.emit(RParen, begin+1), nil
	case isDigit(r) || r == '.':
		return lx.number()
	case r == '√':
		return lx.emit(Identifier, begin+size), nil
	case r == '_' || unicode.IsLetter(r):
		end := begin + size
		for end < len(code) {
			r, size := utf8.DecodeRuneInString(code[end:])
			if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			end += size
		}
		return lx.emit(Identifier, end), nil
	case r == utf8.RuneError && size == 1:
		return Token{}, lx.errorf(diag.Ranging{From: begin, To: begin + 1},
			"invalid UTF-8 byte 0x%02x", code[begin])
	default:
		return Token{}, lx.errorf(diag.Ranging{From: begin, To: begin + size},
			"unexpected character %q", r)
	}
}

// Scans a number: digits with at most one decimal point, optionally followed
// by an exponent introduced by 'E'.
func (lx *Lexer) number() (Token, error) {
	code := lx.src.Code
	begin := lx.pos
	end := begin
	digits, dots := 0, 0
	for end < len(code) && (isDigit(rune(code[end])) || code[end] == '.') {
		if code[end] == '.' {
			dots++
		} else {
			digits++
		}
		end++
	}
	if dots > 1 {
		return Token{}, lx.errorf(diag.Ranging{From: begin, To: end},
			"number has more than one decimal point")
	}
	if digits == 0 {
		return Token{}, lx.errorf(diag.Ranging{From: begin, To: end},
			"decimal point without digits")
	}
	if end < len(code) && code[end] == 'E' {
		end++
		if end < len(code) && (code[end] == '+' || code[end] == '-') {
			end++
		}
		expBegin := end
		for end < len(code) && isDigit(rune(code[end])) {
			end++
		}
		if end == expBegin {
			return Token{}, lx.errorf(diag.Ranging{From: begin, To: end},
				"exponent has no digits")
		}
	}
	text := code[begin:end]
	// A literal too large for float64 becomes an infinity and is rejected by
	// the evaluator like any other non-finite value.
	value, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Token{}, lx.errorf(diag.Ranging{From: begin, To: end},
			"invalid number %q", text)
	}
	tok := lx.emit(Number, end)
	tok.Value = value
	return tok, nil
}

func (lx *Lexer) emit(k Kind, end int) Token {
	tok := Token{Kind: k, Text: lx.src.Code[lx.pos:end],
		Ranging: diag.Ranging{From: lx.pos, To: end}}
	lx.pos = end
	return tok
}

func (lx *Lexer) errorf(r diag.Ranger, format string, args ...any) error {
	return &LexError{
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(lx.src.Name, lx.src.Code, r),
	}
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }
