package eval

import (
	"errors"

	"github.com/deskcalc/deskcalc/pkg/eval/errs"
	"github.com/deskcalc/deskcalc/pkg/parse"
)

// Kind classifies errors returned by parsing and evaluation.
type Kind int

// Possible values of Kind.
const (
	NoError Kind = iota
	LexErrorKind
	SyntaxErrorKind
	DivideByZeroKind
	DomainKind
	UndefinedNameKind
	// Any other error.
	OtherKind
)

var kindNames = [...]string{
	NoError:           "ok",
	LexErrorKind:      "lex-error",
	SyntaxErrorKind:   "syntax-error",
	DivideByZeroKind:  "divide-by-zero",
	DomainKind:        "domain-error",
	UndefinedNameKind: "undefined-name",
	OtherKind:         "error",
}

// String returns a name of the kind that is suitable for machine-readable
// output.
func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[OtherKind]
}

var kindMessages = [...]string{
	NoError:           "",
	LexErrorKind:      "Syntax Error",
	SyntaxErrorKind:   "Syntax Error",
	DivideByZeroKind:  "Division by Zero",
	DomainKind:        "Math Error",
	UndefinedNameKind: "Unknown Name",
	OtherKind:         "Error",
}

// Message returns the short text a calculator display shows for errors of
// the kind.
func (k Kind) Message() string {
	if 0 <= k && int(k) < len(kindMessages) {
		return kindMessages[k]
	}
	return kindMessages[OtherKind]
}

// KindOf classifies an error. It returns NoError for nil.
func KindOf(err error) Kind {
	var (
		lexErr    *parse.LexError
		syntaxErr *parse.SyntaxError
		divErr    errs.DivideByZero
		domainErr errs.Domain
		nameErr   errs.UndefinedName
	)
	switch {
	case err == nil:
		return NoError
	case errors.As(err, &lexErr):
		return LexErrorKind
	case errors.As(err, &syntaxErr):
		return SyntaxErrorKind
	case errors.As(err, &divErr):
		return DivideByZeroKind
	case errors.As(err, &domainErr):
		return DomainKind
	case errors.As(err, &nameErr):
		return UndefinedNameKind
	default:
		return OtherKind
	}
}
