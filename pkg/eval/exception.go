package eval

import (
	"fmt"

	"github.com/deskcalc/deskcalc/pkg/diag"
)

// Exception is an evaluation error. It carries the reason, which has one of
// the types in package errs, and the source context of the node where the
// evaluation failed.
type Exception struct {
	Reason  error
	Context diag.Context
}

// Error returns the message of the reason.
func (exc *Exception) Error() string { return exc.Reason.Error() }

// Unwrap returns the reason, so that errors.As can reach it.
func (exc *Exception) Unwrap() error { return exc.Reason }

// Range returns the range of the node where the evaluation failed.
func (exc *Exception) Range() diag.Ranging { return exc.Context.Range() }

var (
	reasonStart = "\033[31;1m"
	reasonEnd   = "\033[m"
)

// Show shows the exception.
func (exc *Exception) Show(indent string) string {
	return fmt.Sprintf("Exception: %s%s%s\n%s  %s", reasonStart, exc.Reason.Error(),
		reasonEnd, indent, exc.Context.Show(indent+"  "))
}
