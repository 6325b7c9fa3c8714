// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import "errors"

// ErrNoMatchingEntry is the error returned when a query for a single history
// entry completes with no result.
var ErrNoMatchingEntry = errors.New("no matching history entry")

// Store is an interface satisfied by history stores. Sequence numbers start
// from 1 and are never reused, even after entries are cleared.
type Store interface {
	NextSeq() (int, error)
	AddEntry(expr string, value float64) (int, error)
	Entry(seq int) (Entry, error)
	EntriesWithSeq(from, upto int) ([]Entry, error)
	LastEntries(n int) ([]Entry, error)
	ClearEntries() error
}

// Entry is an entry in the history: an expression that was evaluated
// successfully, and its value.
type Entry struct {
	Seq   int
	Expr  string
	Value float64
}
