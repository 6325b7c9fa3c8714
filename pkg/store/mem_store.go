package store

import (
	"sync"

	. "github.com/deskcalc/deskcalc/pkg/store/storedefs"
)

type memStore struct {
	mu      sync.Mutex
	entries []Entry
	seq     int
}

// NewMemStore returns a Store that keeps the history in memory. It is used
// when no database is configured.
func NewMemStore() Store {
	return &memStore{}
}

func (s *memStore) NextSeq() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq + 1, nil
}

func (s *memStore) AddEntry(expr string, value float64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.entries = append(s.entries, Entry{Seq: s.seq, Expr: expr, Value: value})
	return s.seq, nil
}

func (s *memStore) Entry(seq int) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
		if entry.Seq == seq {
			return entry, nil
		}
	}
	return Entry{}, ErrNoMatchingEntry
}

func (s *memStore) EntriesWithSeq(from, upto int) ([]Entry, error) {
	from = clampSeq(from)
	if upto <= from {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []Entry
	for _, entry := range s.entries {
		if from <= entry.Seq && entry.Seq < upto {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (s *memStore) LastEntries(n int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 {
		return nil, nil
	}
	if n > len(s.entries) {
		n = len(s.entries)
	}
	return append([]Entry(nil), s.entries[len(s.entries)-n:]...), nil
}

func (s *memStore) ClearEntries() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}
