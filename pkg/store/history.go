package store

import (
	"encoding/binary"
	"math"

	bolt "go.etcd.io/bbolt"

	. "github.com/deskcalc/deskcalc/pkg/store/storedefs"
)

const bucketHistory = "history"

func init() {
	initDB["initialize history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketHistory))
		return err
	}
}

// NextSeq returns the next sequence number of the history.
func (s *dbStore) NextSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		seq = b.Sequence() + 1
		return nil
	})
	return int(seq), err
}

// AddEntry adds a new entry to the history.
func (s *dbStore) AddEntry(expr string, value float64) (int, error) {
	var (
		seq uint64
		err error
	)
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), marshalEntry(expr, value))
	})
	return int(seq), err
}

// Entry queries the history entry with the specified sequence number.
func (s *dbStore) Entry(seq int) (Entry, error) {
	var entry Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		v := b.Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoMatchingEntry
		}
		entry = unmarshalEntry(uint64(seq), v)
		return nil
	})
	return entry, err
}

// EntriesWithSeq returns all entries within the specified range.
func (s *dbStore) EntriesWithSeq(from, upto int) ([]Entry, error) {
	from = clampSeq(from)
	if upto <= from {
		return nil, nil
	}
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			entries = append(entries, unmarshalEntry(unmarshalSeq(k), v))
		}
		return nil
	})
	return entries, err
}

// LastEntries returns the last n entries, oldest first.
func (s *dbStore) LastEntries(n int) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		c := b.Cursor()
		for k, v := c.Last(); k != nil && len(entries) < n; k, v = c.Prev() {
			entries = append(entries, unmarshalEntry(unmarshalSeq(k), v))
		}
		return nil
	})
	reverse(entries)
	return entries, err
}

// ClearEntries deletes all entries. The sequence is kept, so sequence numbers
// are not reused.
func (s *dbStore) ClearEntries() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory))
		var keys [][]byte
		err := b.ForEach(func(k, _ []byte) error {
			keys = append(keys, append([]byte(nil), k...))
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

// Sequence numbers start from 1.
func clampSeq(seq int) int {
	if seq < 1 {
		return 1
	}
	return seq
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}

// An entry is stored as the IEEE 754 bits of the value followed by the
// expression.
func marshalEntry(expr string, value float64) []byte {
	b := make([]byte, 8, 8+len(expr))
	binary.BigEndian.PutUint64(b, math.Float64bits(value))
	return append(b, expr...)
}

func unmarshalEntry(seq uint64, v []byte) Entry {
	return Entry{
		Seq:   int(seq),
		Expr:  string(v[8:]),
		Value: math.Float64frombits(binary.BigEndian.Uint64(v)),
	}
}

func reverse(entries []Entry) {
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
}
