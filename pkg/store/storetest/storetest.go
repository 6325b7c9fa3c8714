// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/deskcalc/deskcalc/pkg/store/storedefs"
)

var (
	pocketEntries = []storedefs.Entry{
		{Seq: 1, Expr: "2+3*4", Value: 14},
		{Seq: 2, Expr: "Ans/4", Value: 3.5},
		{Seq: 3, Expr: "sin(30)", Value: 0.49999999999999994},
	}
)

// TestHistory tests the history functionality of a Store.
func TestHistory(t *testing.T, store storedefs.Store) {
	t.Helper()

	startSeq, err := store.NextSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextSeq() -> %v, %v, want %v, nil", startSeq, err, 1)
	}

	// AddEntry
	for i, entry := range pocketEntries {
		wantSeq := startSeq + i
		seq, err := store.AddEntry(entry.Expr, entry.Value)
		if seq != wantSeq || err != nil {
			t.Errorf("store.AddEntry(%q, %v) -> %v, %v, want %v, nil",
				entry.Expr, entry.Value, seq, err, wantSeq)
		}
	}

	endSeq, err := store.NextSeq()
	wantEndSeq := startSeq + len(pocketEntries)
	if endSeq != wantEndSeq || err != nil {
		t.Errorf("store.NextSeq() -> %v, %v, want %v, nil",
			endSeq, err, wantEndSeq)
	}

	// Entry
	for _, want := range pocketEntries {
		entry, err := store.Entry(want.Seq)
		if entry != want || err != nil {
			t.Errorf("store.Entry(%v) -> %v, %v, want %v, nil",
				want.Seq, entry, err, want)
		}
	}
	if _, err := store.Entry(endSeq); err != storedefs.ErrNoMatchingEntry {
		t.Errorf("store.Entry(%v) -> error %v, want %v",
			endSeq, err, storedefs.ErrNoMatchingEntry)
	}

	// EntriesWithSeq
	entries, err := store.EntriesWithSeq(2, 4)
	if diff := cmp.Diff(pocketEntries[1:], entries); diff != "" || err != nil {
		t.Errorf("store.EntriesWithSeq(2, 4) (-want +got):\n%s\nerror %v", diff, err)
	}
	entries, err = store.EntriesWithSeq(0, 2)
	if diff := cmp.Diff(pocketEntries[:1], entries); diff != "" || err != nil {
		t.Errorf("store.EntriesWithSeq(0, 2) (-want +got):\n%s\nerror %v", diff, err)
	}

	entries, err = store.EntriesWithSeq(-5, 2)
	if diff := cmp.Diff(pocketEntries[:1], entries); diff != "" || err != nil {
		t.Errorf("store.EntriesWithSeq(-5, 2) (-want +got):\n%s\nerror %v", diff, err)
	}
	entries, err = store.EntriesWithSeq(3, -1)
	if len(entries) != 0 || err != nil {
		t.Errorf("store.EntriesWithSeq(3, -1) -> %v, %v, want empty, nil", entries, err)
	}
	if _, err := store.Entry(-1); err != storedefs.ErrNoMatchingEntry {
		t.Errorf("store.Entry(-1) -> error %v, want %v", err, storedefs.ErrNoMatchingEntry)
	}

	// LastEntries
	entries, err = store.LastEntries(2)
	if diff := cmp.Diff(pocketEntries[1:], entries); diff != "" || err != nil {
		t.Errorf("store.LastEntries(2) (-want +got):\n%s\nerror %v", diff, err)
	}
	entries, err = store.LastEntries(10)
	if diff := cmp.Diff(pocketEntries, entries); diff != "" || err != nil {
		t.Errorf("store.LastEntries(10) (-want +got):\n%s\nerror %v", diff, err)
	}
	entries, err = store.LastEntries(0)
	if len(entries) != 0 || err != nil {
		t.Errorf("store.LastEntries(0) -> %v, %v, want empty, nil", entries, err)
	}

	// ClearEntries
	if err := store.ClearEntries(); err != nil {
		t.Errorf("store.ClearEntries() -> %v", err)
	}
	entries, err = store.LastEntries(10)
	if len(entries) != 0 || err != nil {
		t.Errorf("store.LastEntries(10) after clearing -> %v, %v, want empty, nil", entries, err)
	}
	// Sequence numbers are not reused after clearing.
	seq, err := store.AddEntry("1", 1)
	if seq != wantEndSeq || err != nil {
		t.Errorf("store.AddEntry after clearing -> %v, %v, want %v, nil", seq, err, wantEndSeq)
	}
}
