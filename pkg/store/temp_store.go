package store

import (
	"path/filepath"
	"testing"

	"github.com/deskcalc/deskcalc/pkg/testutil"
)

// MustTempStore returns a Store backed by a temporary file for testing. The
// Store is closed when the test completes.
func MustTempStore(t testing.TB) DBStore {
	st, err := NewStore(filepath.Join(testutil.TempDir(t), "db"))
	if err != nil {
		t.Fatalf("create temp store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}
