package testutil

import (
	"os"
	"path/filepath"

	"github.com/deskcalc/deskcalc/pkg/must"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. Symlinks in the returned path are resolved.
func TempDir(c Cleanuper) string {
	dir := must.OK1(os.MkdirTemp("", "deskcalctest"))
	dir = must.OK1(filepath.EvalSymlinks(dir))
	c.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// InTempDir is like TempDir, but also changes into the directory, and changes
// back to the original working directory when the test finishes.
func InTempDir(c Cleanuper) string {
	dir := TempDir(c)
	old := must.OK1(os.Getwd())
	must.Chdir(dir)
	c.Cleanup(func() { must.Chdir(old) })
	return dir
}
