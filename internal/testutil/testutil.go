// Package testutil provides fixture and comparison helpers shared by the
// way2 test suites.
//
// Fixtures are txtar archives: one archive holds a whole tree of schema
// documents, which keeps multi-document tests readable in a single file.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/tools/txtar"
)

// ReadArchive parses the txtar archive at path.
func ReadArchive(t testing.TB, path string) *txtar.Archive {
	t.Helper()
	ar, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("read archive %s: %v", path, err)
	}
	return ar
}

// ParseArchive parses an inline txtar archive.
func ParseArchive(src string) *txtar.Archive {
	return txtar.Parse([]byte(src))
}

// WriteTree materialises every file of ar under dir and returns dir.
func WriteTree(t testing.TB, dir string, ar *txtar.Archive) string {
	t.Helper()
	for _, f := range ar.Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", f.Name, err)
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			t.Fatalf("write %s: %v", f.Name, err)
		}
	}
	return dir
}

// TempTree writes ar into a fresh temporary directory.
func TempTree(t testing.TB, ar *txtar.Archive) string {
	t.Helper()
	return WriteTree(t, t.TempDir(), ar)
}

// File returns the contents of the named archive member.
func File(t testing.TB, ar *txtar.Archive, name string) []byte {
	t.Helper()
	for _, f := range ar.Files {
		if f.Name == name {
			return f.Data
		}
	}
	t.Fatalf("archive has no file %q", name)
	return nil
}

// AssertText fails the test with a unified diff when got differs from want.
func AssertText(t testing.TB, name, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want/" + name,
		ToFile:   "got/" + name,
		Context:  3,
	})
	if err != nil {
		t.Fatalf("%s differs, and the diff failed: %v", name, err)
	}
	t.Errorf("%s differs:\n%s", name, diff)
}
