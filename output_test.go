package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commit(t *testing.T, path string, canonicalize bool, content string) WriteOutcome {
	t.Helper()
	w := NewOutputWriter(path, canonicalize, discardLogger())
	_, err := fmt.Fprint(w, content)
	require.NoError(t, err)
	outcome, _ := w.Commit()
	return outcome
}

func TestOutputWriterCreatesParentsAndWrites(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "map.txt")
	assert.Equal(t, OutcomeWritten, commit(t, target, false, "x y\n"))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "x y\n", string(got))
}

func TestOutputWriterSkipsIdenticalContent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "page.html")
	require.Equal(t, OutcomeWritten, commit(t, target, true, "<p>hello</p>"))

	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(target, old, old))

	assert.Equal(t, OutcomeUnchanged, commit(t, target, true, "<p>hello</p>"))
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "file must not be touched")

	assert.Equal(t, OutcomeWritten, commit(t, target, true, "<p>changed</p>"))
}

func TestOutputWriterSkipsUnchangedWithoutCreatingDirectories(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "same.txt")
	require.NoError(t, os.WriteFile(target, []byte("same"), 0o644))
	assert.Equal(t, OutcomeUnchanged, commit(t, target, false, "same"))
}

func TestOutputWriterRefusesDirectoryTarget(t *testing.T) {
	dir := t.TempDir()
	w := NewOutputWriter(dir, false, discardLogger())
	_, err := w.Write([]byte("data"))
	require.NoError(t, err)

	outcome, err := w.Commit()
	assert.Equal(t, OutcomeNotSaved, outcome)
	assert.True(t, IsKind(err, KindWriteTargetIsDirectory))
	info, statErr := os.Stat(dir)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestOutputWriterCanonicalizesPages(t *testing.T) {
	target := filepath.Join(t.TempDir(), "index.html")
	require.Equal(t, OutcomeWritten, commit(t, target, true, "<html><body><p>a</p></body></html>"))
	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(got), "\n        <p>a</p>\n")

	// Different markup, same canonical form.
	assert.Equal(t, OutcomeUnchanged, commit(t, target, true, "<html>\n<body>\n  <p>  a </p>\n</body></html>"))
}

func TestOutputWriterRejectsUseAfterClose(t *testing.T) {
	w := NewOutputWriter(filepath.Join(t.TempDir(), "x"), false, discardLogger())
	require.NoError(t, w.Close())
	_, err := w.Write([]byte("late"))
	assert.Error(t, err)
}

func TestWriteStats(t *testing.T) {
	var s WriteStats
	s.record(OutcomeWritten)
	s.record(OutcomeUnchanged)
	s.record(OutcomeUnchanged)
	s.record(OutcomeNotSaved)
	assert.Equal(t, WriteStats{Written: 1, Unchanged: 2, Failed: 1}, s)
}
