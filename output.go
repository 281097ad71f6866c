package main

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// WriteOutcome reports what closing an OutputWriter did on disk.
type WriteOutcome int

const (
	OutcomeNotSaved WriteOutcome = iota
	OutcomeUnchanged
	OutcomeWritten
)

func (o WriteOutcome) String() string {
	switch o {
	case OutcomeWritten:
		return "written"
	case OutcomeUnchanged:
		return "unchanged"
	default:
		return "not saved"
	}
}

const outputBufferSize = 100 * 1024

// OutputWriter buffers everything written to it and only touches the target
// file on Close, and only if the content differs from what is on disk.
type OutputWriter struct {
	path         string
	canonicalize bool
	log          *slog.Logger
	buf          bytes.Buffer
	closed       bool
}

// NewOutputWriter returns a writer for path. With canonicalize set the
// buffered bytes are re-printed as normalized HTML before comparison.
func NewOutputWriter(path string, canonicalize bool, logger *slog.Logger) *OutputWriter {
	w := &OutputWriter{path: path, canonicalize: canonicalize, log: logger}
	w.buf.Grow(outputBufferSize)
	return w
}

func (w *OutputWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fs.ErrClosed
	}
	return w.buf.Write(p)
}

// Close decides whether to persist. It satisfies io.Closer; use Commit to
// learn the outcome.
func (w *OutputWriter) Close() error {
	_, err := w.Commit()
	return err
}

// Commit persists the buffered bytes if they differ from the existing file.
func (w *OutputWriter) Commit() (WriteOutcome, error) {
	if w.closed {
		return OutcomeNotSaved, fs.ErrClosed
	}
	w.closed = true

	payload := w.buf.Bytes()
	if w.canonicalize {
		canon, err := canonicalHTML(payload)
		if err != nil {
			w.log.Warn("Cannot canonicalize page, writing as rendered", logPath(w.path), logError(err))
		} else {
			payload = canon
		}
	}

	info, err := os.Stat(w.path)
	switch {
	case err == nil && info.IsDir():
		err = targetIsDirectory(w.path)
		w.log.Error("Output target is a directory", logPath(w.path))
		return OutcomeNotSaved, err
	case err == nil:
		existing, rerr := os.ReadFile(w.path)
		if rerr == nil && bytes.Equal(existing, payload) {
			w.log.Debug("Output committed", logPath(w.path), logOutcome(OutcomeUnchanged))
			return OutcomeUnchanged, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		w.log.Warn("Cannot stat output target", logPath(w.path), logError(err))
	}

	if err := writeReplace(w.path, payload); err != nil {
		w.log.Error("Cannot write output", logPath(w.path), logError(err))
		return OutcomeNotSaved, ioFailure(w.path, err)
	}
	w.log.Info("Output committed", logPath(w.path), logOutcome(OutcomeWritten))
	return OutcomeWritten, nil
}

// writeReplace writes to a temporary file next to path and renames it over
// the target.
func writeReplace(path string, payload []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o775); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o664); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// WriteStats counts commit outcomes over a run.
type WriteStats struct {
	Written   int
	Unchanged int
	Failed    int
}

func (s *WriteStats) record(o WriteOutcome) {
	switch o {
	case OutcomeWritten:
		s.Written++
	case OutcomeUnchanged:
		s.Unchanged++
	default:
		s.Failed++
	}
}

func (s WriteStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("written", s.Written),
		slog.Int("unchanged", s.Unchanged),
		slog.Int("failed", s.Failed),
	)
}
