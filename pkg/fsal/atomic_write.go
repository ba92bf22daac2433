package fsal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
)

// ErrDirSync indicates the parent directory could not be synced after
// rename. The new file is in place but durability is not guaranteed.
var ErrDirSync = errors.New("dir sync")

// AtomicWriter durably replaces a file's contents via temp-file + fsync +
// rename + parent-dir-fsync, the only crash-safe way to update a file over
// a filesystem that offers no atomicity primitives of its own.
//
// internal/queuefile uses this for .header and .lut; plain payload files
// are created/removed directly since they have no update-in-place hazard.
type AtomicWriter struct {
	fs FS
}

// NewAtomicWriter returns an AtomicWriter using fs for all I/O, so it can be
// exercised against [Chaos] in tests. Panics if fs is nil.
func NewAtomicWriter(fs FS) *AtomicWriter {
	if fs == nil {
		panic("fsal: fs is nil")
	}

	return &AtomicWriter{fs: fs}
}

// Write durably replaces the file at path with data.
func (w *AtomicWriter) Write(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		return errors.New("fsal: path is empty")
	}

	dir, base := filepath.Split(path)
	if base == "" {
		return fmt.Errorf("fsal: path is invalid: %q", path)
	}

	if dir == "" {
		dir = "."
	}

	dir = filepath.Clean(dir)

	tmp, tmpPath, err := w.createTempFile(dir, base, perm)
	if err != nil {
		return err
	}

	cleanup := func() error {
		closeErr := closeFile(tmpPath, tmp)
		removeErr := removeIfExists(w.fs, tmpPath)

		return errors.Join(closeErr, removeErr)
	}

	if _, err := tmp.Write(data); err != nil {
		return errors.Join(fmt.Errorf("fsal: write temp file %q: %w", tmpPath, err), cleanup())
	}

	if err := tmp.Sync(); err != nil {
		return errors.Join(fmt.Errorf("fsal: sync temp file %q: %w", tmpPath, err), cleanup())
	}

	if err := w.fs.Rename(tmpPath, path); err != nil {
		return errors.Join(fmt.Errorf("fsal: rename: %w", err), cleanup())
	}

	cleanupErr := cleanup()

	if err := w.syncDir(dir); err != nil {
		return errors.Join(err, cleanupErr)
	}

	return nil
}

var atomicWriteCounter atomic.Uint64

const atomicWriteMaxAttempts = 10000

func (w *AtomicWriter) createTempFile(dir, base string, perm os.FileMode) (File, string, error) {
	for range atomicWriteMaxAttempts {
		seq := atomicWriteCounter.Add(1)
		path := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d", base, seq))

		f, err := w.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
		if err == nil {
			return f, path, nil
		}

		if os.IsExist(err) {
			continue
		}

		return nil, "", fmt.Errorf("fsal: create temp file: %w", err)
	}

	return nil, "", fmt.Errorf("fsal: exhausted temp file attempts in %q", dir)
}

func (w *AtomicWriter) syncDir(dir string) error {
	f, err := w.fs.Open(dir)
	if err != nil {
		return errors.Join(ErrDirSync, fmt.Errorf("open dir %q: %w", dir, err))
	}

	syncErr := f.Sync()
	closeErr := closeFile(dir, f)

	if syncErr != nil {
		return errors.Join(ErrDirSync, fmt.Errorf("%q: %w", dir, syncErr), closeErr)
	}

	return closeErr
}

func closeFile(path string, f File) error {
	if err := f.Close(); err != nil {
		return fmt.Errorf("fsal: close %q: %w", path, err)
	}

	return nil
}

func removeIfExists(fs FS, path string) error {
	err := fs.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("fsal: remove temp file %q: %w", path, err)
	}

	return nil
}
