package fsal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiftlabs/dataqueue/pkg/fsal"
)

func TestAtomicWriterReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	real := fsal.NewReal()
	w := fsal.NewAtomicWriter(real)
	path := filepath.Join(dir, ".header")

	require.NoError(t, real.WriteFile(path, []byte("old"), 0o644))
	require.NoError(t, w.Write(path, []byte("new-contents"), 0o644))

	got, err := real.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("new-contents"), got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no leftover temp file")
}

func TestAtomicWriterLeavesOriginalOnChaosFailure(t *testing.T) {
	dir := t.TempDir()
	real := fsal.NewReal()
	path := filepath.Join(dir, ".header")
	require.NoError(t, real.WriteFile(path, []byte("original"), 0o644))

	chaos := fsal.NewChaos(real, 1.0, 1)
	w := fsal.NewAtomicWriter(chaos)

	err := w.Write(path, []byte("replacement"), 0o644)
	require.Error(t, err)

	got, err := real.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("original"), got)
}
