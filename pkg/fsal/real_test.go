package fsal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiftlabs/dataqueue/pkg/fsal"
)

func TestRealWriteReadRoundtrip(t *testing.T) {
	dir := t.TempDir()
	r := fsal.NewReal()
	path := filepath.Join(dir, "payload")

	require.NoError(t, r.WriteFile(path, []byte("hello"), 0o644))

	got, err := r.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)
}

func TestRealExists(t *testing.T) {
	dir := t.TempDir()
	r := fsal.NewReal()

	ok, err := r.Exists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.False(t, ok)

	path := filepath.Join(dir, "present")
	require.NoError(t, r.WriteFile(path, nil, 0o644))

	ok, err = r.Exists(path)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRealMkdirAllRemoveAll(t *testing.T) {
	dir := t.TempDir()
	r := fsal.NewReal()
	sub := filepath.Join(dir, "a", "b")

	require.NoError(t, r.MkdirAll(sub, 0o755))

	_, err := os.Stat(sub)
	require.NoError(t, err)

	require.NoError(t, r.RemoveAll(filepath.Join(dir, "a")))

	_, err = os.Stat(sub)
	require.True(t, os.IsNotExist(err))
}
