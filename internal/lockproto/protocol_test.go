package lockproto_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiftlabs/dataqueue/internal/lockproto"
	"github.com/swiftlabs/dataqueue/pkg/fsal"
)

func newManager(t *testing.T) (*lockproto.Manager, string) {
	t.Helper()

	dir := t.TempDir()

	return lockproto.NewManager(fsal.NewReal()), dir
}

func TestAcquireExclusiveBlocksEverything(t *testing.T) {
	mgr, dir := newManager(t)

	require.NoError(t, mgr.Acquire(dir, lockproto.KindRW))

	require.ErrorIs(t, mgr.Acquire(dir, lockproto.KindRO), lockproto.ErrBusy)
	require.ErrorIs(t, mgr.Acquire(dir, lockproto.KindWO), lockproto.ErrBusy)
	require.ErrorIs(t, mgr.Acquire(dir, lockproto.KindRW), lockproto.ErrBusy)

	require.NoError(t, mgr.Release(dir, lockproto.KindRW))

	st, err := mgr.Stat(dir)
	require.NoError(t, err)
	require.False(t, st.Busy())
}

func TestMultipleReadersStackAndUnwind(t *testing.T) {
	mgr, dir := newManager(t)

	require.NoError(t, mgr.Acquire(dir, lockproto.KindRO))
	require.NoError(t, mgr.Acquire(dir, lockproto.KindRO))
	require.NoError(t, mgr.Acquire(dir, lockproto.KindRO))

	st, err := mgr.Stat(dir)
	require.NoError(t, err)
	require.True(t, st.ReadOnly)
	require.Equal(t, 3, st.Readers)

	require.ErrorIs(t, mgr.Acquire(dir, lockproto.KindWO), lockproto.ErrBusy)

	require.NoError(t, mgr.Release(dir, lockproto.KindRO))
	require.NoError(t, mgr.Release(dir, lockproto.KindRO))

	st, err = mgr.Stat(dir)
	require.NoError(t, err)
	require.True(t, st.ReadOnly)
	require.Equal(t, 1, st.Readers)

	require.NoError(t, mgr.Release(dir, lockproto.KindRO))

	st, err = mgr.Stat(dir)
	require.NoError(t, err)
	require.False(t, st.Busy())
}

func TestReleaseOnAbsentLockIsNoop(t *testing.T) {
	mgr, dir := newManager(t)

	require.NoError(t, mgr.Release(dir, lockproto.KindWO))
	require.NoError(t, mgr.Release(dir, lockproto.KindRO))
}

func TestWriteOnlyAndReadWriteAreDistinctMarkers(t *testing.T) {
	mgr, dir := newManager(t)

	require.NoError(t, mgr.Acquire(dir, lockproto.KindWO))

	st, err := mgr.Stat(dir)
	require.NoError(t, err)
	require.True(t, st.WriteOnly)
	require.False(t, st.ReadWrite)
}
