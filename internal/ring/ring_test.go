package ring_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiftlabs/dataqueue/internal/ring"
)

func TestEnqueueFromEmpty(t *testing.T) {
	s := &ring.State{N: 3}

	slot, _, evicted := s.Enqueue()
	require.False(t, evicted)
	require.EqualValues(t, 0, slot)
	require.EqualValues(t, 1, s.Count)
	require.EqualValues(t, 0, s.Head)
	require.EqualValues(t, 0, s.Tail)
}

func TestEnqueuePartialAdvancesTail(t *testing.T) {
	s := &ring.State{N: 3}
	s.Enqueue()

	slot, _, evicted := s.Enqueue()
	require.False(t, evicted)
	require.EqualValues(t, 1, slot)
	require.EqualValues(t, 2, s.Count)
	require.EqualValues(t, 0, s.Head)
	require.EqualValues(t, 1, s.Tail)
}

func TestEnqueueFullEvictsHeadAndCountStaysAtN(t *testing.T) {
	s := &ring.State{N: 2}
	s.Enqueue() // slot 0, head=tail=0, count=1
	s.Enqueue() // slot 1, tail=1, count=2 (full)

	slot, evictedSlot, evicted := s.Enqueue()
	require.True(t, evicted)
	require.EqualValues(t, 0, evictedSlot)
	require.EqualValues(t, 0, slot)
	require.EqualValues(t, 2, s.Count, "count unchanged on overwrite")
	require.EqualValues(t, 1, s.Head)
	require.EqualValues(t, 0, s.Tail)
}

func TestEnqueueFullAdvancesSeekIfAtHead(t *testing.T) {
	s := &ring.State{N: 2}
	s.Enqueue()
	s.Enqueue()
	s.SeekHead()
	require.EqualValues(t, 0, s.Seek)

	s.Enqueue()
	require.EqualValues(t, 1, s.Seek, "seek advances off the evicted head")
}

func TestDequeueEmptyFails(t *testing.T) {
	s := &ring.State{N: 2}

	_, ok := s.Dequeue()
	require.False(t, ok)
}

func TestDequeueAdvancesHeadAndSeek(t *testing.T) {
	s := &ring.State{N: 3}
	s.Enqueue()
	s.Enqueue()
	s.SeekHead()

	slot, ok := s.Dequeue()
	require.True(t, ok)
	require.EqualValues(t, 0, slot)
	require.EqualValues(t, 1, s.Head)
	require.EqualValues(t, 1, s.Count)
	require.EqualValues(t, 1, s.Seek, "seek followed head")
}

func TestSeekPositionDoesNotOverflowUint8(t *testing.T) {
	s := &ring.State{N: 255, Head: 254, Count: 255}

	require.NoError(t, s.SeekPosition(254))
	require.EqualValues(t, 253, s.Seek)
}

func TestSeekPositionOutOfRange(t *testing.T) {
	s := &ring.State{N: 4}
	s.Enqueue()
	s.Enqueue()

	require.NoError(t, s.SeekPosition(1))
	require.Error(t, s.SeekPosition(2))
}

func TestGetEntryDoesNotWrapPastTail(t *testing.T) {
	s := &ring.State{N: 4}
	s.Enqueue()
	s.Enqueue()
	s.SeekHead()

	slot, ok := s.GetEntry()
	require.True(t, ok)
	require.EqualValues(t, 0, slot)

	slot, ok = s.GetEntry()
	require.True(t, ok)
	require.EqualValues(t, 1, slot)

	slot, ok = s.GetEntry()
	require.True(t, ok)
	require.EqualValues(t, 1, slot, "seek stays pinned at tail")
}

func TestRoundTripMatchesEnqueueOrder(t *testing.T) {
	s := &ring.State{N: 3}

	for range 3 {
		s.Enqueue()
	}

	for want := uint8(0); want < 3; want++ {
		slot, ok := s.Dequeue()
		require.True(t, ok)
		require.Equal(t, want, slot)
	}

	_, ok := s.Dequeue()
	require.False(t, ok)
}
