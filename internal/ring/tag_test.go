package ring_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swiftlabs/dataqueue/internal/ring"
)

func TestMintTagZeroPadded(t *testing.T) {
	require.Equal(t, "0042", ring.MintTag(42, 4))
	require.Equal(t, "0001", ring.MintTag(1, 4))
}

func TestMintTagWrapsModuloWidth(t *testing.T) {
	require.Equal(t, "0000", ring.MintTag(10000, 4))
	require.Equal(t, "0005", ring.MintTag(10005, 4))
}

func TestIsEmptySlot(t *testing.T) {
	require.True(t, ring.IsEmptySlot(make([]byte, 4)))
	require.False(t, ring.IsEmptySlot([]byte("0001")))
}

func TestEmptySlotMatchesIsEmptySlot(t *testing.T) {
	require.True(t, ring.IsEmptySlot([]byte(ring.EmptySlot(4))))
}
