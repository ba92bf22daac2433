package queuefile_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/swiftlabs/dataqueue/internal/queuefile"
)

func TestEncodeDecodeRoundtrip(t *testing.T) {
	h := queuefile.Header{
		MaxEntrySize:   4096,
		MaxEntries:     32,
		NumOfEntries:   7,
		HeadLutOffs:    1,
		TailLutOffs:    8,
		SeekLutOffs:    1,
		ReferenceCount: 12345,
		Flags:          queuefile.FlagRandomAccess,
	}

	buf := queuefile.Encode(h)
	require.Len(t, buf, queuefile.HeaderSize)

	got, err := queuefile.Decode(buf)
	require.NoError(t, err)

	h.Size = queuefile.HeaderSize

	if diff := cmp.Diff(h, got); diff != "" {
		t.Errorf("decoded header mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	_, err := queuefile.Decode(make([]byte, queuefile.HeaderSize-1))
	require.Error(t, err)
}

func TestDecodeRejectsBadSizeField(t *testing.T) {
	buf := queuefile.Encode(queuefile.Header{})
	buf[0] = 0xff

	_, err := queuefile.Decode(buf)
	require.Error(t, err)
}
