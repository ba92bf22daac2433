package dataqueue

import "github.com/swiftlabs/dataqueue/internal/handles"

// Access identifies which operations a handle permits, mirroring the
// original's ACCESS_TYPE_READ_ONLY/WRITE_ONLY/READ_WRITE.
type Access int

const (
	ReadOnly Access = iota
	WriteOnly
	ReadWrite
)

func (a Access) valid() bool {
	return a == ReadOnly || a == WriteOnly || a == ReadWrite
}

// Mode identifies how payload bytes are moved to and from the queue.
// BinaryPacked is accepted but behaves identically to Unpacked: the
// engine always moves opaque bytes verbatim, matching spec's explicit
// non-goal of any payload schema.
type Mode int

const (
	Unpacked Mode = iota
	BinaryPacked
)

func (m Mode) valid() bool {
	return m == Unpacked || m == BinaryPacked
}

// SeekType selects where Seek repositions the random-read cursor.
type SeekType int

const (
	SeekHead SeekType = iota
	SeekTail
	SeekPosition
)

// Flags configures optional queue behavior at create time.
type Flags uint16

const (
	FlagMessageLog   Flags = 1 << 0
	FlagRandomAccess Flags = 1 << 1
)

// Handle is an opaque process-local token returned by [Engine.Open] and
// consumed by every other per-queue operation. Its zero value is never
// valid.
type Handle struct {
	name string
	tok  *handles.Handle
}

// QueueInfo describes one queue directory as reported by [Engine.List].
type QueueInfo struct {
	Name         string
	MaxEntries   uint8
	NumOfEntries uint8
	Flags        Flags
}
