// Package queuefile is the on-disk store layout: the fixed-size .header
// and .lut files, encoded and decoded as raw byte buffers rather than cast
// from a struct pointer, since Go has no portable equivalent of a native
// struct overlay. [Header] mirrors the canonical field order, and
// [encoding/binary.NativeEndian] stands in for "native endianness, natural
// alignment, not a portable wire format".
package queuefile

import (
	"encoding/binary"
	"fmt"
)

// Bit flags for Header.Flags.
const (
	FlagMessageLog   uint16 = 1 << 0 // reserved, unused by the engine
	FlagRandomAccess uint16 = 1 << 1 // queue supports Seek/GetEntry
)

// HeaderSize is the fixed on-disk size of .header, in bytes. The field
// layout below totals 26 bytes; the remaining 6 are reserved padding,
// mirroring the fixed-header convention of bringing a little headroom for
// future fields rather than growing the file size later.
const HeaderSize = 32

const (
	offSize           = 0x00 // uint64
	offMaxEntrySize   = 0x08 // uint64
	offMaxEntries     = 0x10 // uint8
	offNumOfEntries   = 0x11 // uint8
	offHeadLutOffs    = 0x12 // uint8
	offTailLutOffs    = 0x13 // uint8
	offSeekLutOffs    = 0x14 // uint8
	offReserved1      = 0x15 // uint8
	offReferenceCount = 0x16 // uint16
	offFlags          = 0x18 // uint16
	offReservedStart  = 0x1A // 6 bytes, zero
)

// Header is the decoded form of .header.
type Header struct {
	Size           uint64 // HeaderSize at encode time; validated on decode
	MaxEntrySize   uint64 // payload size bound configured at create time
	MaxEntries     uint8  // ring capacity, 1..255
	NumOfEntries   uint8  // current live entry count
	HeadLutOffs    uint8  // index of the oldest live entry
	TailLutOffs    uint8  // index of the youngest live entry
	SeekLutOffs    uint8  // current random-read position
	ReferenceCount uint16 // monotonically increasing enqueue counter
	Flags          uint16 // FlagRandomAccess | FlagMessageLog
}

// Encode writes h into a fresh HeaderSize-byte buffer.
func Encode(h Header) []byte {
	buf := make([]byte, HeaderSize)

	binary.NativeEndian.PutUint64(buf[offSize:], HeaderSize)
	binary.NativeEndian.PutUint64(buf[offMaxEntrySize:], h.MaxEntrySize)
	buf[offMaxEntries] = h.MaxEntries
	buf[offNumOfEntries] = h.NumOfEntries
	buf[offHeadLutOffs] = h.HeadLutOffs
	buf[offTailLutOffs] = h.TailLutOffs
	buf[offSeekLutOffs] = h.SeekLutOffs
	binary.NativeEndian.PutUint16(buf[offReferenceCount:], h.ReferenceCount)
	binary.NativeEndian.PutUint16(buf[offFlags:], h.Flags)

	return buf
}

// Decode parses a HeaderSize-byte buffer produced by [Encode].
func Decode(buf []byte) (Header, error) {
	if len(buf) != HeaderSize {
		return Header{}, fmt.Errorf("queuefile: header is %d bytes, want %d", len(buf), HeaderSize)
	}

	size := binary.NativeEndian.Uint64(buf[offSize:])
	if size != HeaderSize {
		return Header{}, fmt.Errorf("queuefile: header declares size %d, want %d", size, HeaderSize)
	}

	return Header{
		Size:           size,
		MaxEntrySize:   binary.NativeEndian.Uint64(buf[offMaxEntrySize:]),
		MaxEntries:     buf[offMaxEntries],
		NumOfEntries:   buf[offNumOfEntries],
		HeadLutOffs:    buf[offHeadLutOffs],
		TailLutOffs:    buf[offTailLutOffs],
		SeekLutOffs:    buf[offSeekLutOffs],
		ReferenceCount: binary.NativeEndian.Uint16(buf[offReferenceCount:]),
		Flags:          binary.NativeEndian.Uint16(buf[offFlags:]),
	}, nil
}
