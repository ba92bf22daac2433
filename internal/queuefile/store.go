package queuefile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/swiftlabs/dataqueue/pkg/fsal"
)

const (
	HeaderName = ".header"
	LUTName    = ".lut"
)

// Store reads and writes the .header/.lut pair for one queue directory.
// Enqueue and Dequeue read both in full on entry and write both back in
// full on exit; Seek and GetEntry, which only move the seek position,
// write back only the header. Store does not cache anything between calls.
type Store struct {
	fs     fsal.FS
	writer *fsal.AtomicWriter
}

// NewStore returns a Store backed by fs.
func NewStore(fs fsal.FS) *Store {
	return &Store{fs: fs, writer: fsal.NewAtomicWriter(fs)}
}

// ReadHeader reads and decodes dir/.header.
func (s *Store) ReadHeader(dir string) (Header, error) {
	buf, err := s.fs.ReadFile(filepath.Join(dir, HeaderName))
	if err != nil {
		return Header{}, fmt.Errorf("queuefile: reading header: %w", err)
	}

	h, err := Decode(buf)
	if err != nil {
		return Header{}, fmt.Errorf("queuefile: decoding header: %w", err)
	}

	return h, nil
}

// WriteHeader durably replaces dir/.header with the encoding of h.
func (s *Store) WriteHeader(dir string, h Header) error {
	return s.writer.Write(filepath.Join(dir, HeaderName), Encode(h), 0o644)
}

// ReadLUT reads and decodes dir/.lut.
func (s *Store) ReadLUT(dir string, tagWidth int) (LUT, error) {
	buf, err := s.fs.ReadFile(filepath.Join(dir, LUTName))
	if err != nil {
		return LUT{}, fmt.Errorf("queuefile: reading lut: %w", err)
	}

	l, err := DecodeLUT(buf, tagWidth)
	if err != nil {
		return LUT{}, fmt.Errorf("queuefile: decoding lut: %w", err)
	}

	return l, nil
}

// WriteLUT durably replaces dir/.lut with the encoding of l.
func (s *Store) WriteLUT(dir string, l LUT) error {
	return s.writer.Write(filepath.Join(dir, LUTName), EncodeLUT(l), 0o644)
}

// PayloadPath returns the path of the payload file for the given tag.
func (s *Store) PayloadPath(dir, tag string) string {
	return filepath.Join(dir, tag)
}

// ReadPayload reads up to len(buf) bytes of the payload named tag,
// returning the number of bytes actually present.
func (s *Store) ReadPayload(dir, tag string, buf []byte) (int, error) {
	data, err := s.fs.ReadFile(s.PayloadPath(dir, tag))
	if err != nil {
		return 0, fmt.Errorf("queuefile: reading payload %q: %w", tag, err)
	}

	n := copy(buf, data)

	return n, nil
}

// WritePayload creates the payload file named tag with the given contents.
// Payload files have no update-in-place hazard (each tag is fresh), so they
// are written directly rather than through [Store.WriteHeader]'s atomic path.
func (s *Store) WritePayload(dir, tag string, data []byte) error {
	if err := s.fs.WriteFile(s.PayloadPath(dir, tag), data, 0o644); err != nil {
		return fmt.Errorf("queuefile: writing payload %q: %w", tag, err)
	}

	return nil
}

// DeletePayload removes the payload file named tag. Missing files are not
// an error: a caller recovering from a partially-applied eviction may
// delete a payload that was never written.
func (s *Store) DeletePayload(dir, tag string) error {
	err := s.fs.Remove(s.PayloadPath(dir, tag))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("queuefile: deleting payload %q: %w", tag, err)
	}

	return nil
}
