// Package handles implements the process-local, fixed-size table of open
// queue handles: a linear-scan slot array modeled directly on the
// original's static DataQ_FileHandleList array, re-cast as an explicit
// value owned by one Engine rather than process-wide global state.
package handles

import (
	"errors"
	"fmt"
)

// Access identifies which operations a handle permits.
type Access int

const (
	ReadOnly Access = iota
	WriteOnly
	ReadWrite
)

// Mode identifies how payload bytes are moved to and from the queue.
type Mode int

const (
	Unpacked Mode = iota
	BinaryPacked
)

// Handle is the process-local token returned by Open and consumed by every
// other operation. Its zero value is never valid; callers obtain one only
// from [Table.Allocate] or [Table.Find].
type Handle struct {
	table *Table
	slot  int
}

// ErrMismatch reports that a queue already open in this process has
// different access or mode than the one now requested.
var ErrMismatch = errors.New("handles: queue open with different access/mode")

// ErrFull reports that every slot in the table is occupied.
var ErrFull = errors.New("handles: table full")

// ErrInvalid reports that a handle does not name a live slot in this
// table, the Go equivalent of the original's address-in-range check.
var ErrInvalid = errors.New("handles: invalid handle")

type entry struct {
	name   string
	access Access
	mode   Mode
	live   bool
}

// Table is a fixed-size registry of open queue handles. The zero value is
// not usable; construct one with [NewTable].
type Table struct {
	slots []entry
}

// NewTable returns a Table with room for size concurrent handles.
func NewTable(size int) *Table {
	if size <= 0 {
		panic("handles: size must be positive")
	}

	return &Table{slots: make([]entry, size)}
}

// Find scans for a live handle already open on name. If one exists with
// identical access and mode, it is returned unchanged (re-open). If one
// exists with different access or mode, Find returns [ErrMismatch]. If
// none exists, Find returns (nil, false, nil): the caller is clear to
// acquire whatever external lock the new access requires before calling
// [Table.Allocate].
//
// Find alone never allocates a slot, matching the original's ordering: an
// in-process re-open short-circuits before any lock file is even
// consulted, and a genuinely new open only claims a table slot after its
// lock file has been created.
func (t *Table) Find(name string, access Access, mode Mode) (h *Handle, found bool, err error) {
	for i := range t.slots {
		s := &t.slots[i]
		if !s.live || s.name != name {
			continue
		}

		if s.access == access && s.mode == mode {
			return &Handle{table: t, slot: i}, true, nil
		}

		return nil, true, fmt.Errorf("handles: %s: %w", name, ErrMismatch)
	}

	return nil, false, nil
}

// Allocate claims a free slot for name, access, and mode. Call this only
// after [Table.Find] reported no existing handle and the caller has
// successfully acquired whatever lock the access requires.
func (t *Table) Allocate(name string, access Access, mode Mode) (*Handle, error) {
	for i := range t.slots {
		s := &t.slots[i]
		if s.live {
			continue
		}

		*s = entry{name: name, access: access, mode: mode, live: true}

		return &Handle{table: t, slot: i}, nil
	}

	return nil, fmt.Errorf("handles: opening %s: %w", name, ErrFull)
}

// Close zeros the handle's slot. Closing an already-invalid handle is a
// no-op, matching the tolerance the operation layer grants a queue already
// effectively closed by this process.
func (t *Table) Close(h *Handle) error {
	if err := t.validate(h); err != nil {
		return nil
	}

	t.slots[h.slot] = entry{}

	return nil
}

// Lookup returns the name, access, and mode recorded for h, or
// [ErrInvalid] if h does not name a live slot in this table.
func (t *Table) Lookup(h *Handle) (name string, access Access, mode Mode, err error) {
	if err := t.validate(h); err != nil {
		return "", 0, 0, err
	}

	s := t.slots[h.slot]

	return s.name, s.access, s.mode, nil
}

// HasOpen reports whether any live handle in this table names queue name,
// regardless of access or mode. Destroy uses this to reject removing a
// queue this process still has open.
func (t *Table) HasOpen(name string) bool {
	for _, s := range t.slots {
		if s.live && s.name == name {
			return true
		}
	}

	return false
}

func (t *Table) validate(h *Handle) error {
	if h == nil || h.table != t {
		return ErrInvalid
	}

	if h.slot < 0 || h.slot >= len(t.slots) || !t.slots[h.slot].live {
		return ErrInvalid
	}

	return nil
}
