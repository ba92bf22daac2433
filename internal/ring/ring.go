// Package ring implements the head/tail/seek index arithmetic of a
// fixed-capacity ring: pure integer bookkeeping, with no I/O of its own.
// internal/queuefile reads a header into a [State], the operation layer
// calls the method for whatever operation is running, and the result is
// written back.
package ring

import "fmt"

// State is the mutable ring position of one queue's header fields: Head,
// Tail, Seek, and Count (num_of_entries), all taken mod N (max_entries).
type State struct {
	N     uint8 // max_entries, 1..255
	Head  uint8
	Tail  uint8
	Seek  uint8
	Count uint8
}

func (s *State) advance(i uint8) uint8 {
	i++
	if i >= s.N {
		return 0
	}

	return i
}

// Enqueue applies the ring's enqueue rules and returns the ring slot the new
// entry must be written to. If the ring was full, evicted reports the slot
// whose payload was displaced and must be deleted by the caller.
func (s *State) Enqueue() (slot uint8, evictedSlot uint8, evicted bool) {
	switch {
	case s.Count == 0:
		slot = s.Tail
		s.Count = 1

		return slot, 0, false

	case s.Count == s.N:
		if s.Seek == s.Head {
			s.Seek = s.advance(s.Head)
		}

		evictedSlot = s.Head
		s.Head = s.advance(s.Head)
		s.Tail = s.advance(s.Tail)
		slot = s.Tail

		return slot, evictedSlot, true

	default:
		s.Tail = s.advance(s.Tail)
		s.Count++
		slot = s.Tail

		return slot, 0, false
	}
}

// Dequeue applies the ring's dequeue rules and returns the ring slot whose
// payload the caller must read and delete. ok is false if the ring is
// empty.
func (s *State) Dequeue() (slot uint8, ok bool) {
	if s.Count == 0 {
		return 0, false
	}

	if s.Seek == s.Head {
		s.Seek = s.advance(s.Head)
	}

	slot = s.Head
	s.Head = s.advance(s.Head)
	s.Count--

	return slot, true
}

// SeekHead sets Seek to the current Head.
func (s *State) SeekHead() {
	s.Seek = s.Head
}

// SeekTail sets Seek to the current Tail.
func (s *State) SeekTail() {
	s.Seek = s.Tail
}

// SeekPosition sets Seek to the p-th oldest live entry (0 ≤ p < Count).
func (s *State) SeekPosition(p uint8) error {
	if uint16(p) >= uint16(s.Count) {
		return fmt.Errorf("ring: position %d out of range [0,%d)", p, s.Count)
	}

	s.Seek = uint8((uint16(s.Head) + uint16(p)) % uint16(s.N))

	return nil
}

// GetEntry returns the ring slot at the current Seek position and advances
// Seek. Seek does not wrap from Tail back to Head.
func (s *State) GetEntry() (slot uint8, ok bool) {
	if s.Count == 0 {
		return 0, false
	}

	slot = s.Seek

	if s.Seek != s.Tail {
		s.Seek = s.advance(s.Seek)
	}

	return slot, true
}
