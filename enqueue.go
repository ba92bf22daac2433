package dataqueue

import (
	"github.com/swiftlabs/dataqueue/internal/queuefile"
	"github.com/swiftlabs/dataqueue/internal/ring"
	"github.com/swiftlabs/dataqueue/pkg/psl"
)

// Enqueue appends data to the tail of the queue identified by h. h must
// have been opened with write access ([WriteOnly] or [ReadWrite]).
//
// If the queue is full, the oldest entry is overwritten: its payload file
// is deleted and its slot reused, without signalling an error.
func (e *Engine) Enqueue(h *Handle, data []byte) error {
	const op = "Enqueue"

	if len(data) == 0 {
		return newErr(op, ErrCodeInvalidArg)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	dir, access, err := e.resolve(op, h)
	if err != nil {
		return err
	}

	if access == ReadOnly {
		return newErr(op, ErrCodeQueueReadOnly)
	}

	present, err := e.stat(op, dir)
	if err != nil {
		return err
	}

	if !present {
		return newErr(op, ErrCodeQueueMissing)
	}

	if err := e.requireWriterLock(op, dir); err != nil {
		return err
	}

	header, err := e.store.ReadHeader(dir)
	if err != nil {
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	if uint64(len(data)) > header.MaxEntrySize {
		return newErr(op, ErrCodeInvalidArg)
	}

	lut, err := e.store.ReadLUT(dir, e.tagWidth)
	if err != nil {
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	state := ringState(header)

	slot, evictedSlot, evicted := state.Enqueue()

	header.ReferenceCount++
	tag := ring.MintTag(header.ReferenceCount, e.tagWidth)

	if evicted {
		evictedTag := string(lut.Slots[evictedSlot])
		if !ring.IsEmptySlot(lut.Slots[evictedSlot]) {
			if err := e.store.DeletePayload(dir, evictedTag); err != nil {
				return wrapErr(op, ErrCodeFSAccessFail, err)
			}
		}
	}

	if err := e.store.WritePayload(dir, tag, data); err != nil {
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	psl.Memcpy(lut.Slots[slot], []byte(tag))

	applyRingState(&header, state)

	if err := e.store.WriteLUT(dir, lut); err != nil {
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	if err := e.store.WriteHeader(dir, header); err != nil {
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	return nil
}

func ringState(h queuefile.Header) *ring.State {
	return &ring.State{
		N:     h.MaxEntries,
		Head:  h.HeadLutOffs,
		Tail:  h.TailLutOffs,
		Seek:  h.SeekLutOffs,
		Count: h.NumOfEntries,
	}
}

func applyRingState(h *queuefile.Header, s *ring.State) {
	h.HeadLutOffs = s.Head
	h.TailLutOffs = s.Tail
	h.SeekLutOffs = s.Seek
	h.NumOfEntries = s.Count
}
