package dataqueue

import "github.com/swiftlabs/dataqueue/pkg/psl"

// Dequeue removes and returns the payload at the head of the queue
// identified by h. h must have been opened with write access ([WriteOnly]
// or [ReadWrite]).
func (e *Engine) Dequeue(h *Handle) ([]byte, error) {
	const op = "Dequeue"

	e.mu.Lock()
	defer e.mu.Unlock()

	dir, access, err := e.resolve(op, h)
	if err != nil {
		return nil, err
	}

	if access == ReadOnly {
		return nil, newErr(op, ErrCodeQueueReadOnly)
	}

	present, err := e.stat(op, dir)
	if err != nil {
		return nil, err
	}

	if !present {
		return nil, newErr(op, ErrCodeQueueMissing)
	}

	if err := e.requireWriterLock(op, dir); err != nil {
		return nil, err
	}

	header, err := e.store.ReadHeader(dir)
	if err != nil {
		return nil, wrapErr(op, ErrCodeFSAccessFail, err)
	}

	if header.NumOfEntries == 0 {
		return nil, newErr(op, ErrCodeQueueIsEmpty)
	}

	lut, err := e.store.ReadLUT(dir, e.tagWidth)
	if err != nil {
		return nil, wrapErr(op, ErrCodeFSAccessFail, err)
	}

	state := ringState(header)

	slot, ok := state.Dequeue()
	if !ok {
		return nil, newErr(op, ErrCodeQueueIsEmpty)
	}

	tag := string(lut.Slots[slot])

	buf := make([]byte, header.MaxEntrySize)

	n, err := e.store.ReadPayload(dir, tag, buf)
	if err != nil {
		return nil, wrapErr(op, ErrCodeFSAccessFail, err)
	}

	if err := e.store.DeletePayload(dir, tag); err != nil {
		return nil, wrapErr(op, ErrCodeFSAccessFail, err)
	}

	psl.Memset(lut.Slots[slot], 0)

	applyRingState(&header, state)

	if err := e.store.WriteLUT(dir, lut); err != nil {
		return nil, wrapErr(op, ErrCodeFSAccessFail, err)
	}

	if err := e.store.WriteHeader(dir, header); err != nil {
		return nil, wrapErr(op, ErrCodeFSAccessFail, err)
	}

	return buf[:n], nil
}
