package dataqueue

// GetEntry returns the payload at the queue's current seek position without
// removing it, then advances the seek position. h must have been opened
// with non-write-only access ([ReadOnly] or [ReadWrite]).
//
// The seek position never advances past the tail: repeated calls once it
// reaches the newest entry keep returning that same entry.
func (e *Engine) GetEntry(h *Handle) ([]byte, error) {
	const op = "GetEntry"

	e.mu.Lock()
	defer e.mu.Unlock()

	dir, access, err := e.resolve(op, h)
	if err != nil {
		return nil, err
	}

	if access == WriteOnly {
		return nil, newErr(op, ErrCodeQueueWriteOnly)
	}

	present, err := e.stat(op, dir)
	if err != nil {
		return nil, err
	}

	if !present {
		return nil, newErr(op, ErrCodeQueueMissing)
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

	slot, ok := state.GetEntry()
	if !ok {
		return nil, newErr(op, ErrCodeQueueIsEmpty)
	}

	tag := string(lut.Slots[slot])

	buf := make([]byte, header.MaxEntrySize)

	n, err := e.store.ReadPayload(dir, tag, buf)
	if err != nil {
		return nil, wrapErr(op, ErrCodeFSAccessFail, err)
	}

	applyRingState(&header, state)

	if err := e.store.WriteHeader(dir, header); err != nil {
		return nil, wrapErr(op, ErrCodeFSAccessFail, err)
	}

	return buf[:n], nil
}
