package dataqueue

import "github.com/swiftlabs/dataqueue/internal/queuefile"

// Seek repositions the random-read cursor of the queue identified by h.
// h must have been opened with non-write-only access ([ReadOnly] or
// [ReadWrite]), and the queue must have been created with
// [FlagRandomAccess].
func (e *Engine) Seek(h *Handle, typ SeekType, position int) error {
	const op = "Seek"

	e.mu.Lock()
	defer e.mu.Unlock()

	dir, access, err := e.resolve(op, h)
	if err != nil {
		return err
	}

	if access == WriteOnly {
		return newErr(op, ErrCodeQueueWriteOnly)
	}

	present, err := e.stat(op, dir)
	if err != nil {
		return err
	}

	if !present {
		return newErr(op, ErrCodeQueueMissing)
	}

	header, err := e.store.ReadHeader(dir)
	if err != nil {
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	if header.Flags&queuefile.FlagRandomAccess == 0 {
		return newErr(op, ErrCodeQueueNotSeekable)
	}

	if header.NumOfEntries == 0 {
		return newErr(op, ErrCodeQueueIsEmpty)
	}

	state := ringState(header)

	switch typ {
	case SeekHead:
		state.SeekHead()
	case SeekTail:
		state.SeekTail()
	case SeekPosition:
		if position < 0 || position >= 256 {
			return newErr(op, ErrCodeInvalidSeek)
		}

		if err := state.SeekPosition(uint8(position)); err != nil {
			return newErr(op, ErrCodeInvalidSeek)
		}
	default:
		return newErr(op, ErrCodeInvalidArg)
	}

	applyRingState(&header, state)

	if err := e.store.WriteHeader(dir, header); err != nil {
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	return nil
}
