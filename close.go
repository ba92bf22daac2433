package dataqueue

// Close releases h: it updates or removes the corresponding lock file
// (decrementing the reader count for a read-only handle, deleting the
// marker outright otherwise) and frees the handle slot.
//
// Close succeeds even if h is no longer valid (already closed by this
// process), provided the queue's directory still exists.
func (e *Engine) Close(h *Handle) error {
	const op = "Close"

	if h == nil {
		return newErr(op, ErrCodeInvalidArg)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	already, err := e.exists(h.name)
	if err != nil {
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	if !already {
		return newErr(op, ErrCodeQueueMissing)
	}

	_, access, _, err := e.handles.Lookup(h.tok)
	if err != nil {
		// Already closed by this process: nothing more to do.
		return nil
	}

	kind := lockKindFor(Access(access))

	if err := e.locks.Release(e.dir(h.name), kind); err != nil {
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	_ = e.handles.Close(h.tok)

	return nil
}
