package dataqueue

// GetLength reports the number of entries currently stored in the queue
// identified by h. h may have any access; the only lock requirement is
// that some lock file (.rolock, .wolock or .rwlock) be present on the
// queue.
func (e *Engine) GetLength(h *Handle) (uint8, error) {
	const op = "GetLength"

	e.mu.Lock()
	defer e.mu.Unlock()

	dir, _, err := e.resolve(op, h)
	if err != nil {
		return 0, err
	}

	present, err := e.stat(op, dir)
	if err != nil {
		return 0, err
	}

	if !present {
		return 0, newErr(op, ErrCodeQueueMissing)
	}

	if err := e.requireAnyLock(op, dir); err != nil {
		return 0, err
	}

	header, err := e.store.ReadHeader(dir)
	if err != nil {
		return 0, wrapErr(op, ErrCodeFSAccessFail, err)
	}

	return header.NumOfEntries, nil
}
