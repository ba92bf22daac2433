package dataqueue

// resolve validates h against this engine's handle table and returns the
// queue directory and access it was opened with.
func (e *Engine) resolve(op string, h *Handle) (dir string, access Access, err error) {
	if h == nil {
		return "", 0, newErr(op, ErrCodeInvalidHandle)
	}

	_, acc, _, lookupErr := e.handles.Lookup(h.tok)
	if lookupErr != nil {
		return "", 0, newErr(op, ErrCodeInvalidHandle)
	}

	return e.dir(h.name), Access(acc), nil
}

func (e *Engine) stat(op, dir string) (present bool, err error) {
	present, statErr := e.fs.Exists(dir)
	if statErr != nil {
		return false, wrapErr(op, ErrCodeFSAccessFail, statErr)
	}

	return present, nil
}

// requireWriterLock fails with ErrQueueClosed unless dir currently carries
// a write-capable lock (.wolock or .rwlock).
func (e *Engine) requireWriterLock(op, dir string) error {
	status, err := e.locks.Stat(dir)
	if err != nil {
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	if !status.WriteOnly && !status.ReadWrite {
		return newErr(op, ErrCodeQueueClosed)
	}

	return nil
}

// requireAnyLock fails with ErrQueueClosed unless dir carries any lock at
// all, the precondition GetLength documents ("any open").
func (e *Engine) requireAnyLock(op, dir string) error {
	status, err := e.locks.Stat(dir)
	if err != nil {
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	if !status.Busy() {
		return newErr(op, ErrCodeQueueClosed)
	}

	return nil
}
