package dataqueue

import (
	"errors"

	"github.com/swiftlabs/dataqueue/internal/handles"
	"github.com/swiftlabs/dataqueue/internal/lockproto"
)

// Open opens the queue named name for the given access and mode, returning
// a [Handle] for use with every other per-queue operation.
//
// If this process already has name open with identical access and mode,
// Open returns the existing handle without touching any lock file
// (re-open). If open with different access or mode, it fails with
// [ErrQueueOpened] before any lock file is even consulted. Otherwise, if a
// lock incompatible with the requested access is present, Open fails with
// [ErrQueueIsBusy]; if this process's handle table is full once the lock
// has been acquired, Open fails with [ErrHandleNotAvail] and the
// just-acquired lock is released.
func (e *Engine) Open(name string, access Access, mode Mode) (*Handle, error) {
	const op = "Open"

	if err := validateName(name); err != nil {
		return nil, wrapErr(op, ErrCodeInvalidArg, err)
	}

	if !access.valid() || !mode.valid() {
		return nil, newErr(op, ErrCodeInvalidArg)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	already, err := e.exists(name)
	if err != nil {
		return nil, wrapErr(op, ErrCodeFSAccessFail, err)
	}

	if !already {
		return nil, newErr(op, ErrCodeQueueMissing)
	}

	tok, found, err := e.handles.Find(name, handles.Access(access), handles.Mode(mode))
	if found {
		if err != nil {
			return nil, newErr(op, ErrCodeQueueOpened)
		}

		return &Handle{name: name, tok: tok}, nil
	}

	kind := lockKindFor(access)

	if err := e.locks.Acquire(e.dir(name), kind); err != nil {
		if errors.Is(err, lockproto.ErrBusy) {
			return nil, newErr(op, ErrCodeQueueIsBusy)
		}

		return nil, wrapErr(op, ErrCodeFSAccessFail, err)
	}

	tok, err = e.handles.Allocate(name, handles.Access(access), handles.Mode(mode))
	if err != nil {
		_ = e.locks.Release(e.dir(name), kind)
		return nil, newErr(op, ErrCodeHandleNotAvail)
	}

	return &Handle{name: name, tok: tok}, nil
}

func lockKindFor(access Access) lockproto.Kind {
	switch access {
	case ReadOnly:
		return lockproto.KindRO
	case WriteOnly:
		return lockproto.KindWO
	default:
		return lockproto.KindRW
	}
}
