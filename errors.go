package dataqueue

import (
	"errors"
	"fmt"
)

// StatusCode classifies the outcome of an operation, mirroring the
// original's CODE_STATUS_OK/CODE_ERROR_* taxonomy.
type StatusCode int

const (
	StatusOK StatusCode = iota
	ErrCodeInvalidArg
	ErrCodeInvalidHandle
	ErrCodeInvalidSeek
	ErrCodeQueueExists
	ErrCodeQueueMissing
	ErrCodeQueueOpened
	ErrCodeQueueClosed
	ErrCodeQueueIsEmpty
	ErrCodeQueueIsBusy
	ErrCodeQueueReadOnly
	ErrCodeQueueWriteOnly
	ErrCodeQueueNotSeekable
	ErrCodeFSAccessFail
	ErrCodeHandleNotAvail
)

func (c StatusCode) String() string {
	switch c {
	case StatusOK:
		return "OK"
	case ErrCodeInvalidArg:
		return "INVALID_ARG"
	case ErrCodeInvalidHandle:
		return "INVALID_HANDLE"
	case ErrCodeInvalidSeek:
		return "INVALID_SEEK"
	case ErrCodeQueueExists:
		return "QUEUE_EXISTS"
	case ErrCodeQueueMissing:
		return "QUEUE_MISSING"
	case ErrCodeQueueOpened:
		return "QUEUE_OPENED"
	case ErrCodeQueueClosed:
		return "QUEUE_CLOSED"
	case ErrCodeQueueIsEmpty:
		return "QUEUE_IS_EMPTY"
	case ErrCodeQueueIsBusy:
		return "QUEUE_IS_BUSY"
	case ErrCodeQueueReadOnly:
		return "QUEUE_READ_ONLY"
	case ErrCodeQueueWriteOnly:
		return "QUEUE_WRITE_ONLY"
	case ErrCodeQueueNotSeekable:
		return "QUEUE_NOT_SEEKABLE"
	case ErrCodeFSAccessFail:
		return "FS_ACCESS_FAIL"
	case ErrCodeHandleNotAvail:
		return "HANDLE_NOT_AVAIL"
	default:
		return fmt.Sprintf("StatusCode(%d)", int(c))
	}
}

// Error wraps a StatusCode with a descriptive message and, for
// ErrCodeFSAccessFail, the underlying filesystem error.
type Error struct {
	Code StatusCode
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dataqueue: %s: %s: %v", e.Op, e.Code, e.Err)
	}

	return fmt.Sprintf("dataqueue: %s: %s", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newErr(op string, code StatusCode) *Error {
	return &Error{Op: op, Code: code}
}

func wrapErr(op string, code StatusCode, err error) *Error {
	return &Error{Op: op, Code: code, Err: err}
}

// Sentinels usable with errors.Is, one per StatusCode. Every *Error
// produced by this package carries the matching StatusCode, so
// errors.Is(err, ErrQueueIsBusy) works without inspecting the code field
// directly.
var (
	ErrInvalidArg       = sentinel(ErrCodeInvalidArg)
	ErrInvalidHandle    = sentinel(ErrCodeInvalidHandle)
	ErrInvalidSeek      = sentinel(ErrCodeInvalidSeek)
	ErrQueueExists      = sentinel(ErrCodeQueueExists)
	ErrQueueMissing     = sentinel(ErrCodeQueueMissing)
	ErrQueueOpened      = sentinel(ErrCodeQueueOpened)
	ErrQueueClosed      = sentinel(ErrCodeQueueClosed)
	ErrQueueIsEmpty     = sentinel(ErrCodeQueueIsEmpty)
	ErrQueueIsBusy      = sentinel(ErrCodeQueueIsBusy)
	ErrQueueReadOnly    = sentinel(ErrCodeQueueReadOnly)
	ErrQueueWriteOnly   = sentinel(ErrCodeQueueWriteOnly)
	ErrQueueNotSeekable = sentinel(ErrCodeQueueNotSeekable)
	ErrFSAccessFail     = sentinel(ErrCodeFSAccessFail)
	ErrHandleNotAvail   = sentinel(ErrCodeHandleNotAvail)
)

func sentinel(code StatusCode) error {
	return &Error{Op: "sentinel", Code: code}
}

// Is implements errors.Is matching by StatusCode alone, so a sentinel
// declared above matches any *Error with the same Code regardless of Op
// or wrapped Err.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Code == other.Code
}

// CodeOf recovers the StatusCode carried by err, or StatusOK if err is nil
// and ErrCodeFSAccessFail-equivalent unknown-error otherwise. Use this at
// a process boundary (CLI exit codes, RPC status) that wants the literal
// enum instead of comparing with errors.Is.
func CodeOf(err error) StatusCode {
	if err == nil {
		return StatusOK
	}

	var dqErr *Error
	if errors.As(err, &dqErr) {
		return dqErr.Code
	}

	return ErrCodeFSAccessFail
}
