package main

import (
	"errors"

	"github.com/swiftlabs/dataqueue"
)

var (
	errConfigFileNotFound = errors.New("config file not found")
	errConfigFileRead     = errors.New("cannot read config file")
	errConfigInvalid      = errors.New("invalid config file")
	errQueueRootEmpty     = errors.New("queue_root cannot be empty")
	errMissingQueueName   = errors.New("missing queue name")
	errInvalidAccessFlag  = errors.New("access must be one of ro, wo, rw")
)

// exitCodeFor maps an error to a process exit code, favoring a stable
// mapping of dataqueue.StatusCode over the generic 1 every other error
// gets. dataqueue.CodeOf is not used here: it falls back to
// ErrCodeFSAccessFail for errors it doesn't recognize, which would make
// every plain CLI error (missing argument, bad config) look like a
// filesystem failure.
func exitCodeFor(err error) int {
	var dqErr *dataqueue.Error
	if errors.As(err, &dqErr) {
		return 10 + int(dqErr.Code)
	}

	return 1
}
