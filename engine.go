// Package dataqueue implements a persistent, file-backed FIFO data-queue:
// a named, bounded, ring-buffered sequence of opaque byte payloads stored
// entirely as files on disk, so queue state survives process restarts.
//
// Every public operation on an [Engine] is synchronous and non-blocking
// from the caller's perspective: it runs to completion on the calling
// goroutine and returns a status, never suspending or retrying internally.
// An Engine is safe for concurrent use by multiple goroutines in the same
// process; across processes, coordination is advisory, via lock files in
// each queue's directory (see internal/lockproto).
package dataqueue

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/swiftlabs/dataqueue/internal/handles"
	"github.com/swiftlabs/dataqueue/internal/lockproto"
	"github.com/swiftlabs/dataqueue/internal/queuefile"
	"github.com/swiftlabs/dataqueue/pkg/fsal"
)

const maxNameLen = 31

// Engine owns one process's view of a directory of named queues: its
// handle table, lock protocol manager, and on-disk store. Construction is
// the initialization step; there is no global mutable engine singleton,
// so multiple Engines in one process (e.g. in tests) are independent.
type Engine struct {
	fs       fsal.FS
	store    *queuefile.Store
	locks    *lockproto.Manager
	root     string
	tagWidth int

	mu      sync.Mutex
	handles *handles.Table
}

// NewEngine constructs an Engine rooted at opts.QueueRoot, backed by fs.
// fs is typically [fsal.NewReal] in production and [fsal.NewChaos] or a
// fake in tests.
func NewEngine(fs fsal.FS, opts EngineOptions) *Engine {
	if fs == nil {
		panic("dataqueue: fs must not be nil")
	}

	if opts.QueueRoot == "" {
		panic("dataqueue: QueueRoot must not be empty")
	}

	opts = opts.withDefaults()

	return &Engine{
		fs:       fs,
		store:    queuefile.NewStore(fs),
		locks:    lockproto.NewManager(fs),
		root:     opts.QueueRoot,
		tagWidth: opts.TagWidth,
		handles:  handles.NewTable(opts.HandleTableSize),
	}
}

func validateName(name string) error {
	if name == "" || len(name) > maxNameLen {
		return fmt.Errorf("dataqueue: name must be 1..%d bytes", maxNameLen)
	}

	if filepath.Base(name) != name {
		return fmt.Errorf("dataqueue: name must not contain path separators")
	}

	return nil
}

func (e *Engine) dir(name string) string {
	return filepath.Join(e.root, name)
}

func (e *Engine) exists(name string) (bool, error) {
	return e.fs.Exists(e.dir(name))
}

// Create makes a new queue named name with the given bounds and flags. It
// fails with [ErrQueueExists] if the name is already taken.
func (e *Engine) Create(name string, opts CreateOptions) error {
	const op = "Create"

	if err := validateName(name); err != nil {
		return wrapErr(op, ErrCodeInvalidArg, err)
	}

	if opts.MaxEntries == 0 || opts.MaxEntrySize == 0 {
		return newErr(op, ErrCodeInvalidArg)
	}

	dir := e.dir(name)

	already, err := e.fs.Exists(dir)
	if err != nil {
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	if already {
		return newErr(op, ErrCodeQueueExists)
	}

	if err := e.fs.MkdirAll(dir, 0o755); err != nil {
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	header := queuefile.Header{
		MaxEntrySize: opts.MaxEntrySize,
		MaxEntries:   opts.MaxEntries,
		Flags:        uint16(opts.Flags),
	}

	if err := e.store.WriteHeader(dir, header); err != nil {
		_ = e.fs.RemoveAll(dir)
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	lut := queuefile.NewLUT(e.tagWidth)
	if err := e.store.WriteLUT(dir, lut); err != nil {
		_ = e.fs.RemoveAll(dir)
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	return nil
}

// Destroy removes the queue named name and everything in its directory.
// Destroying an absent queue succeeds silently. Destroy fails with
// [ErrQueueIsBusy] if any lock file is present or any handle in this
// process still names it.
func (e *Engine) Destroy(name string) error {
	const op = "Destroy"

	if err := validateName(name); err != nil {
		return wrapErr(op, ErrCodeInvalidArg, err)
	}

	already, err := e.exists(name)
	if err != nil {
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	if !already {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.handles.HasOpen(name) {
		return newErr(op, ErrCodeQueueIsBusy)
	}

	status, err := e.locks.Stat(e.dir(name))
	if err != nil {
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	if status.Busy() {
		return newErr(op, ErrCodeQueueIsBusy)
	}

	if err := e.fs.RemoveAll(e.dir(name)); err != nil {
		return wrapErr(op, ErrCodeFSAccessFail, err)
	}

	return nil
}

// List enumerates the queues under the engine's root, skipping anything
// that is not a directory containing a valid .header.
func (e *Engine) List() ([]QueueInfo, error) {
	const op = "List"

	entries, err := e.fs.ReadDir(e.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, wrapErr(op, ErrCodeFSAccessFail, err)
	}

	var infos []QueueInfo

	for _, ent := range entries {
		if !ent.IsDir() {
			continue
		}

		h, err := e.store.ReadHeader(e.dir(ent.Name()))
		if err != nil {
			continue
		}

		infos = append(infos, QueueInfo{
			Name:         ent.Name(),
			MaxEntries:   h.MaxEntries,
			NumOfEntries: h.NumOfEntries,
			Flags:        Flags(h.Flags),
		})
	}

	return infos, nil
}
