// Package lockproto implements the advisory, cooperative, local lock-file
// protocol: the .rolock/.wolock/.rwlock triad that distinguishes shared
// read access from exclusive write access to a queue directory.
package lockproto

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/swiftlabs/dataqueue/pkg/fsal"
)

// Kind identifies which access a lock was acquired for.
type Kind int

const (
	KindRO Kind = iota // .rolock: one or more readers
	KindWO             // .wolock: a single writer
	KindRW             // .rwlock: a single reader+writer
)

const (
	roLockName = ".rolock"
	woLockName = ".wolock"
	rwLockName = ".rwlock"
)

func fileName(k Kind) string {
	switch k {
	case KindRO:
		return roLockName
	case KindWO:
		return woLockName
	case KindRW:
		return rwLockName
	default:
		panic("lockproto: invalid Kind")
	}
}

// ErrBusy reports that a queue directory carries a lock incompatible with
// the requested access.
var ErrBusy = errors.New("lockproto: queue is busy")

// Manager acquires and releases queue directory locks over an [fsal.FS].
type Manager struct {
	fs fsal.FS
}

// NewManager returns a Manager that operates on fs.
func NewManager(fs fsal.FS) *Manager {
	return &Manager{fs: fs}
}

// Acquire takes a lock of the given kind on the queue directory dir,
// returning [ErrBusy] if an incompatible lock is already present.
//
// The whole check-then-create sequence runs under dir's flock mutex, so
// concurrent cooperating processes on the same host never both succeed.
func (m *Manager) Acquire(dir string, k Kind) error {
	mu, err := acquireMutex(m.fs, dir)
	if err != nil {
		return err
	}
	defer mu.release()

	present, err := m.present(dir)
	if err != nil {
		return err
	}

	switch k {
	case KindRO:
		if present.wo || present.rw {
			return ErrBusy
		}

		return m.incrementReaders(dir)

	case KindWO, KindRW:
		if present.ro || present.wo || present.rw {
			return ErrBusy
		}

		return m.createMarker(dir, k)

	default:
		panic("lockproto: invalid Kind")
	}
}

// Release drops a lock of the given kind on dir. For [KindRO] this
// decrements the reader count and removes .rolock only once it reaches
// zero; for [KindWO]/[KindRW] it removes the marker file outright.
//
// Release is a no-op (returns nil) if the corresponding lock file is
// already absent, matching Close's documented tolerance for a queue
// already effectively closed by this process.
func (m *Manager) Release(dir string, k Kind) error {
	mu, err := acquireMutex(m.fs, dir)
	if err != nil {
		return err
	}
	defer mu.release()

	if k == KindRO {
		return m.decrementReaders(dir)
	}

	path := filepath.Join(dir, fileName(k))

	err = m.fs.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("lockproto: removing %s: %w", fileName(k), err)
	}

	return nil
}

// Status reports which locks are currently present on dir.
type Status struct {
	ReadOnly  bool // .rolock present
	WriteOnly bool // .wolock present
	ReadWrite bool // .rwlock present
	Readers   int  // .rolock reader count, if ReadOnly
}

// Busy reports true if any lock file is present on dir.
func (s Status) Busy() bool {
	return s.ReadOnly || s.WriteOnly || s.ReadWrite
}

// Stat reports the current lock state of dir without taking a read or
// write lock; it holds dir's flock mutex only while it reads.
func (m *Manager) Stat(dir string) (Status, error) {
	mu, err := acquireMutex(m.fs, dir)
	if err != nil {
		return Status{}, err
	}
	defer mu.release()

	present, err := m.present(dir)
	if err != nil {
		return Status{}, err
	}

	st := Status{ReadOnly: present.ro, WriteOnly: present.wo, ReadWrite: present.rw}

	if present.ro {
		count, err := m.readerCount(dir)
		if err != nil {
			return Status{}, err
		}

		st.Readers = count
	}

	return st, nil
}

type presence struct {
	ro, wo, rw bool
}

func (m *Manager) present(dir string) (presence, error) {
	ro, err := m.fs.Exists(filepath.Join(dir, roLockName))
	if err != nil {
		return presence{}, fmt.Errorf("lockproto: stat %s: %w", roLockName, err)
	}

	wo, err := m.fs.Exists(filepath.Join(dir, woLockName))
	if err != nil {
		return presence{}, fmt.Errorf("lockproto: stat %s: %w", woLockName, err)
	}

	rw, err := m.fs.Exists(filepath.Join(dir, rwLockName))
	if err != nil {
		return presence{}, fmt.Errorf("lockproto: stat %s: %w", rwLockName, err)
	}

	return presence{ro: ro, wo: wo, rw: rw}, nil
}

func (m *Manager) createMarker(dir string, k Kind) error {
	path := filepath.Join(dir, fileName(k))

	f, err := m.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("lockproto: creating %s: %w", fileName(k), err)
	}

	return f.Close()
}

func (m *Manager) readerCount(dir string) (int, error) {
	path := filepath.Join(dir, roLockName)

	data, err := m.fs.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("lockproto: reading %s: %w", roLockName, err)
	}

	if len(data) != 1 {
		return 0, fmt.Errorf("lockproto: %s has %d bytes, want 1", roLockName, len(data))
	}

	return int(data[0]), nil
}

func (m *Manager) incrementReaders(dir string) error {
	path := filepath.Join(dir, roLockName)

	exists, err := m.fs.Exists(path)
	if err != nil {
		return fmt.Errorf("lockproto: stat %s: %w", roLockName, err)
	}

	if !exists {
		return m.fs.WriteFile(path, []byte{1}, 0o644)
	}

	count, err := m.readerCount(dir)
	if err != nil {
		return err
	}

	if count >= 255 {
		return fmt.Errorf("lockproto: %s reader count saturated at 255", roLockName)
	}

	return m.fs.WriteFile(path, []byte{byte(count + 1)}, 0o644)
}

func (m *Manager) decrementReaders(dir string) error {
	path := filepath.Join(dir, roLockName)

	exists, err := m.fs.Exists(path)
	if err != nil {
		return fmt.Errorf("lockproto: stat %s: %w", roLockName, err)
	}

	if !exists {
		return nil
	}

	count, err := m.readerCount(dir)
	if err != nil {
		return err
	}

	if count <= 1 {
		if err := m.fs.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("lockproto: removing %s: %w", roLockName, err)
		}

		return nil
	}

	return m.fs.WriteFile(path, []byte{byte(count - 1)}, 0o644)
}
