package lockproto

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/swiftlabs/dataqueue/pkg/fsal"
)

// mutexFile is the per-queue-directory flock gate guarding the
// check-then-create sequence over .rolock/.wolock/.rwlock.
//
// The marker-file protocol is not atomic by itself (read a byte count,
// increment, write it back is a classic TOCTOU window). Rather than leave
// that race in place, every acquire/release in this package runs with this
// mutex held, which closes the window for any two processes cooperating on
// the same host.
const mutexFile = ".lockmeta.lock"

// held represents an acquired flock mutex. Call release to drop it.
type held struct {
	file fsal.File
}

func (h *held) release() error {
	fd := int(h.file.Fd())

	unlockErr := flockRetryEINTR(fd, unix.LOCK_UN)
	closeErr := h.file.Close()

	return errors.Join(unlockErr, closeErr)
}

// acquireMutex blocks until it holds the exclusive flock on dir's mutex
// file, creating the file (and dir, if missing) as needed.
func acquireMutex(fs fsal.FS, dir string) (*held, error) {
	path := filepath.Join(dir, mutexFile)

	f, err := openMutexFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("lockproto: opening mutex file: %w", err)
	}

	if err := flockRetryEINTR(int(f.Fd()), unix.LOCK_EX); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("lockproto: acquiring mutex: %w", err)
	}

	return &held{file: f}, nil
}

func openMutexFile(fs fsal.FS, path string) (fsal.File, error) {
	f, err := fs.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return f, err
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	return fs.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
}

// flockRetryEINTR wraps unix.Flock, retrying on EINTR the way the standard
// library's own ignoringEINTR helper does for other blocking syscalls.
func flockRetryEINTR(fd int, how int) error {
	const maxEINTRRetries = 10000

	var err error
	for range maxEINTRRetries {
		err = unix.Flock(fd, how)
		if err == nil || !errors.Is(err, syscall.EINTR) {
			return err
		}
	}

	return err
}
