package fsal

import (
	"fmt"
	"math/rand/v2"
	"os"
)

// Chaos wraps an [FS] and deterministically fails a configured fraction of
// calls, for exercising the engine's ErrFSAccessFail path without needing
// an unreliable real filesystem.
type Chaos struct {
	fs       FS
	rng      *rand.Rand
	failRate float64 // [0,1]
}

// NewChaos wraps fs, failing roughly failRate of calls. seed makes failure
// sequences reproducible across test runs.
func NewChaos(fs FS, failRate float64, seed uint64) *Chaos {
	return &Chaos{
		fs:       fs,
		rng:      rand.New(rand.NewPCG(seed, seed)),
		failRate: failRate,
	}
}

// ErrChaos is the error Chaos returns for an injected failure.
var ErrChaos = fmt.Errorf("fsal: injected failure")

func (c *Chaos) trip() bool {
	return c.rng.Float64() < c.failRate
}

func (c *Chaos) Open(path string) (File, error) {
	if c.trip() {
		return nil, ErrChaos
	}

	return c.fs.Open(path)
}

func (c *Chaos) Create(path string) (File, error) {
	if c.trip() {
		return nil, ErrChaos
	}

	return c.fs.Create(path)
}

func (c *Chaos) OpenFile(path string, flag int, perm os.FileMode) (File, error) {
	if c.trip() {
		return nil, ErrChaos
	}

	return c.fs.OpenFile(path, flag, perm)
}

func (c *Chaos) ReadFile(path string) ([]byte, error) {
	if c.trip() {
		return nil, ErrChaos
	}

	return c.fs.ReadFile(path)
}

func (c *Chaos) WriteFile(path string, data []byte, perm os.FileMode) error {
	if c.trip() {
		return ErrChaos
	}

	return c.fs.WriteFile(path, data, perm)
}

func (c *Chaos) Remove(path string) error {
	if c.trip() {
		return ErrChaos
	}

	return c.fs.Remove(path)
}

func (c *Chaos) Rename(oldpath, newpath string) error {
	if c.trip() {
		return ErrChaos
	}

	return c.fs.Rename(oldpath, newpath)
}

func (c *Chaos) MkdirAll(path string, perm os.FileMode) error {
	if c.trip() {
		return ErrChaos
	}

	return c.fs.MkdirAll(path, perm)
}

func (c *Chaos) RemoveAll(path string) error {
	if c.trip() {
		return ErrChaos
	}

	return c.fs.RemoveAll(path)
}

func (c *Chaos) ReadDir(path string) ([]os.DirEntry, error) {
	if c.trip() {
		return nil, ErrChaos
	}

	return c.fs.ReadDir(path)
}

func (c *Chaos) Stat(path string) (os.FileInfo, error) {
	if c.trip() {
		return nil, ErrChaos
	}

	return c.fs.Stat(path)
}

func (c *Chaos) Exists(path string) (bool, error) {
	if c.trip() {
		return false, ErrChaos
	}

	return c.fs.Exists(path)
}

var _ FS = (*Chaos)(nil)
