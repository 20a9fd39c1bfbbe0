// Package lockfile guards against concurrent sync runs over the same status
// directory. The guard is an OS-level advisory file lock, so it also protects
// against a second process started from another terminal or by a scheduler.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrAlreadyRunning is returned by Acquire when another process holds the
// lock. Callers treat it as a benign condition, not a failure.
var ErrAlreadyRunning = errors.New("another sync is already running")

// Lock is a held instance lock. The zero value is not usable; obtain one via
// Acquire.
type Lock struct {
	fl *flock.Flock
}

// Acquire takes the instance lock under statusDir without blocking. The
// directory is created if missing. Returns [ErrAlreadyRunning] when the lock
// is held elsewhere; the OS releases it automatically if the holder dies.
func Acquire(statusDir string) (*Lock, error) {
	if err := os.MkdirAll(statusDir, 0o700); err != nil {
		return nil, fmt.Errorf("create status dir: %w", err)
	}

	fl := flock.New(filepath.Join(statusDir, "mailsync.lock"))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire instance lock: %w", err)
	}
	if !locked {
		return nil, ErrAlreadyRunning
	}

	return &Lock{fl: fl}, nil
}

// Release gives the lock up. Safe to call on an already released lock.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
