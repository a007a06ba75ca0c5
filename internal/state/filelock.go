package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// LockFileName is the advisory lock kept next to the config file.
const LockFileName = "config.lock"

// ErrLockHeld is returned when TryLockFile cannot acquire a lock
// because it is already held by another process.
var ErrLockHeld = errors.New("lock is held by another process")

// FileLock is an exclusive flock(2) lock on a file.
type FileLock struct {
	file *os.File
	path string
}

// LockFile acquires an exclusive lock on path, blocking until it is free.
// The file is created if it doesn't exist.
func LockFile(path string) (*FileLock, error) {
	return lock(path, syscall.LOCK_EX)
}

// TryLockFile is like LockFile but returns ErrLockHeld instead of blocking.
func TryLockFile(path string) (*FileLock, error) {
	return lock(path, syscall.LOCK_EX|syscall.LOCK_NB)
}

func lock(path string, how int) (*FileLock, error) {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	//nolint:gosec // G304: lock path is derived from the config directory
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open file for locking: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), how); err != nil {
		_ = f.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) {
			return nil, ErrLockHeld
		}
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	return &FileLock{file: f, path: path}, nil
}

// Unlock releases the lock and closes the file. It is safe to call twice.
func (fl *FileLock) Unlock() error {
	if fl.file == nil {
		return nil
	}

	if err := syscall.Flock(int(fl.file.Fd()), syscall.LOCK_UN); err != nil {
		_ = fl.file.Close()
		fl.file = nil
		return fmt.Errorf("failed to release lock: %w", err)
	}

	if err := fl.file.Close(); err != nil {
		fl.file = nil
		return fmt.Errorf("failed to close file: %w", err)
	}

	fl.file = nil
	return nil
}

// Path returns the path to the locked file.
func (fl *FileLock) Path() string {
	return fl.path
}
