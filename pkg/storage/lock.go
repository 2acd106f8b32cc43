package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// Locker guards the collection file across processes during a
// load-mutate-save sequence. Lock returns the matching unlock function.
type Locker interface {
	Lock(path string) (unlock func() error, err error)
}

// nopLocker is used when the store is not backed by the OS filesystem.
type nopLocker struct{}

func (nopLocker) Lock(string) (func() error, error) {
	return func() error { return nil }, nil
}

// FileLocker takes an advisory lock on "<collection file>.lock".
type FileLocker struct {
	Timeout    time.Duration // How long to wait for the lock (default 5s)
	RetryDelay time.Duration // Delay between attempts (default 50ms)
}

// Lock blocks until the lock is held or the timeout elapses.
func (l FileLocker) Lock(path string) (func() error, error) {
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	retry := l.RetryDelay
	if retry <= 0 {
		retry = 50 * time.Millisecond
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	fl := flock.New(path + ".lock")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	locked, err := fl.TryLockContext(ctx, retry)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLockTimeout
		}
		return nil, fmt.Errorf("failed to lock collection: %w", err)
	}
	if !locked {
		return nil, ErrLockTimeout
	}
	return fl.Unlock, nil
}
