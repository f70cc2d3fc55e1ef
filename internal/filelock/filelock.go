// Package filelock provides exclusive advisory locks scoped to a single file,
// shared between independent processes.
package filelock

import "os"

// Locker grants exclusive access to an open file. Lock blocks until the lock
// is held and returns the function that releases it. Callers must call
// unlock exactly once, on every path.
type Locker interface {
	Lock(f *os.File) (unlock func() error, err error)
}

// Flock is the platform's native whole-file advisory lock: flock(2) on
// Unix systems and LockFileEx on Windows. There is no timeout.
type Flock struct{}

// Lock acquires an exclusive lock on f, waiting as long as necessary.
func (Flock) Lock(f *os.File) (func() error, error) {
	if err := lock(f); err != nil {
		return nil, err
	}
	return func() error { return unlock(f) }, nil
}
