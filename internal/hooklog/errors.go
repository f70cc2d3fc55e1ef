package hooklog

import "fmt"

// DirectoryCreationError reports that the log directory could not be made.
type DirectoryCreationError struct {
	Dir string
	Err error
}

func (e *DirectoryCreationError) Error() string {
	return fmt.Sprintf("hooklog: create dir %s: %v", e.Dir, e.Err)
}

func (e *DirectoryCreationError) Unwrap() error { return e.Err }

// LockError reports a failure to acquire or release the file lock.
type LockError struct {
	Path string
	Op   string // "lock" or "unlock"
	Err  error
}

func (e *LockError) Error() string {
	return fmt.Sprintf("hooklog: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LockError) Unwrap() error { return e.Err }

// WriteError reports a failure to open, write, sync or close the log file.
type WriteError struct {
	Path string
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("hooklog: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
