// Package hooklog appends redacted hook events to a shared NDJSON file.
package hooklog

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tinkerbelle-io/tb-hooklog/internal/event"
	"github.com/tinkerbelle-io/tb-hooklog/internal/filelock"
	"github.com/tinkerbelle-io/tb-hooklog/internal/redact"
)

// Logger writes one redacted JSON line per event to a log file that other
// processes may be appending to at the same time. A Logger holds no open
// file between calls.
type Logger struct {
	path     string
	redactor *redact.Redactor
	locker   filelock.Locker
	sync     bool
	log      *slog.Logger
}

// Option configures a Logger.
type Option func(*Logger)

// WithRedactor replaces the built-in redactor.
func WithRedactor(r *redact.Redactor) Option {
	return func(l *Logger) { l.redactor = r }
}

// WithLocker replaces the platform file lock.
func WithLocker(lk filelock.Locker) Option {
	return func(l *Logger) { l.locker = lk }
}

// WithSync makes every append fsync the file before the lock is released.
func WithSync(sync bool) Option {
	return func(l *Logger) { l.sync = sync }
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *Logger) { l.log = log }
}

// New returns a Logger appending to path. Nothing is created until the first
// call to Log.
func New(path string, opts ...Option) *Logger {
	l := &Logger{
		path:     path,
		redactor: redact.New(),
		locker:   filelock.Flock{},
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = slog.Default().With("component", "hooklog")
	}
	return l
}

// Path returns the log file path.
func (l *Logger) Path() string { return l.path }

// Log redacts v, serializes it to one line and appends it to the log file
// under an exclusive lock. The parent directory is created if missing.
//
// Errors are *event.SerializationError, *DirectoryCreationError, *LockError
// or *WriteError. The lock and the file are released on every path.
func (l *Logger) Log(v event.Value) error {
	line, err := event.Encode(l.redactor.Value(v))
	if err != nil {
		return err
	}
	line = append(line, '\n')

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return &DirectoryCreationError{Dir: dir, Err: err}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return &WriteError{Path: l.path, Op: "open", Err: err}
	}

	err = l.appendLocked(f, line)
	if cerr := f.Close(); cerr != nil {
		if err == nil {
			return &WriteError{Path: l.path, Op: "close", Err: cerr}
		}
		l.log.Warn("close after failed append", "path", l.path, "error", cerr)
	}
	if err == nil {
		l.log.Debug("appended event", "path", l.path, "bytes", len(line))
	}
	return err
}

func (l *Logger) appendLocked(f *os.File, line []byte) error {
	unlock, err := l.locker.Lock(f)
	if err != nil {
		return &LockError{Path: l.path, Op: "lock", Err: err}
	}

	werr := l.write(f, line)
	if uerr := unlock(); uerr != nil {
		if werr == nil {
			return &LockError{Path: l.path, Op: "unlock", Err: uerr}
		}
		l.log.Warn("unlock after failed write", "path", l.path, "error", uerr)
	}
	return werr
}

// write emits the whole line in a single call so a reader never sees part
// of a record from a writer that holds the lock.
func (l *Logger) write(f *os.File, line []byte) error {
	if _, err := f.Write(line); err != nil {
		return &WriteError{Path: l.path, Op: "write", Err: err}
	}
	if l.sync {
		if err := f.Sync(); err != nil {
			return &WriteError{Path: l.path, Op: "sync", Err: err}
		}
	}
	return nil
}
