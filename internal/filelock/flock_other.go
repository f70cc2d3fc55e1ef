//go:build !(darwin || dragonfly || freebsd || linux || netbsd || openbsd || windows)

package filelock

import (
	"errors"
	"fmt"
	"os"
)

func lock(f *os.File) error {
	return fmt.Errorf("lock %s: %w", f.Name(), errors.ErrUnsupported)
}

func unlock(f *os.File) error {
	return fmt.Errorf("unlock %s: %w", f.Name(), errors.ErrUnsupported)
}
