// Package pidfile manages the daemon's PID file lifecycle.
package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

var (
	// ErrExists indicates a PID file is already present at the path.
	ErrExists = errors.New("PID file already exists")

	// ErrNoParentDir indicates the PID file's directory is absent.
	ErrNoParentDir = errors.New("PID file dirname does not exist or is not a directory")
)

// Write records the current process ID at path. The parent directory must
// exist and the file itself must not: a leftover file means another
// instance is running, or died without cleanup and needs looking at.
func Write(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNoParentDir, dir)
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644); err != nil {
		return fmt.Errorf("write PID file: %w", err)
	}
	return nil
}

// Remove deletes the PID file. A file that is already gone is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove PID file: %w", err)
	}
	return nil
}
