//go:build !windows

package hostsfile

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// CheckWritable reports whether the current process may modify the hosts
// file, using access(2) so the effective UID is honoured. A missing file is
// writable when its parent directory is. Used as a pre-flight check so
// callers can suggest privilege elevation before any mutation starts.
func CheckWritable(path string) error {
	err := unix.Access(path, unix.W_OK)
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		return unix.Access(filepath.Dir(path), unix.W_OK)
	}
	return &os.PathError{Op: "access", Path: path, Err: err}
}
