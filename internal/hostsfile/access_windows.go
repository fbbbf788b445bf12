//go:build windows

package hostsfile

import (
	"os"
)

// CheckWritable reports whether the current process may modify the hosts
// file. Windows has no access(2); opening for append without creating is
// the closest equivalent probe.
func CheckWritable(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return f.Close()
}
