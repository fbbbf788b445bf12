package hostsfile

import (
	"fmt"
	"os"
	"time"
)

// writeWithRetry replaces the full content of the hosts file, retrying on
// any file-system error. Concurrent invocations racing for the same file
// show up as transient write failures (sharing violations, vanished parent
// state); the bounded retry converts short-lived contention into eventual
// success. Exhausting the budget surfaces the last error.
func (s *Store) writeWithRetry(content string) error {
	var lastErr error

	for attempt := 1; attempt <= s.writeAttempts; attempt++ {
		lastErr = os.WriteFile(s.hostsPath, []byte(content), 0644)
		if lastErr == nil {
			return nil
		}
		if attempt < s.writeAttempts {
			time.Sleep(s.retryDelay)
		}
	}

	return fmt.Errorf("failed to write hosts file after %d attempts: %w", s.writeAttempts, lastErr)
}
