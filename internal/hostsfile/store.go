package hostsfile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/christianacca/hostsctl/internal/audit"
)

const (
	// HostsPath is the path to the system hosts file.
	HostsPath = "/etc/hosts"
	// BackupDir is the directory for hosts file backups.
	BackupDir = "/var/backups/hostsctl"
	// MaxBackups is the maximum number of backups to keep.
	MaxBackups = 10

	// DefaultWriteAttempts is the total number of write attempts before a
	// write is considered fatal.
	DefaultWriteAttempts = 5
	// DefaultRetryDelay is the pause between write attempts.
	DefaultRetryDelay = 2 * time.Second
)

// Store is a handle to one hosts file. Every operation performs a full
// read → mutate → serialize → write cycle against the file; nothing is
// cached between calls. Concurrent invocations coordinate only through the
// file itself, absorbed by the bounded write retry.
type Store struct {
	hostsPath     string
	backupDir     string
	maxBackups    int
	writeAttempts int
	retryDelay    time.Duration
	audit         *audit.Logger
}

// NewStore creates a store bound to the system hosts file.
func NewStore() *Store {
	return NewStoreWithPaths(HostsPath, BackupDir)
}

// NewStoreWithPaths creates a store with custom paths (for testing or
// non-standard layouts). An empty backupDir disables backups.
func NewStoreWithPaths(hostsPath, backupDir string) *Store {
	return &Store{
		hostsPath:     hostsPath,
		backupDir:     backupDir,
		maxBackups:    MaxBackups,
		writeAttempts: DefaultWriteAttempts,
		retryDelay:    DefaultRetryDelay,
	}
}

// SetRetryPolicy overrides the write retry budget.
func (s *Store) SetRetryPolicy(attempts int, delay time.Duration) {
	if attempts < 1 {
		attempts = 1
	}
	s.writeAttempts = attempts
	s.retryDelay = delay
}

// SetMaxBackups overrides the backup retention count.
func (s *Store) SetMaxBackups(n int) {
	s.maxBackups = n
}

// SetAuditLogger attaches an audit logger. Mutations are logged; audit
// failures never fail the operation.
func (s *Store) SetAuditLogger(l *audit.Logger) {
	s.audit = l
}

// List reads and parses the hosts file. A missing file is a valid empty
// state, not an error.
func (s *Store) List() ([]Entry, error) {
	file, err := os.Open(s.hostsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open hosts file: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		entries = append(entries, ParseLine(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hosts file: %w", err)
	}

	return entries, nil
}

// Add appends a new entry mapping the given hostnames to address and writes
// the file back. Pre-existing entries for the same hostnames are left in
// place; the hosts file tolerates duplicates.
func (s *Store) Add(address string, hostnames []string) error {
	entries, err := s.List()
	if err != nil {
		s.logAudit("add", hostnames, false, err)
		return err
	}

	entries = append(entries, Entry{Address: address, Hostnames: hostnames})

	if err := s.write(entries); err != nil {
		s.logAudit("add", hostnames, false, err)
		return err
	}

	s.logAudit("add", hostnames, true, nil)
	return nil
}

// Remove deletes every occurrence of each named hostname from the file,
// matching case-insensitively. An entry whose hostname list becomes empty is
// dropped entirely, comment and address included. Returns the number of
// hostname tokens removed; when zero, the file is not touched at all.
func (s *Store) Remove(hostnames []string) (int, error) {
	entries, err := s.List()
	if err != nil {
		s.logAudit("remove", hostnames, false, err)
		return 0, err
	}

	remaining, removed := removeHostnames(entries, hostnames)
	if removed == 0 {
		return 0, nil
	}

	if err := s.write(remaining); err != nil {
		s.logAudit("remove", hostnames, false, err)
		return 0, err
	}

	s.logAudit("remove", hostnames, true, nil)
	return removed, nil
}

// removeHostnames strips the named hostnames from the entry collection and
// reports how many tokens were removed. Blank and comment-only entries are
// never candidates, so file formatting survives removal untouched.
func removeHostnames(entries []Entry, hostnames []string) ([]Entry, int) {
	removed := 0
	result := make([]Entry, 0, len(entries))

	for _, e := range entries {
		if len(e.Hostnames) == 0 {
			result = append(result, e)
			continue
		}

		kept := make([]string, 0, len(e.Hostnames))
		for _, h := range e.Hostnames {
			matched := false
			for _, target := range hostnames {
				if strings.EqualFold(h, target) {
					matched = true
					break
				}
			}
			if matched {
				removed++
			} else {
				kept = append(kept, h)
			}
		}

		if len(kept) == 0 {
			// The entry no longer maps anything; drop it even if it
			// carried a comment.
			continue
		}
		e.Hostnames = kept
		result = append(result, e)
	}

	return result, removed
}

func (s *Store) write(entries []Entry) error {
	if s.backupDir != "" {
		if err := s.CreateBackup(); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}
	return s.writeWithRetry(Serialize(entries) + "\n")
}

func (s *Store) logAudit(action string, hostnames []string, success bool, opErr error) {
	if s.audit == nil {
		return
	}
	errMsg := ""
	if opErr != nil {
		errMsg = opErr.Error()
	}
	s.audit.Log(action, hostnames, success, errMsg)
}
