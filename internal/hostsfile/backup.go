package hostsfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// BackupInfo describes one backup file.
type BackupInfo struct {
	Name      string
	Timestamp int64
	Size      int64
}

// CreateBackup snapshots the current hosts file into the backup directory
// before a mutation touches it. A missing hosts file needs no backup. Old
// backups beyond the retention count are pruned; pruning failures are
// reported on stderr but never fail the backup.
func (s *Store) CreateBackup() error {
	content, err := os.ReadFile(s.hostsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read hosts file: %w", err)
	}

	if err := os.MkdirAll(s.backupDir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := fmt.Sprintf("hosts.%s.bak", time.Now().Format("20060102-150405.000000000"))
	if err := os.WriteFile(filepath.Join(s.backupDir, name), content, 0644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	if err := s.pruneBackups(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to prune backups: %v\n", err)
	}

	return nil
}

func (s *Store) pruneBackups() error {
	names, err := s.backupNames()
	if err != nil {
		return err
	}
	if len(names) <= s.maxBackups {
		return nil
	}

	// Timestamped names sort chronologically; oldest first.
	sort.Strings(names)
	for _, name := range names[:len(names)-s.maxBackups] {
		os.Remove(filepath.Join(s.backupDir, name))
	}
	return nil
}

func (s *Store) backupNames() ([]string, error) {
	dirEntries, err := os.ReadDir(s.backupDir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, de := range dirEntries {
		if !de.IsDir() && isBackupName(de.Name()) {
			names = append(names, de.Name())
		}
	}
	return names, nil
}

// ListBackups returns the available backups, newest first. A missing backup
// directory means no backups yet.
func (s *Store) ListBackups() ([]BackupInfo, error) {
	dirEntries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var backups []BackupInfo
	for _, de := range dirEntries {
		if de.IsDir() || !isBackupName(de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Name:      de.Name(),
			Timestamp: info.ModTime().Unix(),
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Name > backups[j].Name
	})
	return backups, nil
}

// RestoreBackup replaces the hosts file with the named backup, taking a
// fresh backup of the current state first.
func (s *Store) RestoreBackup(name string) error {
	// Reject path traversal and foreign file names.
	if filepath.Base(name) != name || !isBackupName(name) {
		return fmt.Errorf("invalid backup name: %q", name)
	}

	content, err := os.ReadFile(filepath.Join(s.backupDir, name))
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	if err := s.CreateBackup(); err != nil {
		return fmt.Errorf("failed to back up current state: %w", err)
	}

	return s.writeWithRetry(string(content))
}

func isBackupName(name string) bool {
	return strings.HasPrefix(name, "hosts.") &&
		strings.HasSuffix(name, ".bak") &&
		len(name) > len("hosts.")+len(".bak")
}
