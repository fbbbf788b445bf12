// Package audit provides JSON-lines audit logging of hosts file mutations.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry is a single audit record.
type Entry struct {
	Timestamp string   `json:"timestamp"`
	UID       int      `json:"uid"`
	PID       int      `json:"pid"`
	Action    string   `json:"action"`
	Hostnames []string `json:"hostnames,omitempty"`
	Success   bool     `json:"success"`
	Error     string   `json:"error,omitempty"`
}

// Logger appends audit records to a file. Safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	encoder *json.Encoder
}

// NewLogger opens (creating if needed) the audit log at path.
func NewLogger(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	return &Logger{
		file:    file,
		encoder: json.NewEncoder(file),
	}, nil
}

// Log records one mutation. Encoding errors are ignored; audit logging must
// never fail the operation being audited.
func (l *Logger) Log(action string, hostnames []string, success bool, errMsg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_ = l.encoder.Encode(Entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		UID:       os.Getuid(),
		PID:       os.Getpid(),
		Action:    action,
		Hostnames: hostnames,
		Success:   success,
		Error:     errMsg,
	})
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
