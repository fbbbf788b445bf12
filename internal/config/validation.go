// Package config provides validation functions for configuration.
package config

import (
	"fmt"
	"net"
	"regexp"
	"strings"
)

// hostnameRegex validates hostname labels. Single labels like "myhost" are
// legal in a hosts file, so no dot is required.
var hostnameRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig validates the entire configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{Field: "config", Message: "config is nil"}
	}
	return validateSettings(&cfg.Settings)
}

func validateSettings(s *Settings) error {
	if strings.TrimSpace(s.HostsPath) == "" {
		return &ValidationError{
			Field:   "settings.hostsPath",
			Message: "hosts path is required",
		}
	}

	if s.WriteAttempts < 1 {
		return &ValidationError{
			Field:   "settings.writeAttempts",
			Message: fmt.Sprintf("must be at least 1, got %d", s.WriteAttempts),
		}
	}

	if s.RetryDelay < 0 {
		return &ValidationError{
			Field:   "settings.retryDelay",
			Message: "must not be negative",
		}
	}

	if s.MaxBackups < 0 {
		return &ValidationError{
			Field:   "settings.maxBackups",
			Message: "must not be negative",
		}
	}

	switch s.FlushMethod {
	case FlushMethodAuto, FlushMethodDscacheutil, FlushMethodKillall, FlushMethodBoth,
		FlushMethodSystemd, FlushMethodNscd, "":
		// Valid
	default:
		return &ValidationError{
			Field:   "settings.flushMethod",
			Message: fmt.Sprintf("invalid flush method: %s", s.FlushMethod),
		}
	}

	return nil
}

// ValidateIP checks if an IP address is valid (IPv4 or IPv6). Used by the
// interactive layers only; the file parser deliberately accepts anything.
func ValidateIP(ip string) bool {
	if ip == "" {
		return false
	}
	return net.ParseIP(ip) != nil
}

// ValidateHostname checks if a hostname is well formed.
func ValidateHostname(name string) bool {
	if name == "" || len(name) > 253 {
		return false
	}
	return hostnameRegex.MatchString(name)
}
