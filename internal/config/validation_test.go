package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return Default()
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "nil config",
			mutate:  nil,
			wantErr: "config",
		},
		{
			name:    "empty hosts path",
			mutate:  func(c *Config) { c.Settings.HostsPath = "  " },
			wantErr: "settings.hostsPath",
		},
		{
			name:    "zero write attempts",
			mutate:  func(c *Config) { c.Settings.WriteAttempts = 0 },
			wantErr: "settings.writeAttempts",
		},
		{
			name:    "negative retry delay",
			mutate:  func(c *Config) { c.Settings.RetryDelay = Duration(-time.Second) },
			wantErr: "settings.retryDelay",
		},
		{
			name:    "negative max backups",
			mutate:  func(c *Config) { c.Settings.MaxBackups = -1 },
			wantErr: "settings.maxBackups",
		},
		{
			name:    "unknown flush method",
			mutate:  func(c *Config) { c.Settings.FlushMethod = "reboot" },
			wantErr: "settings.flushMethod",
		},
		{
			name:   "empty flush method is valid",
			mutate: func(c *Config) { c.Settings.FlushMethod = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg *Config
			if tt.mutate != nil {
				cfg = validConfig()
				tt.mutate(cfg)
			}

			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateIP(t *testing.T) {
	valid := []string{"127.0.0.1", "192.168.1.1", "10.0.0.255", "::1", "fe80::1", "2001:db8::8a2e:370:7334"}
	for _, ip := range valid {
		assert.True(t, ValidateIP(ip), "expected %s to be valid", ip)
	}

	invalid := []string{"", "256.0.0.1", "not-an-ip", "127.0.0", "127.0.0.1.5", "example.com"}
	for _, ip := range invalid {
		assert.False(t, ValidateIP(ip), "expected %s to be invalid", ip)
	}
}

func TestValidateHostname(t *testing.T) {
	valid := []string{"localhost", "example.com", "sub.example.com", "my-app.test", "a", "host123", "xn--nxasmq6b.example"}
	for _, h := range valid {
		assert.True(t, ValidateHostname(h), "expected %s to be valid", h)
	}

	invalid := []string{"", "-leading.dash", "trailing.dash-", "spaces here", "double..dot", "under_score.com"}
	for _, h := range invalid {
		assert.False(t, ValidateHostname(h), "expected %s to be invalid", h)
	}
}
