// Package dnsflush flushes the operating system DNS cache so hosts file
// edits take effect immediately.
package dnsflush

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Method selects how the cache is flushed.
type Method string

const (
	MethodAuto        Method = "auto"
	MethodDscacheutil Method = "dscacheutil"
	MethodKillall     Method = "killall"
	MethodBoth        Method = "both"
	MethodSystemd     Method = "systemd"
	MethodNscd        Method = "nscd"
)

// run is swapped out in tests.
var run = func(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Flush flushes the DNS cache using the given method, auto-detecting one
// when method is MethodAuto or empty.
func Flush(method Method) error {
	switch runtime.GOOS {
	case "darwin":
		return flushDarwin(method)
	case "linux":
		return flushLinux(method)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// Detect picks a flush method available on this system.
func Detect() Method {
	switch runtime.GOOS {
	case "darwin":
		return MethodBoth
	case "linux":
		for _, tool := range []string{"resolvectl", "systemd-resolve"} {
			if _, err := exec.LookPath(tool); err == nil {
				return MethodSystemd
			}
		}
		if _, err := exec.LookPath("nscd"); err == nil {
			return MethodNscd
		}
	}
	return MethodAuto
}

func flushDarwin(method Method) error {
	if method == MethodAuto || method == "" {
		method = MethodBoth
	}

	flushCache := method == MethodDscacheutil || method == MethodBoth
	hupResponder := method == MethodKillall || method == MethodBoth

	var errs []error
	if flushCache {
		if err := run("dscacheutil", "-flushcache"); err != nil {
			errs = append(errs, fmt.Errorf("dscacheutil failed: %w", err))
		}
	}
	if hupResponder {
		if err := run("killall", "-HUP", "mDNSResponder"); err != nil {
			errs = append(errs, fmt.Errorf("killall mDNSResponder failed: %w", err))
		}
	}

	// Partial success is good enough on darwin; only fail when every
	// requested method failed.
	if len(errs) > 0 && len(errs) == boolCount(flushCache)+boolCount(hupResponder) {
		return errs[0]
	}
	return nil
}

func flushLinux(method Method) error {
	if method == MethodAuto || method == "" {
		method = Detect()
	}

	switch method {
	case MethodSystemd:
		if err := run("resolvectl", "flush-caches"); err != nil {
			if err := run("systemd-resolve", "--flush-caches"); err != nil {
				return fmt.Errorf("systemd DNS flush failed: %w", err)
			}
		}
	case MethodNscd:
		if err := run("nscd", "-i", "hosts"); err != nil {
			if err := run("service", "nscd", "restart"); err != nil {
				return fmt.Errorf("nscd flush failed: %w", err)
			}
		}
	default:
		// No resolver cache detected; /etc/hosts is read directly on
		// most Linux systems, so nothing to do.
	}

	return nil
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}
