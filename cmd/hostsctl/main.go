// Package main provides the entry point for the hostsctl application.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/christianacca/hostsctl/internal/audit"
	"github.com/christianacca/hostsctl/internal/config"
	"github.com/christianacca/hostsctl/internal/dnsflush"
	"github.com/christianacca/hostsctl/internal/hostsfile"
	"github.com/christianacca/hostsctl/internal/tui"
	"github.com/christianacca/hostsctl/internal/version"
)

// appVersion is set at compile time via ldflags
var appVersion = "dev"

const (
	githubOwner = "christianacca"
	githubRepo  = "hostsctl"
)

func main() {
	versionFlag := flag.Bool("version", false, "Show version")
	updateFlag := flag.Bool("update", false, "Check for updates")
	configPath := flag.String("config", config.DefaultConfigPath(), "Path to config file")
	hostsPath := flag.String("hosts", "", "Hosts file path (overrides config)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "hostsctl - Hosts File Management\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  hostsctl                          Launch TUI\n")
		fmt.Fprintf(os.Stderr, "  hostsctl list                     List all entries\n")
		fmt.Fprintf(os.Stderr, "  hostsctl add <ip> <hostname...>   Add an entry\n")
		fmt.Fprintf(os.Stderr, "  hostsctl remove <hostname...>     Remove hostnames\n")
		fmt.Fprintf(os.Stderr, "  hostsctl backups                  List backups\n")
		fmt.Fprintf(os.Stderr, "  hostsctl restore <name>           Restore a backup\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("hostsctl version %s\n", appVersion)
		os.Exit(0)
	}

	if *updateFlag {
		checkForUpdates()
		os.Exit(0)
	}

	cfg := loadConfig(*configPath)
	if *hostsPath != "" {
		cfg.Settings.HostsPath = *hostsPath
	}

	store := newStore(cfg)

	args := flag.Args()
	if len(args) == 0 {
		if err := tui.Run(store); err != nil {
			fatal(err)
		}
		return
	}

	switch args[0] {
	case "list":
		runList(store)
	case "add":
		if len(args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: hostsctl add <ip> <hostname...>")
			os.Exit(1)
		}
		runAdd(store, cfg, args[1], args[2:])
	case "remove":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: hostsctl remove <hostname...>")
			os.Exit(1)
		}
		runRemove(store, cfg, args[1:])
	case "backups":
		runBackups(store)
	case "restore":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: hostsctl restore <name>")
			os.Exit(1)
		}
		runRestore(store, args[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		flag.Usage()
		os.Exit(1)
	}
}

func loadConfig(path string) *config.Config {
	mgr := config.NewManager(path)
	if err := mgr.Load(); err != nil {
		fatal(err)
	}
	return mgr.Get()
}

func newStore(cfg *config.Config) *hostsfile.Store {
	s := cfg.Settings

	store := hostsfile.NewStoreWithPaths(s.HostsPath, s.BackupDir)
	store.SetRetryPolicy(s.WriteAttempts, time.Duration(s.RetryDelay))
	store.SetMaxBackups(s.MaxBackups)

	if s.AuditLog != "" {
		logger, err := audit.NewLogger(s.AuditLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
		} else {
			store.SetAuditLogger(logger)
		}
	}

	return store
}

func runList(store *hostsfile.Store) {
	entries, err := store.List()
	if err != nil {
		fatal(err)
	}

	if len(entries) == 0 {
		fmt.Println("Hosts file is empty.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ADDRESS\tHOSTNAMES\tCOMMENT")
	fmt.Fprintln(w, "-------\t---------\t-------")

	for _, e := range entries {
		if e.Address == "" && len(e.Hostnames) == 0 {
			continue
		}
		comment := ""
		if e.HasComment {
			comment = "#" + e.Comment
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Address, strings.Join(e.Hostnames, " "), comment)
	}

	w.Flush()
}

func runAdd(store *hostsfile.Store, cfg *config.Config, address string, hostnames []string) {
	if !config.ValidateIP(address) {
		fatal(fmt.Errorf("invalid IP address: %s", address))
	}
	for _, h := range hostnames {
		if !config.ValidateHostname(h) {
			fatal(fmt.Errorf("invalid hostname: %s", h))
		}
	}

	requireWritable(cfg.Settings.HostsPath)

	if err := store.Add(address, hostnames); err != nil {
		fatal(err)
	}
	flushIfConfigured(cfg)

	fmt.Printf("✓ Added: %s → %s\n", strings.Join(hostnames, " "), address)
}

func runRemove(store *hostsfile.Store, cfg *config.Config, hostnames []string) {
	requireWritable(cfg.Settings.HostsPath)

	removed, err := store.Remove(hostnames)
	if err != nil {
		fatal(err)
	}

	if removed == 0 {
		fmt.Println("No matching hostnames; hosts file untouched.")
		return
	}
	flushIfConfigured(cfg)

	fmt.Printf("✓ Removed %d hostname(s)\n", removed)
}

func runBackups(store *hostsfile.Store) {
	backups, err := store.ListBackups()
	if err != nil {
		fatal(err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDATE\tSIZE")
	for _, b := range backups {
		fmt.Fprintf(w, "%s\t%s\t%d\n", b.Name, time.Unix(b.Timestamp, 0).Format(time.RFC3339), b.Size)
	}
	w.Flush()
}

func runRestore(store *hostsfile.Store, name string) {
	if err := store.RestoreBackup(name); err != nil {
		fatal(err)
	}
	fmt.Printf("✓ Restored: %s\n", name)
}

// requireWritable aborts with a sudo hint when the hosts file cannot be
// modified by this process.
func requireWritable(path string) {
	if err := hostsfile.CheckWritable(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s is not writable: %v\n", path, err)
		fmt.Fprintln(os.Stderr, "\nTry re-running with sudo.")
		os.Exit(1)
	}
}

func flushIfConfigured(cfg *config.Config) {
	if !cfg.Settings.FlushAfterWrite {
		return
	}
	if err := dnsflush.Flush(dnsflush.Method(cfg.Settings.FlushMethod)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: DNS cache flush failed: %v\n", err)
	}
}

func checkForUpdates() {
	fmt.Printf("hostsctl version %s\n", appVersion)
	fmt.Println("Checking for updates...")

	checker := version.NewChecker(githubOwner, githubRepo, appVersion)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := checker.CheckForUpdate(ctx)
	if update == nil {
		fmt.Println("You are running the latest version.")
		return
	}

	fmt.Println(update.FormatUpdateMessage())
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
