// Package version provides version checking against GitHub releases.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// releasesURL is the GitHub API endpoint for the latest release.
	releasesURL = "https://api.github.com/repos/%s/%s/releases/latest"
	// requestTimeout bounds the release lookup.
	requestTimeout = 5 * time.Second
)

// ReleaseInfo contains information about a GitHub release.
type ReleaseInfo struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
	Name    string `json:"name"`
}

// UpdateInfo describes an available update.
type UpdateInfo struct {
	CurrentVersion string
	LatestVersion  string
	ReleaseURL     string
}

// Checker checks for new versions on GitHub.
type Checker struct {
	owner   string
	repo    string
	current string
	client  *http.Client
	baseURL string
}

// NewChecker creates a new version checker.
func NewChecker(owner, repo, currentVersion string) *Checker {
	return &Checker{
		owner:   owner,
		repo:    repo,
		current: normalize(currentVersion),
		client:  &http.Client{Timeout: requestTimeout},
		baseURL: releasesURL,
	}
}

// CheckForUpdate returns update details when a newer release exists, nil
// when up to date or when the check fails. Network errors fail silently so
// the check never gets in the user's way.
func (c *Checker) CheckForUpdate(ctx context.Context) *UpdateInfo {
	release, err := c.fetchLatestRelease(ctx)
	if err != nil {
		return nil
	}

	latest := normalize(release.TagName)
	if !isNewer(latest, c.current) {
		return nil
	}

	return &UpdateInfo{
		CurrentVersion: c.current,
		LatestVersion:  latest,
		ReleaseURL:     release.HTMLURL,
	}
}

func (c *Checker) fetchLatestRelease(ctx context.Context) (*ReleaseInfo, error) {
	url := fmt.Sprintf(c.baseURL, c.owner, c.repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "hostsctl-version-checker")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release ReleaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, err
	}
	return &release, nil
}

func normalize(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "v")
	return strings.TrimPrefix(v, "V")
}

// isNewer compares two dotted numeric versions, ignoring pre-release
// suffixes. A longer version wins a tie (1.0.1 > 1.0).
func isNewer(latest, current string) bool {
	l, c := parts(latest), parts(current)

	for i := 0; i < len(l) && i < len(c); i++ {
		if l[i] != c[i] {
			return l[i] > c[i]
		}
	}
	return len(l) > len(c)
}

func parts(v string) []int {
	if idx := strings.IndexAny(v, "-+"); idx != -1 {
		v = v[:idx]
	}

	segs := strings.Split(v, ".")
	nums := make([]int, len(segs))
	for i, s := range segs {
		nums[i], _ = strconv.Atoi(s)
	}
	return nums
}

// FormatUpdateMessage formats a user-friendly update notification.
func (u *UpdateInfo) FormatUpdateMessage() string {
	return fmt.Sprintf("New version available: %s (current: %s) - %s",
		u.LatestVersion, u.CurrentVersion, u.ReleaseURL)
}
