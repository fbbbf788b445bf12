package hostsfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christianacca/hostsctl/internal/audit"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	hostsPath := filepath.Join(t.TempDir(), "hosts")
	store := NewStoreWithPaths(hostsPath, "")
	store.SetRetryPolicy(3, 10*time.Millisecond)
	return store, hostsPath
}

func writeHosts(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestStore_List_MissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	entries, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_List_ReadError(t *testing.T) {
	dir := t.TempDir()
	store := NewStoreWithPaths(dir, "")

	_, err := store.List()
	assert.Error(t, err)
}

func TestStore_List_PreservesOrderAndBlanks(t *testing.T) {
	store, hostsPath := newTestStore(t)
	writeHosts(t, hostsPath, "# header\n127.0.0.1\tlocalhost\n\n10.0.0.1\tdb.local\n")

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.True(t, entries[0].HasComment)
	assert.Equal(t, "127.0.0.1", entries[1].Address)
	assert.True(t, entries[2].IsBlank())
	assert.Equal(t, []string{"db.local"}, entries[3].Hostnames)
}

func TestStore_List_WindowsLineEndings(t *testing.T) {
	store, hostsPath := newTestStore(t)
	writeHosts(t, hostsPath, "127.0.0.1\tlocalhost\r\n10.0.0.1\tdb.local\r\n")

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"localhost"}, entries[0].Hostnames)
	assert.Equal(t, []string{"db.local"}, entries[1].Hostnames)
}

func TestStore_Add_AppendsWithoutDisturbingExisting(t *testing.T) {
	store, hostsPath := newTestStore(t)
	writeHosts(t, hostsPath, "# managed by hand\n127.0.0.1\tlocalhost\n\n10.0.0.1\tdb.local # primary\n")

	err := store.Add("192.168.0.7", []string{"new.local", "alias.local"})
	require.NoError(t, err)

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 5)

	// Prior entries unchanged and in order.
	assert.Equal(t, " managed by hand", entries[0].Comment)
	assert.Equal(t, "127.0.0.1", entries[1].Address)
	assert.True(t, entries[2].IsBlank())
	assert.Equal(t, " primary", entries[3].Comment)

	// New entry appended at the end, no comment.
	last := entries[4]
	assert.Equal(t, "192.168.0.7", last.Address)
	assert.Equal(t, []string{"new.local", "alias.local"}, last.Hostnames)
	assert.False(t, last.HasComment)
}

func TestStore_Add_ToMissingFile(t *testing.T) {
	store, hostsPath := newTestStore(t)

	require.NoError(t, store.Add("127.0.0.1", []string{"first.local"}))

	content, err := os.ReadFile(hostsPath)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1\tfirst.local\n", string(content))
}

func TestStore_Add_AllowsDuplicatesAcrossEntries(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Add("127.0.0.1", []string{"dup.local"}))
	require.NoError(t, store.Add("10.0.0.9", []string{"dup.local"}))

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "127.0.0.1", entries[0].Address)
	assert.Equal(t, "10.0.0.9", entries[1].Address)
}

func TestStore_Remove_ShrinksThenDropsEntry(t *testing.T) {
	store, hostsPath := newTestStore(t)
	writeHosts(t, hostsPath, "127.0.0.1\tfoobar foo bar\n")

	removed, err := store.Remove([]string{"foo", "bar"})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "127.0.0.1", entries[0].Address)
	assert.Equal(t, []string{"foobar"}, entries[0].Hostnames)

	removed, err = store.Remove([]string{"foobar"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	content, err := os.ReadFile(hostsPath)
	require.NoError(t, err)
	assert.Equal(t, "\n", string(content))
}

func TestStore_Remove_CaseInsensitive(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Add("127.0.0.1", []string{"foobar"}))

	removed, err := store.Remove([]string{"FOOBAR"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	entries, err := store.List()
	require.NoError(t, err)
	for _, e := range entries {
		assert.Empty(t, e.Hostnames)
	}
}

func TestStore_Remove_Idempotent(t *testing.T) {
	store, hostsPath := newTestStore(t)
	writeHosts(t, hostsPath, "127.0.0.1\tlocalhost\n10.0.0.1\tgone.local\n")

	removed, err := store.Remove([]string{"gone.local"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	first, err := os.ReadFile(hostsPath)
	require.NoError(t, err)

	removed, err = store.Remove([]string{"gone.local"})
	require.NoError(t, err)
	assert.Zero(t, removed)

	second, err := os.ReadFile(hostsPath)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestStore_Remove_NoopSkipsWrite(t *testing.T) {
	store, hostsPath := newTestStore(t)
	writeHosts(t, hostsPath, "127.0.0.1\tlocalhost\n")

	before, err := os.Stat(hostsPath)
	require.NoError(t, err)

	removed, err := store.Remove([]string{"doesnotexist"})
	require.NoError(t, err)
	assert.Zero(t, removed)

	after, err := os.Stat(hostsPath)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())

	content, err := os.ReadFile(hostsPath)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1\tlocalhost\n", string(content))
}

func TestStore_Remove_PreservesCommentsAndBlankLines(t *testing.T) {
	store, hostsPath := newTestStore(t)
	writeHosts(t, hostsPath, "# Host Database\n#\n127.0.0.1\tlocalhost\n\n10.0.0.1\tgone.local\n")

	removed, err := store.Remove([]string{"gone.local"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	content, err := os.ReadFile(hostsPath)
	require.NoError(t, err)
	assert.Equal(t, "# Host Database\n#\n127.0.0.1\tlocalhost\n", string(content))
}

func TestStore_Remove_DropsCommentWithEmptiedEntry(t *testing.T) {
	store, hostsPath := newTestStore(t)
	writeHosts(t, hostsPath, "127.0.0.1\tlocalhost\n10.0.0.1\tgone.local # staging db\n")

	removed, err := store.Remove([]string{"gone.local"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	content, err := os.ReadFile(hostsPath)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "staging db")
	assert.NotContains(t, string(content), "10.0.0.1")
}

func TestStore_Remove_AllOccurrencesAcrossEntries(t *testing.T) {
	store, hostsPath := newTestStore(t)
	writeHosts(t, hostsPath, "127.0.0.1\tdup.local\n10.0.0.1\tdup.local other.local\n")

	removed, err := store.Remove([]string{"dup.local"})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"other.local"}, entries[0].Hostnames)
}

func TestStore_ManyAddsAllConverge(t *testing.T) {
	store, _ := newTestStore(t)

	const n = 20
	for i := 0; i < n; i++ {
		require.NoError(t, store.Add("127.0.0.1", []string{fmt.Sprintf("app%02d.local", i)}))
	}

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, n)

	for i := 0; i < n; i++ {
		name := fmt.Sprintf("app%02d.local", i)
		found := false
		for _, e := range entries {
			if e.HasHostname(name) {
				found = true
				break
			}
		}
		assert.True(t, found, "hostname %s missing after %d adds", name, n)
	}
}

func TestStore_AuditLogging(t *testing.T) {
	store, _ := newTestStore(t)
	auditPath := filepath.Join(t.TempDir(), "audit.log")

	logger, err := audit.NewLogger(auditPath)
	require.NoError(t, err)
	defer logger.Close()
	store.SetAuditLogger(logger)

	require.NoError(t, store.Add("127.0.0.1", []string{"audited.local"}))
	_, err = store.Remove([]string{"audited.local"})
	require.NoError(t, err)

	content, err := os.ReadFile(auditPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"action":"add"`)
	assert.Contains(t, lines[1], `"action":"remove"`)
	assert.Contains(t, lines[0], "audited.local")
}
