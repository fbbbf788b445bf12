// Package tui provides the list view component.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/christianacca/hostsctl/internal/hostsfile"
)

// ListView shows the hosts file entries that map at least one hostname.
// Blank and comment-only lines are file formatting, not records, so they
// are not listed.
type ListView struct {
	entries []hostsfile.Entry
	rows    []int // indices into entries, in display order
	cursor  int
	width   int
	height  int
}

// NewListView creates a new list view.
func NewListView() *ListView {
	return &ListView{}
}

// SetEntries updates the list content.
func (l *ListView) SetEntries(entries []hostsfile.Entry) {
	l.entries = entries
	l.rows = l.rows[:0]
	for i, e := range entries {
		if len(e.Hostnames) > 0 || e.Address != "" {
			l.rows = append(l.rows, i)
		}
	}
	if l.cursor >= len(l.rows) {
		l.cursor = max(0, len(l.rows)-1)
	}
}

// SetSize sets the view dimensions.
func (l *ListView) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// MoveUp moves the cursor up.
func (l *ListView) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// MoveDown moves the cursor down.
func (l *ListView) MoveDown() {
	if l.cursor < len(l.rows)-1 {
		l.cursor++
	}
}

// Selected returns the entry under the cursor, or nil when the list is empty.
func (l *ListView) Selected() *hostsfile.Entry {
	if l.cursor >= 0 && l.cursor < len(l.rows) {
		return &l.entries[l.rows[l.cursor]]
	}
	return nil
}

// Len returns the number of listed records.
func (l *ListView) Len() int {
	return len(l.rows)
}

// View renders the list as a table.
func (l *ListView) View() string {
	if len(l.rows) == 0 {
		empty := lipgloss.NewStyle().Foreground(colorMuted)
		return "\n" + empty.Render("  No host entries. Press 'a' to add one.") + "\n"
	}

	var rows [][]string
	for _, idx := range l.rows {
		e := l.entries[idx]
		comment := ""
		if e.HasComment {
			comment = "#" + e.Comment
		}
		rows = append(rows, []string{
			truncate(e.Address, 40),
			truncate(strings.Join(e.Hostnames, " "), 50),
			truncate(comment, 30),
		})
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("ADDRESS", "HOSTNAMES", "COMMENT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().
					Bold(true).
					Foreground(colorHeader).
					Padding(0, 1)
			}

			base := lipgloss.NewStyle().Padding(0, 1)
			if row == l.cursor {
				return base.
					Background(colorSelectedBg).
					Foreground(colorSelectedFg)
			}
			return base
		})

	return t.Render()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
