// Package tui provides the main Bubble Tea application.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/christianacca/hostsctl/internal/hostsfile"
)

// ViewMode represents the current view mode.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewForm
	ViewConfirmRemove
	ViewHelp
)

// Model is the main Bubble Tea model.
type Model struct {
	store *hostsfile.Store

	mode ViewMode
	list *ListView
	form *Form

	width  int
	height int

	message      string
	messageStyle string // "error" or "success"

	// Hostnames queued for removal while the confirmation dialog is up.
	pendingRemove []string
}

// Message types
type (
	refreshMsg struct {
		entries []hostsfile.Entry
		err     error
	}
	addMsg struct {
		hostnames []string
		err       error
	}
	removeMsg struct {
		hostnames []string
		removed   int
		err       error
	}
	clearMsgMsg struct{}
)

// NewModel creates a new TUI model over the given store.
func NewModel(store *hostsfile.Store) *Model {
	return &Model{
		store: store,
		list:  NewListView(),
		form:  NewForm(),
		mode:  ViewList,
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.refresh(),
		tea.SetWindowTitle("hostsctl"),
	)
}

func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.store.List()
		return refreshMsg{entries: entries, err: err}
	}
}

func (m *Model) addEntry(address string, hostnames []string) tea.Cmd {
	return func() tea.Msg {
		err := m.store.Add(address, hostnames)
		return addMsg{hostnames: hostnames, err: err}
	}
}

func (m *Model) removeHostnames(hostnames []string) tea.Cmd {
	return func() tea.Msg {
		removed, err := m.store.Remove(hostnames)
		return removeMsg{hostnames: hostnames, removed: removed, err: err}
	}
}

func clearMessageAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearMsgMsg{}
	})
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height)
		m.form.SetSize(msg.Width, msg.Height)
		return m, nil

	case refreshMsg:
		if msg.err != nil {
			return m.showError(fmt.Sprintf("Failed to read hosts file: %v", msg.err))
		}
		m.list.SetEntries(msg.entries)
		return m, nil

	case addMsg:
		if msg.err != nil {
			return m.showError(fmt.Sprintf("Add failed: %v", msg.err))
		}
		m.mode = ViewList
		model, cmd := m.showSuccess("Added: " + strings.Join(msg.hostnames, " "))
		return model, tea.Batch(cmd, m.refresh())

	case removeMsg:
		if msg.err != nil {
			return m.showError(fmt.Sprintf("Remove failed: %v", msg.err))
		}
		if msg.removed == 0 {
			return m.showSuccess("Nothing to remove")
		}
		model, cmd := m.showSuccess(fmt.Sprintf("Removed %d hostname(s)", msg.removed))
		return model, tea.Batch(cmd, m.refresh())

	case clearMsgMsg:
		m.message = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == ViewForm {
		return m, m.form.Update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ViewForm:
		switch msg.String() {
		case "esc":
			m.mode = ViewList
			return m, nil
		case "enter":
			if problem := m.form.Validate(); problem != "" {
				return m.showError(problem)
			}
			address, hostnames := m.form.Values()
			return m, m.addEntry(address, hostnames)
		}
		return m, m.form.Update(msg)

	case ViewConfirmRemove:
		switch msg.String() {
		case "y", "Y", "enter":
			hostnames := m.pendingRemove
			m.pendingRemove = nil
			m.mode = ViewList
			return m, m.removeHostnames(hostnames)
		case "n", "N", "esc":
			m.pendingRemove = nil
			m.mode = ViewList
		}
		return m, nil

	case ViewHelp:
		m.mode = ViewList
		return m, nil
	}

	// List mode
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.list.MoveUp()
	case "down", "j":
		m.list.MoveDown()
	case "a", "n":
		m.form.Init()
		m.mode = ViewForm
	case "d", "x":
		if e := m.list.Selected(); e != nil && len(e.Hostnames) > 0 {
			m.pendingRemove = append([]string(nil), e.Hostnames...)
			m.mode = ViewConfirmRemove
		}
	case "r":
		return m, m.refresh()
	case "?":
		m.mode = ViewHelp
	}
	return m, nil
}

func (m *Model) showError(text string) (tea.Model, tea.Cmd) {
	m.message = text
	m.messageStyle = "error"
	return m, clearMessageAfter(4 * time.Second)
}

func (m *Model) showSuccess(text string) (tea.Model, tea.Cmd) {
	m.message = text
	m.messageStyle = "success"
	return m, clearMessageAfter(2 * time.Second)
}

// View renders the application.
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("hostsctl"))
	sb.WriteString("\n")

	switch m.mode {
	case ViewForm:
		sb.WriteString(m.form.View())
	case ViewConfirmRemove:
		sb.WriteString(m.confirmView())
	case ViewHelp:
		sb.WriteString(m.helpView())
	default:
		sb.WriteString(m.list.View())
	}

	if m.message != "" {
		style := successMsgStyle
		if m.messageStyle == "error" {
			style = errorMsgStyle
		}
		sb.WriteString("\n")
		sb.WriteString(style.Render("  " + m.message))
	}

	sb.WriteString("\n")
	sb.WriteString(m.statusBar())

	return sb.String()
}

func (m *Model) confirmView() string {
	text := fmt.Sprintf("Remove %s from the hosts file?\n\n", strings.Join(m.pendingRemove, " "))
	text += helpKeyStyle.Render("y") + helpDescStyle.Render(" confirm  ") +
		helpKeyStyle.Render("n") + helpDescStyle.Render(" cancel")
	return dialogStyle.Render(text)
}

func (m *Model) helpView() string {
	lines := []string{
		"↑/k ↓/j  move",
		"a        add entry",
		"d        remove selected entry's hostnames",
		"r        reload the hosts file",
		"?        toggle this help",
		"q        quit",
	}
	return dialogStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) statusBar() string {
	return statusBarStyle.Render(fmt.Sprintf("  %d entries • a add • d remove • r reload • ? help • q quit", m.list.Len()))
}

// Run starts the TUI against the given store.
func Run(store *hostsfile.Store) error {
	p := tea.NewProgram(NewModel(store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
