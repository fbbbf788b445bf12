// Package tui provides the form component for adding entries.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/christianacca/hostsctl/internal/config"
)

// FormField represents a form field index.
type FormField int

const (
	FieldAddress FormField = iota
	FieldHostnames
	fieldCount
)

// Form handles the add-entry form.
type Form struct {
	fields []textinput.Model
	focus  FormField
	width  int
}

// NewForm creates a new form.
func NewForm() *Form {
	fields := make([]textinput.Model, fieldCount)

	fields[FieldAddress] = textinput.New()
	fields[FieldAddress].Placeholder = "127.0.0.1"
	fields[FieldAddress].CharLimit = 45 // IPv6 max

	fields[FieldHostnames] = textinput.New()
	fields[FieldHostnames].Placeholder = "myapp.local api.myapp.local"
	fields[FieldHostnames].CharLimit = 512

	return &Form{fields: fields}
}

// Init resets the form for a new entry.
func (f *Form) Init() {
	for i := range f.fields {
		f.fields[i].Reset()
	}
	f.fields[FieldAddress].SetValue("127.0.0.1")
	f.focus = FieldAddress
	f.fields[FieldAddress].Focus()
	f.fields[FieldHostnames].Blur()
}

// SetSize sets the form dimensions.
func (f *Form) SetSize(width, height int) {
	f.width = width
	inputWidth := width - 10
	if inputWidth > 50 {
		inputWidth = 50
	}
	for i := range f.fields {
		f.fields[i].Width = inputWidth
	}
}

// Update handles input events.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.moveFocus(1)
			return nil
		case "shift+tab", "up":
			f.moveFocus(-1)
			return nil
		}
	}

	var cmd tea.Cmd
	f.fields[f.focus], cmd = f.fields[f.focus].Update(msg)
	return cmd
}

func (f *Form) moveFocus(delta FormField) {
	f.fields[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.fields[f.focus].Focus()
}

// Values returns the form values: the address and the hostname list.
func (f *Form) Values() (address string, hostnames []string) {
	address = strings.TrimSpace(f.fields[FieldAddress].Value())
	hostnames = strings.Fields(f.fields[FieldHostnames].Value())
	return address, hostnames
}

// Validate returns a user-facing problem description, or "" when the form
// can be submitted.
func (f *Form) Validate() string {
	address, hostnames := f.Values()

	if address == "" {
		return "Address is required"
	}
	if !config.ValidateIP(address) {
		return "Invalid IP address: " + address
	}
	if len(hostnames) == 0 {
		return "At least one hostname is required"
	}
	for _, h := range hostnames {
		if !config.ValidateHostname(h) {
			return "Invalid hostname: " + h
		}
	}
	return ""
}

// View renders the form.
func (f *Form) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Host Entry"))
	sb.WriteString("\n\n")

	labels := [fieldCount]string{"IP Address:", "Hostnames (space separated):"}
	for i := FormField(0); i < fieldCount; i++ {
		sb.WriteString(inputLabelStyle.Render(labels[i]))
		sb.WriteString("\n")
		style := inputStyle
		if f.focus == i {
			style = inputFocusStyle
		}
		sb.WriteString(style.Render(f.fields[i].View()))
		sb.WriteString("\n\n")
	}

	sb.WriteString(helpDescStyle.Render("Tab/↓ next • Shift+Tab/↑ prev • Enter save • Esc cancel"))

	return dialogStyle.Render(sb.String())
}
