// Package tui provides the terminal user interface.
package tui

import "github.com/charmbracelet/lipgloss"

// Colors, tuned for dark terminals.
var (
	colorPrimary    = lipgloss.Color("39")  // Blue
	colorSuccess    = lipgloss.Color("42")  // Green
	colorWarning    = lipgloss.Color("220") // Yellow
	colorError      = lipgloss.Color("196") // Red
	colorMuted      = lipgloss.Color("245") // Gray
	colorHeader     = lipgloss.Color("220") // Yellow for headers
	colorSelectedBg = lipgloss.Color("236") // Gray background for selection
	colorSelectedFg = lipgloss.Color("255") // White foreground for selection
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHeader).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorHeader).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorMsgStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true).
			MarginTop(1)

	successMsgStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			MarginTop(1)

	inputLabelStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	inputFocusStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)
)
