// Package tui provides an interactive Bubble Tea wizard for importing a
// Y7 novel project and exporting it back to Y7.
package tui

import "github.com/charmbracelet/lipgloss"

// Adaptive colors that work on both light and dark backgrounds.
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#FF06B7", Dark: "#FF06B7"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#00A5D9", Dark: "#00D9FF"}

	colorSuccess = lipgloss.AdaptiveColor{Light: "#00AF87", Dark: "#00D787"}
	colorError   = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F87"}

	colorText    = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#E4E4E4"}
	colorTextDim = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#6C6C6C"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#3A3A3A"}
)

var (
	TitleStyle    = lipgloss.NewStyle().Foreground(colorText)
	SubtitleStyle = lipgloss.NewStyle().Foreground(colorTextDim)
)

var (
	SelectedStyle   = lipgloss.NewStyle().Foreground(colorPrimary).PaddingLeft(1)
	UnselectedStyle = lipgloss.NewStyle().Foreground(colorText).PaddingLeft(1)
	DescStyle       = lipgloss.NewStyle().Foreground(colorTextDim).PaddingLeft(5)
)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	ErrorStyle   = lipgloss.NewStyle().Foreground(colorError)
	InfoStyle    = lipgloss.NewStyle().Foreground(colorAccent)
)

var (
	InputStyle      = lipgloss.NewStyle().Foreground(colorText)
	InputLabelStyle = lipgloss.NewStyle().Foreground(colorText).MarginBottom(1)
)

var (
	HelpStyle    = lipgloss.NewStyle().Foreground(colorTextDim).MarginTop(1)
	HelpKeyStyle = lipgloss.NewStyle().Foreground(colorTextDim)
	HelpSepStyle = lipgloss.NewStyle().Foreground(colorTextDim)
)

var BoxStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(colorBorder).
	Padding(1, 2)

const (
	CheckboxEmpty    = "[ ]"
	CheckboxSelected = "[x]"
)

// FormatHelp renders a help footer like "j/k, up/down: select • enter: choose".
func FormatHelp(items ...string) string {
	result := ""
	for i, item := range items {
		if i > 0 {
			result += HelpSepStyle.Render(" • ")
		}
		result += HelpKeyStyle.Render(item)
	}
	return HelpStyle.Render(result)
}
