package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#2E9E6A")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorWarning = lipgloss.Color("#F4B400")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#6B7280")
)

var styles = struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Done    lipgloss.Style
	Pending lipgloss.Style

	Success lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Foreground(colorMuted),
	Done:    lipgloss.NewStyle().Foreground(colorSuccess).Strikethrough(true),
	Pending: lipgloss.NewStyle(),

	Success: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSuccess).Padding(0, 1),
	Info:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorInfo).Padding(0, 1),
	Warning: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorWarning).Padding(0, 1),
	Error:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorError).Padding(0, 1),
}

type bannerKind int

const (
	bannerSuccess bannerKind = iota
	bannerInfo
	bannerWarning
	bannerError
)

// banner renders msg in a bordered box colored by kind.
func banner(kind bannerKind, msg string) string {
	switch kind {
	case bannerSuccess:
		return styles.Success.Render("✓ " + msg)
	case bannerWarning:
		return styles.Warning.Render("⚠ " + msg)
	case bannerError:
		return styles.Error.Render("✗ " + msg)
	default:
		return styles.Info.Render(msg)
	}
}
