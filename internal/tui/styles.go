package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tcp_snm/algodex/internal/service/problem_service"
)

var (
	emerald = lipgloss.Color("#10B981")
	amber   = lipgloss.Color("#F59E0B")
	rose    = lipgloss.Color("#F43F5E")
	muted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	accent  = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	mutedStyle = lipgloss.NewStyle().Foreground(muted)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(accent).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().Foreground(rose)

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)
)

// DifficultyColor is the badge colour of a difficulty.
func DifficultyColor(d problem_service.Difficulty) lipgloss.TerminalColor {
	switch d {
	case problem_service.DifficultyEasy:
		return emerald
	case problem_service.DifficultyMedium:
		return amber
	case problem_service.DifficultyHard:
		return rose
	default:
		return muted
	}
}

// DifficultyBadge renders a difficulty in its colour, padded to a fixed width.
func DifficultyBadge(d problem_service.Difficulty) string {
	label := string(d)
	if label == "" {
		label = "?"
	}
	return badgeStyle.
		Width(8).
		Foreground(DifficultyColor(d)).
		Render(label)
}
