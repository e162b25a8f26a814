package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const headerHeight = 1

func renderHeader(width int, title, version string) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")). // Pink/magenta color
		Bold(true)

	versionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDim))

	logo := logoStyle.Render("otto⁸ admin")
	if version != "" {
		logo += " " + versionStyle.Render(version)
	}

	titleRendered := logoStyle.Render(title)

	// Title on the left, logo on the right
	contentWidth := width - 2
	gap := contentWidth - lipgloss.Width(titleRendered) - lipgloss.Width(logo)
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1).
		Render(lipgloss.JoinHorizontal(
			lipgloss.Top,
			titleRendered,
			lipgloss.NewStyle().Width(gap).Render(""),
			logo,
		))
}
