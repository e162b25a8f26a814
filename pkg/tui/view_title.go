package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// ViewTitle creates a standardized title component with consistent styling
type ViewTitle struct {
	text string
}

// NewViewTitle creates a new view title with the given text
func NewViewTitle(text string) *ViewTitle {
	return &ViewTitle{text: text}
}

// View renders the title with consistent styling
func (v *ViewTitle) View() string {
	if v.text == "" {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWhite)).
		Background(lipgloss.Color("0")).
		Bold(true).
		Padding(0, 1)

	// Blank lines above and below keep every title the same height
	return titleStyle.Render("\n" + v.text + "\n")
}

// ViewWithAlignment renders the title left-aligned within width
func (v *ViewTitle) ViewWithAlignment(width int) string {
	if v.text == "" {
		return ""
	}

	alignStyle := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)
	if width > 0 {
		alignStyle = alignStyle.Width(width)
	}
	return alignStyle.Render(v.View())
}

// ViewTitleHeight returns the consistent height of view titles
func ViewTitleHeight() int {
	return 3
}
