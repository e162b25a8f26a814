package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/otto8-ai/otto-admin/pkg/models"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorVeryDim  = "242" // Even dimmer gray
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorDanger   = "196" // Red for dangerous actions
	ColorSuccess  = "28"  // Green for success
	ColorWhite    = "255" // White
	ColorDark     = "235" // Dark for contrast
	ColorBorder   = "243" // Border gray
	ColorPrimary  = "33"  // Blue for primary actions
	ColorError    = "196" // Red for errors (same as danger)
)

// Common styles
var (
	// Border styles
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorActive))

	InactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorInactive))

	// Selection styles
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	// Section header styles
	SectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(ColorNormal))

	FocusedHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(ColorActive))

	// Summary table styles
	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorDim))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	LinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimary)).
			Underline(true)

	SummaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(0, 1)

	// Row styles
	SkeletonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSelected))

	EmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorVeryDim)).
			Italic(true)

	// Description styles
	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim))

	// Error style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))

	// Cursor style
	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Bold(true)

	// Help border style (always inactive looking)
	HelpBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorInactive))
)

// RunStateColor maps a thread's run state to its badge color
func RunStateColor(state models.RunState) string {
	switch state {
	case models.RunStateCreating, models.RunStateContinue:
		return ColorPrimary
	case models.RunStateRunning:
		return ColorActive
	case models.RunStateWaiting:
		return ColorWarning
	case models.RunStateFinished:
		return ColorSuccess
	case models.RunStateError:
		return ColorDanger
	default:
		return ColorInactive
	}
}

// GetRunStateBadgeStyle renders the state as a filled badge
func GetRunStateBadgeStyle(state models.RunState) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(RunStateColor(state))).
		Foreground(lipgloss.Color(ColorWhite)).
		Padding(0, 1).
		Bold(true)
}

// Dynamic styles that depend on state
func GetActiveHeaderStyle(isActive bool) lipgloss.Style {
	if isActive {
		return FocusedHeaderStyle
	}
	return SectionHeaderStyle
}
