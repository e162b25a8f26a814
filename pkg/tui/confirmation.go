package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationType defines the visual style of the confirmation
type ConfirmationType int

const (
	ConfirmTypeInline ConfirmationType = iota // Simple inline message
	ConfirmTypeDialog                         // Full dialog with border and centered layout
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Title       string           // Title for dialog type (optional)
	Message     string           // Main confirmation message
	Destructive bool             // If true, Yes is red, No is green
	Type        ConfirmationType // Visual style
	YesLabel    string           // Custom label for Yes (default: "Yes")
	NoLabel     string           // Custom label for No (default: "No")
	BusyLabel   string           // Shown while an async action runs (default: "Working…")
	Width       int              // Width for dialog type
}

// ConfirmationModel handles confirmation prompts. A prompt opened with
// InterceptAsync stays up in a busy state after "yes" until Done is called.
type ConfirmationModel struct {
	active    bool
	busy      bool
	async     bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
	viewWidth int // Width for centering inline messages
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.busy = false
	m.async = false
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel

	if m.config.YesLabel == "" {
		m.config.YesLabel = "Yes"
	}
	if m.config.NoLabel == "" {
		m.config.NoLabel = "No"
	}
	if m.config.BusyLabel == "" {
		m.config.BusyLabel = "Working…"
	}
}

// InterceptAsync defers action until the user confirms. The prompt then shows
// as busy, ignoring keys, until the owner calls Done with the action's result.
func (m *ConfirmationModel) InterceptAsync(config ConfirmationConfig, action func() tea.Cmd) {
	m.Show(config, action, nil)
	m.async = true
}

// Done closes a busy prompt
func (m *ConfirmationModel) Done() {
	m.busy = false
	m.active = false
}

// Hide deactivates the confirmation
func (m *ConfirmationModel) Hide() {
	m.active = false
	m.busy = false
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Busy reports whether a confirmed async action is still running
func (m *ConfirmationModel) Busy() bool {
	return m.busy
}

// Update handles key events for the confirmation
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active || m.busy {
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		if m.async {
			m.busy = true
		} else {
			m.active = false
		}
		if m.onConfirm != nil {
			return m.onConfirm()
		}
		m.Done()
		return nil

	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
		return nil
	}

	return nil
}

// View renders the confirmation based on its type
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	switch m.config.Type {
	case ConfirmTypeDialog:
		return m.renderDialog()
	default:
		return m.renderInline()
	}
}

// ViewWithWidth renders the confirmation with a specific width for centering
func (m *ConfirmationModel) ViewWithWidth(width int) string {
	m.viewWidth = width
	return m.View()
}

func (m *ConfirmationModel) options() string {
	if m.busy {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render(m.config.BusyLabel)
	}
	return formatConfirmOptions(m.config.Destructive, m.config.YesLabel, m.config.NoLabel)
}

func (m *ConfirmationModel) renderInline() string {
	message := fmt.Sprintf("%s %s", m.config.Message, m.options())

	if m.viewWidth > 0 && lipgloss.Width(message) < m.viewWidth {
		return lipgloss.NewStyle().
			Width(m.viewWidth).
			Align(lipgloss.Center).
			Render(message)
	}
	return message
}

func (m *ConfirmationModel) renderDialog() string {
	borderColor := ColorActive
	if m.config.Destructive {
		borderColor = ColorDanger
	}
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Padding(1, 2)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWarning))

	width := m.config.Width
	if width == 0 {
		width = 60
	}
	contentWidth := width - 6 // border and padding
	center := lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Center)

	var content strings.Builder
	if m.config.Title != "" {
		content.WriteString(center.Render(headerStyle.Render(m.config.Title)))
		content.WriteString("\n\n")
	}
	if m.config.Message != "" {
		content.WriteString(center.Render(m.config.Message))
		content.WriteString("\n\n")
	}
	content.WriteString(center.Render(m.options()))

	return borderStyle.Width(width - 2).Render(content.String())
}

func formatConfirmOptions(destructive bool, yes, no string) string {
	yesColor, noColor := ColorSuccess, ColorDanger
	if destructive {
		yesColor, noColor = ColorDanger, ColorSuccess
	}
	yesStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(yesColor)).Bold(true)
	noStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(noColor)).Bold(true)
	return fmt.Sprintf("[%s] %s  [%s] %s",
		yesStyle.Render("y"), yes,
		noStyle.Render("n"), no)
}
