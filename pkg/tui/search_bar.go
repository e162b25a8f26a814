package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SearchBar is a reusable search component with consistent styling
type SearchBar struct {
	input    textinput.Model
	isActive bool
	width    int
}

// NewSearchBar creates a new search bar component
func NewSearchBar() *SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search"
	ti.CharLimit = 100
	ti.Width = 40 // Default width, will be adjusted
	ti.Cursor.SetMode(cursor.CursorStatic)

	return &SearchBar{
		input: ti,
	}
}

// SetActive sets whether the search bar has the keyboard
func (s *SearchBar) SetActive(active bool) tea.Cmd {
	s.isActive = active
	if active {
		return s.input.Focus()
	}
	s.input.Blur()
	return nil
}

// Active reports whether the search bar has the keyboard
func (s *SearchBar) Active() bool {
	return s.isActive
}

// SetWidth sets the width for the search bar
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	// icon (3) + space (1) + border (2) + padding (2)
	if w := width - 8; w > 0 {
		s.input.Width = w
	}
}

// Value returns the current search text
func (s *SearchBar) Value() string {
	return s.input.Value()
}

// SetValue sets the search text
func (s *SearchBar) SetValue(value string) {
	s.input.SetValue(value)
}

// Update forwards msg to the input and reports whether the text changed
func (s *SearchBar) Update(msg tea.Msg) (bool, tea.Cmd) {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s.input.Value() != before, cmd
}

// View renders the search bar with consistent styling
func (s *SearchBar) View() string {
	borderColor := ColorInactive
	if s.isActive {
		borderColor = ColorActive
	}

	searchStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Padding(0, 1)
	if s.width > 2 {
		searchStyle = searchStyle.Width(s.width - 2)
	}

	var searchIcon string
	if s.isActive {
		// Active: white icon on purple background
		searchIcon = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorActive)).
			Foreground(lipgloss.Color(ColorWhite)).
			Bold(true).
			Padding(0, 1).
			Render("⌕")
	} else {
		// Same width as the active icon
		searchIcon = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal)).
			Bold(true).
			Render(" ⌕ ")
	}

	searchContent := lipgloss.JoinHorizontal(lipgloss.Center, searchIcon, " ", s.input.View())
	return searchStyle.Render(searchContent)
}

// Reset clears the search input
func (s *SearchBar) Reset() {
	s.input.SetValue("")
}
