package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestConfirmationYesAndNo(t *testing.T) {
	tests := []struct {
		name      string
		key       tea.KeyMsg
		confirmed bool
		cancelled bool
	}{
		{"y confirms", runeKey("y"), true, false},
		{"Y confirms", runeKey("Y"), true, false},
		{"n cancels", runeKey("n"), false, true},
		{"esc cancels", keyEsc, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var confirmed, cancelled bool
			m := NewConfirmation()
			m.Show(ConfirmationConfig{Message: "Delete?", Destructive: true},
				func() tea.Cmd { confirmed = true; return nil },
				func() tea.Cmd { cancelled = true; return nil })

			m.Update(tt.key)
			assert.Equal(t, tt.confirmed, confirmed)
			assert.Equal(t, tt.cancelled, cancelled)
			assert.False(t, m.Active())
		})
	}
}

func TestConfirmationIgnoresOtherKeys(t *testing.T) {
	m := NewConfirmation()
	m.Show(ConfirmationConfig{Message: "Delete?"}, nil, nil)

	assert.Nil(t, m.Update(runeKey("x")))
	assert.True(t, m.Active())
}

func TestInactiveConfirmation(t *testing.T) {
	m := NewConfirmation()
	assert.Nil(t, m.Update(runeKey("y")))
	assert.Empty(t, m.View())
}

func TestInterceptAsync(t *testing.T) {
	runs := 0
	m := NewConfirmation()
	m.InterceptAsync(ConfirmationConfig{
		Title:       "Delete Credential?",
		Message:     "You will need to re-authenticate to use any tools that require this credential.",
		Destructive: true,
		Type:        ConfirmTypeDialog,
		BusyLabel:   "Deleting…",
	}, func() tea.Cmd {
		runs++
		return func() tea.Msg { return nil }
	})

	assert.Equal(t, 0, runs, "nothing runs before the user answers")
	view := m.View()
	assert.Contains(t, view, "Delete Credential?")
	assert.Contains(t, view, "authenticate")

	assert.NotNil(t, m.Update(runeKey("y")))
	assert.Equal(t, 1, runs)
	assert.True(t, m.Active(), "the prompt stays up while the action runs")
	assert.True(t, m.Busy())
	assert.Contains(t, m.View(), "Deleting…")

	// Keys are ignored while busy
	m.Update(runeKey("y"))
	m.Update(keyEsc)
	assert.Equal(t, 1, runs)
	assert.True(t, m.Busy())

	m.Done()
	assert.False(t, m.Active())
	assert.False(t, m.Busy())
}

func TestInterceptAsyncCancel(t *testing.T) {
	runs := 0
	m := NewConfirmation()
	m.InterceptAsync(ConfirmationConfig{Message: "Delete?"}, func() tea.Cmd { runs++; return nil })

	m.Update(runeKey("n"))
	assert.Equal(t, 0, runs)
	assert.False(t, m.Active())
}

func TestInlineViewCentersWithinWidth(t *testing.T) {
	m := NewConfirmation()
	m.Show(ConfirmationConfig{Message: "Delete?", Destructive: true}, nil, nil)

	view := m.ViewWithWidth(80)
	assert.Contains(t, view, "Delete?")
	assert.Contains(t, view, "Yes")
	assert.Contains(t, view, "No")
}
