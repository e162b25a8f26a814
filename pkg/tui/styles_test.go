package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/otto8-ai/otto-admin/pkg/models"
)

func TestColorConstants(t *testing.T) {
	tests := []struct {
		name  string
		color string
		value string
	}{
		{"ColorActive", ColorActive, "170"},
		{"ColorInactive", ColorInactive, "240"},
		{"ColorSelected", ColorSelected, "236"},
		{"ColorNormal", ColorNormal, "245"},
		{"ColorWarning", ColorWarning, "214"},
		{"ColorDanger", ColorDanger, "196"},
		{"ColorSuccess", ColorSuccess, "28"},
		{"ColorPrimary", ColorPrimary, "33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != tt.color {
				t.Errorf("expected %s, got %s", tt.value, tt.color)
			}
		})
	}
}

func TestStaticStyles(t *testing.T) {
	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"ActiveBorderStyle", ActiveBorderStyle},
		{"InactiveBorderStyle", InactiveBorderStyle},
		{"SelectedStyle", SelectedStyle},
		{"NormalStyle", NormalStyle},
		{"SectionHeaderStyle", SectionHeaderStyle},
		{"FocusedHeaderStyle", FocusedHeaderStyle},
		{"LabelStyle", LabelStyle},
		{"ValueStyle", ValueStyle},
		{"LinkStyle", LinkStyle},
		{"SummaryBoxStyle", SummaryBoxStyle},
		{"SkeletonStyle", SkeletonStyle},
		{"EmptyStyle", EmptyStyle},
		{"DescriptionStyle", DescriptionStyle},
		{"ErrorStyle", ErrorStyle},
		{"CursorStyle", CursorStyle},
		{"HelpBorderStyle", HelpBorderStyle},
	}

	for _, tt := range styles {
		t.Run(tt.name, func(t *testing.T) {
			if output := tt.style.Render("test"); output == "" {
				t.Errorf("Style %s rendered empty output", tt.name)
			}
		})
	}
}

func TestRunStateColor(t *testing.T) {
	tests := []struct {
		state    models.RunState
		expected string
	}{
		{models.RunStateCreating, ColorPrimary},
		{models.RunStateRunning, ColorActive},
		{models.RunStateWaiting, ColorWarning},
		{models.RunStateContinue, ColorPrimary},
		{models.RunStateFinished, ColorSuccess},
		{models.RunStateError, ColorDanger},
		{models.RunState("paused"), ColorInactive},
		{models.RunState(""), ColorInactive},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := RunStateColor(tt.state); got != tt.expected {
				t.Errorf("RunStateColor(%q) = %s, want %s", tt.state, got, tt.expected)
			}
			if GetRunStateBadgeStyle(tt.state).Render("x") == "" {
				t.Errorf("badge for %q rendered empty output", tt.state)
			}
		})
	}
}

func TestGetActiveHeaderStyle(t *testing.T) {
	if GetActiveHeaderStyle(true).Render("Files") == "" {
		t.Error("active header rendered empty output")
	}
	if GetActiveHeaderStyle(false).Render("Files") == "" {
		t.Error("inactive header rendered empty output")
	}
}
