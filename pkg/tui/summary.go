package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/otto8-ai/otto-admin/pkg/models"
)

// SummaryRow is one label/value line of the thread summary
type SummaryRow struct {
	Label string
	Value string
	// Link is the dashboard path shown next to the value, if any
	Link string
	// State marks the row whose value is rendered as a run-state badge
	State bool
}

// SummaryRows lists what the summary table shows for a thread. Id rows are
// omitted when the thread has no such id.
func SummaryRows(thread *models.Thread, entity models.Entity, now time.Time) []SummaryRow {
	created := thread.Created.Local().Format("2006-01-02 15:04:05")
	if !thread.Created.IsZero() {
		created += " (" + humanize.RelTime(thread.Created, now, "ago", "from now") + ")"
	}

	kind := "Agent"
	if thread.AgentID == "" {
		kind = "Workflow"
	}
	name := entity.Name
	link := ""
	if entity.ID != "" {
		kind = entity.Kind()
		link = entity.Link(thread.ID)
	} else {
		name = "…"
	}

	rows := []SummaryRow{
		{Label: "Created", Value: created},
		{Label: kind, Value: name, Link: link},
		{Label: "State", Value: string(thread.State), State: true},
	}
	if thread.CurrentRunID != "" {
		rows = append(rows, SummaryRow{Label: "Current Run ID", Value: thread.CurrentRunID})
	}
	if thread.ParentThreadID != "" {
		rows = append(rows, SummaryRow{Label: "Parent Thread ID", Value: thread.ParentThreadID})
	}
	if thread.LastRunID != "" {
		rows = append(rows, SummaryRow{Label: "Last Run ID", Value: thread.LastRunID})
	}
	return rows
}

// renderSummary draws the rows as a two column table, values right-aligned
func renderSummary(rows []SummaryRow, state models.RunState, width int) string {
	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.Label))
	}
	inner := max(width-4, labelWidth+12) // border and padding

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := LabelStyle.Render(r.Label)

		var value string
		switch {
		case r.State:
			value = GetRunStateBadgeStyle(state).Render(r.Value)
		case r.Link != "":
			value = ValueStyle.Render(r.Value) + " " + LinkStyle.Render(r.Link)
		default:
			value = ValueStyle.Render(r.Value)
		}

		gap := inner - lipgloss.Width(label) - lipgloss.Width(value)
		if gap < 1 {
			value = truncateName(r.Value, max(inner-lipgloss.Width(label)-1, 1))
			gap = 1
		}
		lines = append(lines, label+strings.Repeat(" ", gap)+value)
	}
	return SummaryBoxStyle.Width(inner + 2).Render(strings.Join(lines, "\n"))
}
