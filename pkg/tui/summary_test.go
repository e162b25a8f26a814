package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otto8-ai/otto-admin/pkg/models"
)

func labels(rows []SummaryRow) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.Label)
	}
	return out
}

func TestSummaryRowsForAgentThread(t *testing.T) {
	now := time.Date(2024, 10, 1, 15, 0, 0, 0, time.UTC)
	thread := &models.Thread{
		Metadata:       models.Metadata{ID: "t1abc", Created: now.Add(-3 * time.Hour)},
		AgentID:        "a1xyz",
		State:          models.RunStateRunning,
		CurrentRunID:   "r1",
		ParentThreadID: "t1parent",
		LastRunID:      "r0",
	}
	rows := SummaryRows(thread, models.Entity{ID: "a1xyz", Name: "Helper"}, now)

	assert.Equal(t, []string{"Created", "Agent", "State", "Current Run ID", "Parent Thread ID", "Last Run ID"}, labels(rows))
	assert.Contains(t, rows[0].Value, "3 hours ago")
	assert.Equal(t, "Helper", rows[1].Value)
	assert.Equal(t, "/agents/a1xyz?from=/threads/t1abc", rows[1].Link)
	assert.True(t, rows[2].State)
	assert.Equal(t, "running", rows[2].Value)
	assert.Equal(t, "r1", rows[3].Value)
}

func TestSummaryRowsForWorkflowThread(t *testing.T) {
	now := time.Now()
	thread := &models.Thread{
		Metadata:   models.Metadata{ID: "t2", Created: now},
		WorkflowID: "w1nightly",
		State:      models.RunStateFinished,
	}
	rows := SummaryRows(thread, models.Entity{ID: "w1nightly", Name: "Nightly"}, now)

	require.Len(t, rows, 3, "id rows are omitted when empty")
	assert.Equal(t, "Workflow", rows[1].Label)
	assert.Equal(t, "/workflows/w1nightly", rows[1].Link)
}

func TestSummaryRowsBeforeOwnerLoads(t *testing.T) {
	thread := &models.Thread{Metadata: models.Metadata{ID: "t3"}, AgentID: "a1"}
	rows := SummaryRows(thread, models.Entity{}, time.Now())

	assert.Equal(t, "Agent", rows[1].Label)
	assert.Equal(t, "…", rows[1].Value)
	assert.Empty(t, rows[1].Link)
}

func TestRenderSummary(t *testing.T) {
	now := time.Now()
	thread := &models.Thread{
		Metadata: models.Metadata{ID: "t1", Created: now},
		AgentID:  "a1",
		State:    models.RunStateError,
	}
	out := renderSummary(SummaryRows(thread, models.Entity{ID: "a1", Name: "Helper"}, now), thread.State, 80)

	assert.Contains(t, out, "Created")
	assert.Contains(t, out, "Helper")
	assert.Contains(t, out, "error")
	assert.Contains(t, out, "/agents/a1?from=/threads/t1")
}
