package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otto8-ai/otto-admin/pkg/models"
	"github.com/otto8-ai/otto-admin/pkg/providers"
)

func TestProviderRows(t *testing.T) {
	registered := []models.ModelProvider{
		{Metadata: models.Metadata{ID: "openai-model-provider"}, Name: "OpenAI", Configured: true},
		{
			Metadata:                       models.Metadata{ID: "azure-openai-model-provider"},
			Name:                           "Azure OpenAI",
			MissingConfigurationParameters: []string{"ACORN_AZURE_OPENAI_MODEL_PROVIDER_CLIENT_SECRET"},
		},
		{Metadata: models.Metadata{ID: "groq-model-provider"}, Name: "Groq", Configured: true},
	}

	rows := ProviderRows(registered)
	require.Len(t, rows, len(providers.AllModelProviders())+1)

	assert.Equal(t, "OpenAI", rows[0].Info.Name)
	assert.True(t, rows[0].Configured)

	assert.Equal(t, "Azure OpenAI", rows[1].Info.Name)
	assert.Equal(t, []string{"Client Secret"}, rows[1].Missing)
	assert.True(t, rows[1].Registered)

	assert.False(t, rows[2].Registered, "catalog providers the platform lacks are still listed")

	last := rows[len(rows)-1]
	assert.Equal(t, "groq-model-provider", last.Info.ID)
	assert.Equal(t, "Groq", last.Info.Name)
	assert.Equal(t, providers.UnknownModelProvider, last.Info.Provider)
}

func TestProviderRowsListsUnknownProviderOnce(t *testing.T) {
	groq := models.ModelProvider{Metadata: models.Metadata{ID: "groq-model-provider"}, Name: "Groq"}
	rows := ProviderRows([]models.ModelProvider{groq, groq})

	require.Len(t, rows, len(providers.AllModelProviders())+1)
	assert.Equal(t, "groq-model-provider", rows[len(rows)-1].Info.ID)
}

func TestRenderProviderRow(t *testing.T) {
	rows := ProviderRows([]models.ModelProvider{
		{Metadata: models.Metadata{ID: "openai-model-provider"}, Configured: true},
		{
			Metadata:                       models.Metadata{ID: "azure-openai-model-provider"},
			MissingConfigurationParameters: []string{"A", "B"},
		},
		{Metadata: models.Metadata{ID: "anthropic-model-provider"}},
	})

	assert.Contains(t, renderProviderRow(rows[0]), "★")
	assert.Contains(t, renderProviderRow(rows[0]), "configured")
	assert.Contains(t, renderProviderRow(rows[1]), "missing 2")
	assert.Contains(t, renderProviderRow(rows[2]), "not configured")
	assert.Contains(t, renderProviderRow(rows[3]), "not registered")
}

func TestProvidersModelLoads(t *testing.T) {
	m := NewProvidersModel(fakeProviders{items: []models.ModelProvider{
		{Metadata: models.Metadata{ID: "openai-model-provider"}, Configured: true},
	}}, nil, 0)
	m.SetSize(100, 40)
	drive(t, m, m.Init())

	assert.True(t, m.accordion.IsOpen(SectionModelProviders))
	view := m.View()
	assert.Contains(t, view, "OpenAI")
	assert.Contains(t, view, "OAuth App Types")

	var copied string
	m.clipboard = func(s string) error { copied = s; return nil }
	m.Update(keyDown) // first provider row
	_, cmd := m.Update(runeKey("c"))
	require.NotNil(t, cmd)
	assert.Equal(t, StatusMsg("openai-model-provider → clipboard"), cmd())
	assert.Equal(t, "openai-model-provider", copied)
}
