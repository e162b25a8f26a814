package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryModelProviderHasCatalogEntry(t *testing.T) {
	for _, p := range AllModelProviders() {
		info := p.Info()
		assert.Equal(t, p, info.Provider, "provider %d", p)
		assert.NotEmpty(t, info.ID)
		assert.NotEmpty(t, info.Name)
		assert.NotEmpty(t, info.Link, "%s has no link", info.Name)
		assert.NotEmpty(t, info.Fields, "%s has no fields", info.Name)
		assert.Equal(t, p, ParseModelProvider(info.ID))
	}
}

func TestUnknownModelProviderFallback(t *testing.T) {
	p := ParseModelProvider("mystery-model-provider")
	assert.Equal(t, UnknownModelProvider, p)
	assert.Equal(t, "Unknown provider", p.String())
	assert.Empty(t, p.Info().Link)
	assert.Empty(t, p.ID())
}

func TestRecommendedProviders(t *testing.T) {
	var recommended []ModelProvider
	for _, p := range AllModelProviders() {
		if p.Info().Recommended {
			recommended = append(recommended, p)
		}
	}
	assert.Equal(t, []ModelProvider{OpenAI, AzureOpenAI}, recommended)
	assert.NotEmpty(t, AzureOpenAI.Info().ConfigLink)
}

func TestTooltips(t *testing.T) {
	tip, ok := Ollama.Tooltip("Host")
	assert.True(t, ok)
	assert.Contains(t, tip, "ollama server")

	tip, ok = AzureOpenAI.Tooltip("client secret")
	assert.True(t, ok)
	assert.Contains(t, tip, "Certificates & Secrets")

	_, ok = OpenAI.Tooltip("API Key")
	assert.False(t, ok, "no tooltip for self-explanatory fields")
}

func TestSensitivity(t *testing.T) {
	tests := map[string]bool{
		"ACORN_OPENAI_MODEL_PROVIDER_API_KEY":               true,
		"ACORN_AZURE_OPENAI_MODEL_PROVIDER_ENDPOINT":        false,
		"ACORN_AZURE_OPENAI_MODEL_PROVIDER_CLIENT_ID":       false,
		"ACORN_AZURE_OPENAI_MODEL_PROVIDER_CLIENT_SECRET":   true,
		"ACORN_AZURE_OPENAI_MODEL_PROVIDER_TENANT_ID":       false,
		"ACORN_AZURE_OPENAI_MODEL_PROVIDER_SUBSCRIPTION_ID": false,
		"ACORN_AZURE_OPENAI_MODEL_PROVIDER_RESOURCE_GROUP":  false,
		"ACORN_ANTHROPIC_MODEL_PROVIDER_API_KEY":            true,
		"ACORN_VOYAGE_MODEL_PROVIDER_API_KEY":               true,
		"ACORN_OLLAMA_MODEL_PROVIDER_HOST":                  true,
		"ACORN_RUBRA_MODEL_PROVIDER_HOST":                   true,
		"SOMETHING_NEW":                                     true,
	}
	for envVar, want := range tests {
		assert.Equal(t, want, IsSensitive(envVar), envVar)
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "sk-p**********", Mask("ACORN_OPENAI_MODEL_PROVIDER_API_KEY", "sk-proj-abcdef"))
	assert.Equal(t, "*****", Mask("ACORN_VOYAGE_MODEL_PROVIDER_API_KEY", "short"))
	assert.Equal(t, "my-group", Mask("ACORN_AZURE_OPENAI_MODEL_PROVIDER_RESOURCE_GROUP", "my-group"))
	assert.Equal(t, "", Mask("ACORN_OPENAI_MODEL_PROVIDER_API_KEY", ""))
	assert.Equal(t, "ключ*********", Mask("ACORN_OPENAI_MODEL_PROVIDER_API_KEY", "ключ-секрет-1"))
	assert.Equal(t, "******", Mask("ACORN_OPENAI_MODEL_PROVIDER_API_KEY", "секрет"))
}

func TestLabelFor(t *testing.T) {
	assert.Equal(t, "Tenant Id", AzureOpenAI.LabelFor("ACORN_AZURE_OPENAI_MODEL_PROVIDER_TENANT_ID"))
	assert.Equal(t, "OTHER", AzureOpenAI.LabelFor("OTHER"))
}

func TestOAuthIcons(t *testing.T) {
	seen := map[string]OAuthProvider{}
	for _, p := range AllOAuthProviders() {
		icon := p.Icon()
		assert.NotEmpty(t, icon)
		if p != OAuthCustom {
			assert.NotEqual(t, keyIcon, icon, "%s falls back to the key icon", p)
		}
		if other, dup := seen[icon]; dup {
			t.Errorf("%s and %s share icon %q", p, other, icon)
		}
		seen[icon] = p
		if p != OAuthCustom {
			assert.NotEqual(t, "Custom", p.DisplayName())
		}
	}
	assert.Equal(t, keyIcon, OAuthCustom.Icon())
	assert.Equal(t, keyIcon, OAuthProvider("gitlab").Icon(), "unknown types use the key icon")
}

func TestParseOAuthProvider(t *testing.T) {
	assert.Equal(t, OAuthGitHub, ParseOAuthProvider(" GitHub "))
	assert.Equal(t, OAuthMicrosoft365, ParseOAuthProvider("microsoft365"))
	assert.Equal(t, OAuthCustom, ParseOAuthProvider("gitlab"))
	assert.False(t, OAuthProvider("gitlab").Known())
}

func TestCheckMissingConfiguration(t *testing.T) {
	c := NewChecker()
	report := c.Check(context.Background(), AzureOpenAI, map[string]string{
		"ACORN_AZURE_OPENAI_MODEL_PROVIDER_ENDPOINT": "https://example.openai.azure.com/",
	})

	require.Len(t, report.Checks, 2)
	assert.Equal(t, StatusFail, report.Checks[0].Status)
	assert.Contains(t, report.Checks[0].Message, "Client Secret")
	assert.Equal(t, StatusSkip, report.Checks[1].Status)
	assert.False(t, report.Passed())
}

func TestCheckUnknownProvider(t *testing.T) {
	report := NewChecker().Check(context.Background(), UnknownModelProvider, nil)
	assert.False(t, report.Passed())
}

func TestCheckOllama(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	host := strings.TrimPrefix(srv.URL, "http://")
	report := NewChecker(WithProbeTimeout(5*time.Second)).
		Check(context.Background(), Ollama, map[string]string{"ACORN_OLLAMA_MODEL_PROVIDER_HOST": host})

	require.Len(t, report.Checks, 2)
	assert.True(t, report.Passed(), "%+v", report.Checks)
}

func TestCheckOpenAI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-good" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": "bad key"}})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"id": "gpt-4o", "object": "model", "created": 0, "owned_by": "openai"},
			},
		})
	}))
	defer srv.Close()

	c := NewChecker(WithBaseURLs(srv.URL+"/", "", ""))

	good := c.Check(context.Background(), OpenAI, map[string]string{"ACORN_OPENAI_MODEL_PROVIDER_API_KEY": "sk-good"})
	assert.True(t, good.Passed(), "%+v", good.Checks)
	assert.Equal(t, "1 model(s) available", good.Checks[1].Message)

	bad := c.Check(context.Background(), OpenAI, map[string]string{"ACORN_OPENAI_MODEL_PROVIDER_API_KEY": "sk-bad"})
	assert.False(t, bad.Passed())
}

func TestCheckAnthropic(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("X-Api-Key") != "sk-ant-good" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"type":  "error",
				"error": map[string]string{"type": "authentication_error", "message": "invalid x-api-key"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"id": "claude-a", "type": "model", "display_name": "A", "created_at": "2025-02-19T00:00:00Z"},
				{"id": "claude-b", "type": "model", "display_name": "B", "created_at": "2024-10-22T00:00:00Z"},
			},
			"has_more": false,
			"first_id": "claude-a",
			"last_id":  "claude-b",
		})
	}))
	defer srv.Close()

	c := NewChecker(WithBaseURLs("", srv.URL+"/", ""))

	good := c.Check(context.Background(), Anthropic, map[string]string{"ACORN_ANTHROPIC_MODEL_PROVIDER_API_KEY": "sk-ant-good"})
	assert.True(t, good.Passed(), "%+v", good.Checks)
	require.Len(t, good.Checks, 2)
	assert.Equal(t, "2 model(s) available", good.Checks[1].Message)
	assert.Equal(t, "/v1/models", paths[0])

	bad := c.Check(context.Background(), Anthropic, map[string]string{"ACORN_ANTHROPIC_MODEL_PROVIDER_API_KEY": "sk-ant-bad"})
	assert.False(t, bad.Passed())
	assert.Equal(t, StatusFail, bad.Checks[1].Status)
}

func TestWithScheme(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:11434", withScheme("127.0.0.1:11434"))
	assert.Equal(t, "https://ollama.internal", withScheme("https://ollama.internal"))
}
