// Package providers holds the static catalog of model providers and OAuth
// application types the admin surfaces know how to present.
package providers

import "strings"

// ModelProvider identifies a model provider known to the catalog
type ModelProvider int

const (
	UnknownModelProvider ModelProvider = iota
	Ollama
	Rubra
	Voyage
	Anthropic
	OpenAI
	AzureOpenAI
)

// Field is a configuration parameter of a model provider
type Field struct {
	// EnvVar is the parameter as stored by the platform
	EnvVar string `json:"envVar" yaml:"env_var"`
	// Label is the name shown in forms
	Label string `json:"label" yaml:"label"`
	// Tooltip explains what to enter. Empty when the label speaks for itself.
	Tooltip string `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
	// Sensitive values are masked on display
	Sensitive bool `json:"sensitive" yaml:"sensitive"`
}

// ModelProviderInfo is the display metadata of one provider
type ModelProviderInfo struct {
	Provider    ModelProvider
	ID          string
	Name        string
	Link        string
	ConfigLink  string
	Recommended bool
	Fields      []Field
}

// AllModelProviders lists every known provider in display order
func AllModelProviders() []ModelProvider {
	return []ModelProvider{OpenAI, AzureOpenAI, Anthropic, Voyage, Ollama, Rubra}
}

// ParseModelProvider maps a platform provider id such as
// "openai-model-provider" to its catalog entry. Unknown ids map to
// UnknownModelProvider.
func ParseModelProvider(id string) ModelProvider {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, p := range AllModelProviders() {
		if p.ID() == id {
			return p
		}
	}
	return UnknownModelProvider
}

func (p ModelProvider) ID() string {
	switch p {
	case Ollama:
		return "ollama-model-provider"
	case Rubra:
		return "rubra-model-provider"
	case Voyage:
		return "voyage-model-provider"
	case Anthropic:
		return "anthropic-model-provider"
	case OpenAI:
		return "openai-model-provider"
	case AzureOpenAI:
		return "azure-openai-model-provider"
	default:
		return ""
	}
}

func (p ModelProvider) String() string {
	return p.Info().Name
}

// Info returns the catalog entry. UnknownModelProvider yields a generic entry
// with no link and no known fields.
func (p ModelProvider) Info() ModelProviderInfo {
	switch p {
	case Ollama:
		return ModelProviderInfo{
			Provider: p, ID: p.ID(), Name: "Ollama",
			Link: "https://ollama.com/",
			Fields: []Field{
				{EnvVar: "ACORN_OLLAMA_MODEL_PROVIDER_HOST", Label: "Host", Sensitive: true,
					Tooltip: "IP Address for the ollama server (eg. 127.0.0.1:1234)"},
			},
		}
	case Rubra:
		return ModelProviderInfo{
			Provider: p, ID: p.ID(), Name: "Rubra",
			Link: "https://rubra.ai/",
			Fields: []Field{
				{EnvVar: "ACORN_RUBRA_MODEL_PROVIDER_HOST", Label: "Host", Sensitive: true,
					Tooltip: "IP Address for the rubra server (eg. localhost:1234/v1/)"},
			},
		}
	case Voyage:
		return ModelProviderInfo{
			Provider: p, ID: p.ID(), Name: "Voyage AI",
			Link: "https://www.voyageai.com/",
			Fields: []Field{
				{EnvVar: "ACORN_VOYAGE_MODEL_PROVIDER_API_KEY", Label: "API Key", Sensitive: true},
			},
		}
	case Anthropic:
		return ModelProviderInfo{
			Provider: p, ID: p.ID(), Name: "Anthropic",
			Link: "https://www.anthropic.com",
			Fields: []Field{
				{EnvVar: "ACORN_ANTHROPIC_MODEL_PROVIDER_API_KEY", Label: "API Key", Sensitive: true},
			},
		}
	case OpenAI:
		return ModelProviderInfo{
			Provider: p, ID: p.ID(), Name: "OpenAI",
			Link:        "https://openai.com/",
			Recommended: true,
			Fields: []Field{
				{EnvVar: "ACORN_OPENAI_MODEL_PROVIDER_API_KEY", Label: "API Key", Sensitive: true},
			},
		}
	case AzureOpenAI:
		return ModelProviderInfo{
			Provider: p, ID: p.ID(), Name: "Azure OpenAI",
			Link:        "https://azure.microsoft.com/en-us/explore/",
			ConfigLink:  "https://docs.otto8.ai/configuration/model-providers#azure-openai",
			Recommended: true,
			Fields: []Field{
				{EnvVar: "ACORN_AZURE_OPENAI_MODEL_PROVIDER_ENDPOINT", Label: "Endpoint",
					Tooltip: "Endpoint for the Azure OpenAI service (eg. https://<resource-name>.<region>.api.cognitive.microsoft.com/)"},
				{EnvVar: "ACORN_AZURE_OPENAI_MODEL_PROVIDER_CLIENT_ID", Label: "Client Id",
					Tooltip: "Unique identifier for the application when using Azure Active Directory. Can typically be found in App Registrations > [application]."},
				{EnvVar: "ACORN_AZURE_OPENAI_MODEL_PROVIDER_CLIENT_SECRET", Label: "Client Secret", Sensitive: true,
					Tooltip: "Password or key that app uses to authenticate with Azure Active Directory. Can typically be found in App Registrations > [application] > Certificates & Secrets"},
				{EnvVar: "ACORN_AZURE_OPENAI_MODEL_PROVIDER_TENANT_ID", Label: "Tenant Id",
					Tooltip: "Identifier of instance where the app and resources reside. Can typically be found in Azure Active Directory > Overview > Directory ID"},
				{EnvVar: "ACORN_AZURE_OPENAI_MODEL_PROVIDER_SUBSCRIPTION_ID", Label: "Subscription Id",
					Tooltip: "Identifier of user's Azure subscription. Can typically be found in Azure Portal > Subscriptions > Overview."},
				{EnvVar: "ACORN_AZURE_OPENAI_MODEL_PROVIDER_RESOURCE_GROUP", Label: "Resource Group",
					Tooltip: "Container that holds related Azure resources. Can typically be found in Azure Portal > Resource Groups > [OpenAI Resource Group] > Overview"},
			},
		}
	default:
		return ModelProviderInfo{Provider: UnknownModelProvider, Name: "Unknown provider"}
	}
}

// Tooltip returns the help text for a field label, if the provider has one
func (p ModelProvider) Tooltip(label string) (string, bool) {
	for _, f := range p.Info().Fields {
		if strings.EqualFold(f.Label, label) && f.Tooltip != "" {
			return f.Tooltip, true
		}
	}
	return "", false
}

// IsSensitive reports whether a configuration parameter must be masked.
// Parameters the catalog does not know are treated as sensitive.
func IsSensitive(envVar string) bool {
	for _, p := range AllModelProviders() {
		for _, f := range p.Info().Fields {
			if f.EnvVar == envVar {
				return f.Sensitive
			}
		}
	}
	return true
}

// Mask hides the value of a sensitive parameter
func Mask(envVar, value string) string {
	if value == "" || !IsSensitive(envVar) {
		return value
	}
	runes := []rune(value)
	if len(runes) <= 8 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:4]) + strings.Repeat("*", len(runes)-4)
}

// LabelFor converts a platform parameter name to the field label, e.g.
// ACORN_AZURE_OPENAI_MODEL_PROVIDER_CLIENT_ID -> "Client Id" for Azure OpenAI
func (p ModelProvider) LabelFor(envVar string) string {
	for _, f := range p.Info().Fields {
		if f.EnvVar == envVar {
			return f.Label
		}
	}
	return envVar
}
