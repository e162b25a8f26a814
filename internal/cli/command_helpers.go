package cli

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/otto8-ai/otto-admin/internal/config"
	"github.com/otto8-ai/otto-admin/pkg/api"
	"github.com/otto8-ai/otto-admin/pkg/models"
)

// apiRetries is how often the CLI retries transport failures and 5xx responses
const apiRetries = 2

// CommandContext loads settings and the API client once per invocation
type CommandContext struct {
	Settings *models.Settings
	viper    *viper.Viper
	client   *api.Client
}

// NewCommandContext creates a new command context backed by v, which holds
// the bound command line flags
func NewCommandContext(v *viper.Viper) *CommandContext {
	if v == nil {
		v = viper.New()
	}
	return &CommandContext{viper: v}
}

// Viper returns the configuration the context reads from
func (c *CommandContext) Viper() *viper.Viper {
	return c.viper
}

// LoadSettings reads config file, environment and flags
func (c *CommandContext) LoadSettings() (*models.Settings, error) {
	if c.Settings != nil {
		return c.Settings, nil
	}

	settings, err := config.Load(c.viper)
	if err != nil {
		return nil, err
	}

	c.Settings = settings
	return settings, nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	settings, err := c.LoadSettings()
	if err != nil {
		return models.DefaultSettings()
	}
	return settings
}

// Client returns the API client for the configured platform
func (c *CommandContext) Client() (*api.Client, error) {
	if c.client != nil {
		return c.client, nil
	}

	settings, err := c.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	c.client = api.NewClient(settings.API.URL, settings.API.Token,
		api.WithTimeout(settings.API.Timeout),
		api.WithRetries(apiRetries),
	)
	return c.client, nil
}
