package cli

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otto8-ai/otto-admin/internal/config"
)

func TestCommandContextLoadsOnce(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	v := viper.New()
	v.Set(config.KeyURL, "http://otto.test/api")
	v.Set(config.KeyToken, "secret")
	c := NewCommandContext(v)

	settings, err := c.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "http://otto.test/api", settings.API.URL)

	again, err := c.LoadSettings()
	require.NoError(t, err)
	assert.Same(t, settings, again)

	client, err := c.Client()
	require.NoError(t, err)
	assert.Equal(t, "http://otto.test/api", client.BaseURL())

	second, err := c.Client()
	require.NoError(t, err)
	assert.Same(t, client, second)
}

func TestCommandContextReportsInvalidSettings(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	v := viper.New()
	v.Set("ui.page_size", 0)
	c := NewCommandContext(v)

	_, err := c.Client()
	assert.ErrorContains(t, err, "page_size")
	assert.NotNil(t, c.LoadSettingsWithDefault())
}
