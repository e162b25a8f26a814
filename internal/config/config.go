// Package config loads otto-admin settings from the config file, the
// environment and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/otto8-ai/otto-admin/pkg/models"
)

const (
	// EnvPrefix prefixes every environment override, e.g. OTTO_ADMIN_API_URL
	EnvPrefix = "OTTO_ADMIN"
	// FileName is the config file name without extension
	FileName = "otto-admin"
)

// Flag keys bound by the root command
const (
	KeyConfigFile = "config"
	KeyURL        = "api.url"
	KeyToken      = "api.token"
	KeyLogLevel   = "log.level"
	KeyLogFile    = "log.file"
)

// SetDefaults registers the default settings on v
func SetDefaults(v *viper.Viper) {
	d := models.DefaultSettings()
	v.SetDefault("api.url", d.API.URL)
	v.SetDefault("api.token", d.API.Token)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("ui.page_size", d.UI.PageSize)
	v.SetDefault("ui.search_debounce", d.UI.SearchDebounce)
	v.SetDefault("ui.cache_size", d.UI.CacheSize)
	v.SetDefault("ui.cache_ttl", d.UI.CacheTTL)
	v.SetDefault("download.dir", d.Download.Dir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// Load reads settings into v and decodes them. A .env file in the working
// directory is loaded first; a missing .env or config file is not an error.
func Load(v *viper.Viper) (*models.Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := v.GetString(KeyConfigFile); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	settings := &models.Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := Validate(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate rejects settings the client cannot work with
func Validate(s *models.Settings) error {
	if strings.TrimSpace(s.API.URL) == "" {
		return fmt.Errorf("api.url must be set (flag --url or %s_API_URL)", EnvPrefix)
	}
	if s.UI.PageSize <= 0 {
		return fmt.Errorf("ui.page_size must be positive, got %d", s.UI.PageSize)
	}
	return nil
}
