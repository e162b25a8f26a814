package models

import "time"

// Settings represents the application configuration
type Settings struct {
	API      APISettings      `yaml:"api" mapstructure:"api"`
	UI       UISettings       `yaml:"ui" mapstructure:"ui"`
	Download DownloadSettings `yaml:"download" mapstructure:"download"`
	Log      LogSettings      `yaml:"log" mapstructure:"log"`
}

// APISettings controls how the platform API is reached
type APISettings struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	Token   string        `yaml:"token" mapstructure:"token"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// UISettings controls UI preferences
type UISettings struct {
	PageSize       int           `yaml:"page_size" mapstructure:"page_size"`
	SearchDebounce time.Duration `yaml:"search_debounce" mapstructure:"search_debounce"`
	CacheSize      int           `yaml:"cache_size" mapstructure:"cache_size"`
	CacheTTL       time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// DownloadSettings controls where thread files are saved
type DownloadSettings struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogSettings controls logging
type LogSettings struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		API: APISettings{
			URL:     "http://localhost:8080/api",
			Timeout: 30 * time.Second,
		},
		UI: UISettings{
			PageSize:       10,
			SearchDebounce: 300 * time.Millisecond,
			CacheSize:      128,
			CacheTTL:       time.Minute,
		},
		Download: DownloadSettings{
			Dir: "./",
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}
