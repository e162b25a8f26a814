package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateThreadID checks that id looks like a thread id
func ValidateThreadID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("thread id cannot be empty")
	}
	if strings.ContainsAny(id, "/?# ") {
		return fmt.Errorf("invalid thread id: %q", id)
	}
	return nil
}

// ValidateCredentialName checks a credential name before it goes into a URL path
func ValidateCredentialName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("credential name cannot be empty")
	}
	if strings.ContainsAny(name, "/?#") {
		return fmt.Errorf("invalid credential name: %q", name)
	}
	return nil
}

// ValidatePage validates the page and page size flags
func ValidatePage(page, pageSize int) error {
	if page < 1 {
		return fmt.Errorf("page must be at least 1, got %d", page)
	}
	if pageSize < 1 {
		return fmt.Errorf("page size must be at least 1, got %d", pageSize)
	}
	return nil
}

// ValidateDownloadDir accepts an existing directory or a path that does not
// exist yet and will be created
func ValidateDownloadDir(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error accessing directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	return nil
}

// ValidateOutputFormat validates the output format
func ValidateOutputFormat(format string) error {
	validFormats := []string{string(FormatText), string(FormatJSON), string(FormatYAML)}
	if !Contains(validFormats, strings.ToLower(format)) {
		return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
	}
	return nil
}

// ParseKeyValues parses KEY=VALUE pairs
func ParseKeyValues(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected KEY=VALUE)", pair)
		}
		result[key] = value
	}
	return result, nil
}

// Contains checks if a string slice contains a specific item
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
