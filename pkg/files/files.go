package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultDownloadDir is used when no download directory is configured
const DefaultDownloadDir = "."

// ValidateFileName rejects names that would escape the download directory
func ValidateFileName(name string) error {
	if strings.TrimSpace(name) == "" || name == "." {
		return fmt.Errorf("file name cannot be empty")
	}

	invalid := []string{"/", "\\", "..", "\x00"}
	for _, s := range invalid {
		if strings.Contains(name, s) {
			return fmt.Errorf("file name contains invalid sequence: %q", s)
		}
	}

	return nil
}

// SaveDownload writes r to dir/name and returns the path written. An existing
// file is never overwritten; a numeric suffix is added instead.
func SaveDownload(dir, name string, r io.Reader) (string, error) {
	// Workspace files may live in subfolders; only the base name is kept locally.
	name = filepath.Base(filepath.ToSlash(name))
	if err := ValidateFileName(name); err != nil {
		return "", err
	}
	if dir == "" {
		dir = DefaultDownloadDir
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	path, f, err := createUnique(dir, name)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

func createUnique(dir, name string) (string, *os.File, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; i < 1000; i++ {
		candidate := name
		if i > 0 {
			candidate = stem + " (" + strconv.Itoa(i) + ")" + ext
		}
		path := filepath.Join(dir, candidate)

		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			return path, f, nil
		}
		if !os.IsExist(err) {
			return "", nil, fmt.Errorf("failed to create %s: %w", path, err)
		}
	}

	return "", nil, fmt.Errorf("too many existing copies of %s in %s", name, dir)
}
