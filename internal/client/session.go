package client

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir resolves the directory holding the token cache and the theme
// preference file, creating nothing. Callers pass its result to LoadToken,
// SaveToken, and theme.NewFileStorage.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "fitsense"), nil
}

func tokenPath(dir string) string {
	return filepath.Join(dir, "token")
}

// LoadToken returns the cached session token, or "" when nobody is signed in.
func LoadToken(dir string) (string, error) {
	data, err := os.ReadFile(tokenPath(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func SaveToken(dir, token string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(tokenPath(dir), []byte(token+"\n"), 0o600)
}

// ClearToken signs out locally. A missing token file is not an error.
func ClearToken(dir string) error {
	err := os.Remove(tokenPath(dir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
