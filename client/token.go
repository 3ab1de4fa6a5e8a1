package client

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rohanthewiz/serr"
)

// LoadToken reads the session token saved by SaveToken.
// A missing file is not an error; it means there is no session.
func LoadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", serr.Wrap(err, "failed to read token file", "path", path)
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveToken persists the session token readable by the owner only
func SaveToken(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return serr.Wrap(err, "failed to create token directory", "path", path)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return serr.Wrap(err, "failed to write token file", "path", path)
	}
	return nil
}

// ClearToken removes the saved session, if any
func ClearToken(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return serr.Wrap(err, "failed to remove token file", "path", path)
	}
	return nil
}
