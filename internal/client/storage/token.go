package storage

import (
	"os"
	"strings"
)

// LoadToken reads a persisted auth token. A missing file means no token.
func LoadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// SaveToken persists the auth token. An empty token removes the file.
func SaveToken(path, token string) error {
	if token == "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	return os.WriteFile(path, []byte(token), 0600)
}
