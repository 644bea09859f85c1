package client

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const DefaultTokenFile = ".hrctl_token"

// TokenStore keeps the session token in a file, by default under the
// user's home directory.
type TokenStore struct {
	path string
}

func NewTokenStore(path string) (*TokenStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, DefaultTokenFile)
	}
	return &TokenStore{path: path}, nil
}

func (s *TokenStore) Path() string {
	return s.path
}

// Load returns "" when no token has been saved.
func (s *TokenStore) Load() (string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func (s *TokenStore) Save(token string) error {
	return os.WriteFile(s.path, []byte(token), 0o600)
}

func (s *TokenStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
