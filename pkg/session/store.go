// Package session holds the client-side session: the bearer token and the
// cached user profile, plus the lifecycle manager that keeps both in sync
// with the backend.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/JoaoLucasCordeiro/meetix-cli/pkg/domain"
)

// Store persists the bearer token and the cached user snapshot. It is a dumb
// persistent cache: token lifetime is entirely the backend's concern.
type Store interface {
	// Token returns the current bearer token, or "" when logged out.
	Token() string
	// User returns the cached profile snapshot when one is stored.
	User() (*domain.User, bool)
	// Set stores both values. Called on login, register and profile update.
	Set(token string, user *domain.User) error
	// Clear removes both values atomically with respect to other readers
	// in this process.
	Clear() error
}

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// FileStore keeps the session under two fixed files in the meetix home
// directory. A single mutex serializes access so a reader never observes the
// token cleared but the user still present. Another running meetix process
// is NOT signalled by Clear; its next request fails with 401 and tears down
// through the normal unauthorized path.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// homeDir returns the meetix config directory, honoring MEETIX_HOME.
func homeDir() (string, error) {
	if dir := os.Getenv("MEETIX_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".meetix"), nil
}

// NewFileStore creates the store rooted at MEETIX_HOME or ~/.meetix.
func NewFileStore() (*FileStore, error) {
	dir, err := homeDir()
	if err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Token returns the bearer token using precedence: env var > file > empty.
func (s *FileStore) Token() string {
	if tok := os.Getenv("MEETIX_TOKEN"); tok != "" {
		return tok
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// User returns the cached profile snapshot, if any.
func (s *FileStore) User() (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil, false
	}
	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, false
	}
	return &u, true
}

// Set writes both session files.
func (s *FileStore) Set(token string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, userFile), data, 0600); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// Clear removes both session files. Missing files are not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = fmt.Errorf("clear session: %w", err)
			}
		}
	}
	return firstErr
}
