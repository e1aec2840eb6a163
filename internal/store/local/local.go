// Package local stores cellars as JSON files on disk. It backs the
// import/export tooling and standalone setups that run without the
// database.
package local

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/luberoncellar/cellar-server/internal/domain"
)

// Storage manages per-user cellar files under a base directory.
// Thread-safe for concurrent operations.
type Storage struct {
	basePath string
	mu       sync.RWMutex
}

// NewStorage creates a Storage rooted at basePath. Cellar files are
// stored as {basePath}/{userID}.json.
func NewStorage(basePath string) (*Storage, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cellar directory: %w", err)
	}

	return &Storage{basePath: basePath}, nil
}

// Load reads a user's cellar from disk. A user with no file yet gets
// an empty cellar, not an error.
func (s *Storage) Load(ctx context.Context, userID string) (*domain.Cellar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.Path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return &domain.Cellar{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to read cellar file: %w", err)
	}

	var cellar domain.Cellar
	if err := json.Unmarshal(data, &cellar); err != nil {
		return nil, fmt.Errorf("failed to parse cellar file: %w", err)
	}

	cellar.UserID = userID
	return &cellar, nil
}

// Save writes a user's cellar to disk. Writes go to a temp file first
// and are renamed into place, so a crash mid-write never leaves a
// half-written cellar behind.
func (s *Storage) Save(ctx context.Context, cellar *domain.Cellar) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cellar.UserID == "" {
		return fmt.Errorf("cellar has no user id")
	}

	data, err := json.Marshal(cellar)
	if err != nil {
		return fmt.Errorf("failed to marshal cellar: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(cellar.UserID)
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write cellar file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename cellar file: %w", err)
	}

	return nil
}

// Exists checks whether a cellar file exists for the user.
func (s *Storage) Exists(userID string) bool {
	if userID == "" {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.Path(userID))
	return err == nil
}

// Delete removes a user's cellar file. Idempotent.
func (s *Storage) Delete(userID string) error {
	if userID == "" {
		return fmt.Errorf("user ID cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(userID)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete cellar file: %w", err)
	}

	return nil
}

// Path returns the full filesystem path for a user's cellar file.
func (s *Storage) Path(userID string) string {
	return filepath.Join(s.basePath, fmt.Sprintf("%s.json", userID))
}

// Collaborator binds the storage to a single user so the reconciliation
// engine can use it.
type Collaborator struct {
	storage *Storage
	userID  string
}

// For returns a collaborator scoped to the given user.
func (s *Storage) For(userID string) *Collaborator {
	return &Collaborator{storage: s, userID: userID}
}

func (c *Collaborator) Load(ctx context.Context) (*domain.Cellar, error) {
	return c.storage.Load(ctx, c.userID)
}

func (c *Collaborator) Save(ctx context.Context, cellar *domain.Cellar) error {
	scoped := cellar.Clone()
	scoped.UserID = c.userID
	return c.storage.Save(ctx, scoped)
}
