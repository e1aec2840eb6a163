package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/luberoncellar/cellar-server/internal/domain"
)

const cellarPrefix = "cellar:"

// LoadCellar returns the user's cellar. A user with nothing stored yet gets
// an empty cellar, not an error.
func (s *Store) LoadCellar(ctx context.Context, userID string) (*domain.Cellar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := []byte(cellarPrefix + userID)

	var cellar domain.Cellar
	if err := s.get(key, &cellar); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return &domain.Cellar{UserID: userID}, nil
		}
		return nil, fmt.Errorf("load cellar: %w", err)
	}

	cellar.UserID = userID
	return &cellar, nil
}

// SaveCellar persists the cellar wholesale under its user's key.
// Last write wins; there is no version check.
func (s *Store) SaveCellar(ctx context.Context, cellar *domain.Cellar) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cellar.UserID == "" {
		return ErrInvalidInput.WithMessage("cellar has no user id")
	}

	key := []byte(cellarPrefix + cellar.UserID)
	if err := s.set(key, cellar); err != nil {
		return fmt.Errorf("save cellar: %w", err)
	}
	return nil
}

// CellarStore scopes cellar persistence to a single user, satisfying the
// reconciliation engine's collaborator contract.
type CellarStore struct {
	store  *Store
	userID string
}

// CellarFor returns a collaborator bound to the given user's cellar.
func (s *Store) CellarFor(userID string) *CellarStore {
	return &CellarStore{store: s, userID: userID}
}

// Load implements cellar.Collaborator.
func (c *CellarStore) Load(ctx context.Context) (*domain.Cellar, error) {
	return c.store.LoadCellar(ctx, c.userID)
}

// Save implements cellar.Collaborator. The cellar is always written under
// the bound user, regardless of what the passed value claims.
func (c *CellarStore) Save(ctx context.Context, cellar *domain.Cellar) error {
	scoped := cellar.Clone()
	scoped.UserID = c.userID
	return c.store.SaveCellar(ctx, scoped)
}
