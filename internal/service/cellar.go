package service

import (
	"context"
	"log/slog"

	"github.com/luberoncellar/cellar-server/internal/cellar"
	"github.com/luberoncellar/cellar-server/internal/domain"
	domainerrors "github.com/luberoncellar/cellar-server/internal/errors"
	"github.com/luberoncellar/cellar-server/internal/store"
)

// CellarService exposes per-user cellar operations. Each call builds a
// reconciliation engine over a store collaborator scoped to the user, so
// one user's writes can never land in another's cellar.
type CellarService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewCellarService creates a cellar service.
func NewCellarService(store *store.Store, logger *slog.Logger) *CellarService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CellarService{
		store:  store,
		logger: logger,
	}
}

func (s *CellarService) engine(userID string) (*cellar.Engine, error) {
	if userID == "" {
		return nil, domainerrors.Unauthorized("user id is required")
	}
	return cellar.NewEngine(s.store.CellarFor(userID), s.logger), nil
}

// Get returns the user's current cellar.
func (s *CellarService) Get(ctx context.Context, userID string) (*domain.Cellar, error) {
	eng, err := s.engine(userID)
	if err != nil {
		return nil, err
	}
	return eng.Get(ctx)
}

// Add adds bottles of a wine and vintage to the user's cellar.
func (s *CellarService) Add(ctx context.Context, userID, wineID string, year, quantity int) (*domain.Cellar, error) {
	eng, err := s.engine(userID)
	if err != nil {
		return nil, err
	}
	return eng.Add(ctx, wineID, year, quantity)
}

// Remove removes bottles of a wine and vintage from the user's cellar.
func (s *CellarService) Remove(ctx context.Context, userID, wineID string, year, quantity int) (*domain.Cellar, error) {
	eng, err := s.engine(userID)
	if err != nil {
		return nil, err
	}
	return eng.Remove(ctx, wineID, year, quantity)
}

// Update merges entry metadata for a wine and vintage in the user's cellar.
func (s *CellarService) Update(ctx context.Context, userID, wineID string, year int, patch cellar.EntryPatch) (*domain.Cellar, error) {
	eng, err := s.engine(userID)
	if err != nil {
		return nil, err
	}
	return eng.Update(ctx, wineID, year, patch)
}

// Import replaces the user's cellar with a serialized snapshot.
func (s *CellarService) Import(ctx context.Context, userID string, payload []byte) (*domain.Cellar, error) {
	eng, err := s.engine(userID)
	if err != nil {
		return nil, err
	}
	return eng.Import(ctx, payload)
}

// Export returns the user's cellar as an importable snapshot.
func (s *CellarService) Export(ctx context.Context, userID string) (*domain.CellarSnapshot, error) {
	eng, err := s.engine(userID)
	if err != nil {
		return nil, err
	}
	return eng.Export(ctx)
}
