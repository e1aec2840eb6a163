package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/luberoncellar/cellar-server/internal/catalog"
	"github.com/luberoncellar/cellar-server/internal/domain"
	domainerrors "github.com/luberoncellar/cellar-server/internal/errors"
)

// CatalogService serves the wine catalog. It holds the current catalog
// snapshot and swaps it wholesale when the source file is reloaded.
type CatalogService struct {
	mu      sync.RWMutex
	current *catalog.Catalog
	logger  *slog.Logger
}

// NewCatalogService creates a catalog service around an initial snapshot.
func NewCatalogService(initial *catalog.Catalog, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		current: initial,
		logger:  logger,
	}
}

// Replace swaps in a new catalog snapshot. Safe to call concurrently
// with reads; used as the watcher's reload callback.
func (s *CatalogService) Replace(c *catalog.Catalog) {
	if c == nil {
		return
	}

	s.mu.Lock()
	s.current = c
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("Catalog snapshot replaced",
			"wines", len(c.Wines()),
			"flavors", len(c.Flavors()),
		)
	}
}

// snapshot returns the current catalog.
func (s *CatalogService) snapshot() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Wines returns all wines, optionally filtered by color.
// An empty or "all" color returns every wine.
func (s *CatalogService) Wines(ctx context.Context, color string) ([]domain.WineRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wines := s.snapshot().Wines()
	if color == "" || color == "all" {
		return wines, nil
	}

	filtered := make([]domain.WineRecord, 0, len(wines))
	for _, w := range wines {
		if string(w.Color) == color {
			filtered = append(filtered, w)
		}
	}
	return filtered, nil
}

// Wine returns a single wine by ID.
func (s *CatalogService) Wine(ctx context.Context, wineID string) (*domain.WineRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	wine := s.snapshot().Wine(wineID)
	if wine == nil {
		return nil, domainerrors.NotFoundf("wine %q not found", wineID)
	}
	return wine, nil
}

// Flavors returns all flavor profiles in the catalog.
func (s *CatalogService) Flavors(ctx context.Context) ([]domain.FlavorProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.snapshot().Flavors(), nil
}

// Flavor returns a single flavor profile by ID.
func (s *CatalogService) Flavor(ctx context.Context, flavorID string) (*domain.FlavorProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	flavor := s.snapshot().Flavor(flavorID)
	if flavor == nil {
		return nil, domainerrors.NotFoundf("flavor %q not found", flavorID)
	}
	return flavor, nil
}

// Colors returns the wine colors present in the catalog, in first-seen order.
func (s *CatalogService) Colors(ctx context.Context) ([]domain.WineColor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.snapshot().Colors(), nil
}
