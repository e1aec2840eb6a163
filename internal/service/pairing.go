package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/luberoncellar/cellar-server/internal/domain"
	domainerrors "github.com/luberoncellar/cellar-server/internal/errors"
	"github.com/luberoncellar/cellar-server/internal/pairing"
)

// PairingService matches wines against flavor profiles and food searches.
// All matching runs against the current catalog snapshot.
type PairingService struct {
	catalog *CatalogService
	logger  *slog.Logger
}

// NewPairingService creates a pairing service.
func NewPairingService(catalog *CatalogService, logger *slog.Logger) *PairingService {
	return &PairingService{
		catalog: catalog,
		logger:  logger,
	}
}

// MatchFlavor scores the catalog against a stored flavor profile.
// colorFilter narrows results to one wine color; empty or "all" disables it.
func (s *PairingService) MatchFlavor(ctx context.Context, flavorID, colorFilter string) ([]pairing.FlavorMatch, error) {
	flavor, err := s.catalog.Flavor(ctx, flavorID)
	if err != nil {
		return nil, err
	}
	return s.matchProfile(ctx, flavor, colorFilter)
}

// MatchProfile scores the catalog against an ad-hoc flavor profile,
// for example one built from a quiz instead of the stored presets.
func (s *PairingService) MatchProfile(ctx context.Context, flavor *domain.FlavorProfile, colorFilter string) ([]pairing.FlavorMatch, error) {
	if flavor == nil {
		return nil, domainerrors.Validation("flavor profile is required")
	}
	return s.matchProfile(ctx, flavor, colorFilter)
}

func (s *PairingService) matchProfile(ctx context.Context, flavor *domain.FlavorProfile, colorFilter string) ([]pairing.FlavorMatch, error) {
	wines, err := s.catalog.Wines(ctx, "")
	if err != nil {
		return nil, err
	}

	if colorFilter == "" {
		colorFilter = pairing.ColorFilterAll
	}

	matches := pairing.MatchFlavor(wines, flavor, colorFilter)

	if s.logger != nil {
		s.logger.Debug("Flavor match completed",
			"flavor_id", flavor.ID,
			"color_filter", colorFilter,
			"matches", len(matches),
		)
	}

	return matches, nil
}

// MatchFood finds wines whose food pairings match a dish search term.
func (s *PairingService) MatchFood(ctx context.Context, searchTerm, category string) ([]pairing.FoodMatch, error) {
	// An empty term matches every pairing, filtered only by category.
	searchTerm = strings.TrimSpace(searchTerm)

	if category == "" {
		category = pairing.CategoryAll
	}

	wines, err := s.catalog.Wines(ctx, "")
	if err != nil {
		return nil, err
	}

	return pairing.MatchFood(wines, searchTerm, category), nil
}

// PopularDishes returns the most frequently paired dishes across the catalog.
func (s *PairingService) PopularDishes(ctx context.Context, limit int) ([]pairing.DishCount, error) {
	wines, err := s.catalog.Wines(ctx, "")
	if err != nil {
		return nil, err
	}
	return pairing.PopularDishes(wines, limit), nil
}

// FoodCategories returns the food categories available for filtering.
func (s *PairingService) FoodCategories() []string {
	return pairing.FoodCategories()
}

// ScoreLabel maps a raw match score to its descriptive label.
func (s *PairingService) ScoreLabel(score int) string {
	return pairing.ScoreLabel(score)
}
