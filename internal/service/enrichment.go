package service

import (
	"context"
	"log/slog"

	"github.com/luberoncellar/cellar-server/internal/enrich"
)

// EnrichmentService resolves catalog wines to external market data:
// Vinmonopolet availability and pricing, Vivino community ratings.
type EnrichmentService struct {
	catalog *CatalogService
	enrich  *enrich.Service
	logger  *slog.Logger
}

// NewEnrichmentService creates an enrichment service.
func NewEnrichmentService(catalog *CatalogService, enrichSvc *enrich.Service, logger *slog.Logger) *EnrichmentService {
	return &EnrichmentService{
		catalog: catalog,
		enrich:  enrichSvc,
		logger:  logger,
	}
}

// Price returns market pricing for a catalog wine, served from cache
// when fresh.
func (s *EnrichmentService) Price(ctx context.Context, wineID string) (*enrich.PriceInfo, error) {
	wine, err := s.catalog.Wine(ctx, wineID)
	if err != nil {
		return nil, err
	}
	return s.enrich.Price(ctx, wine.Name)
}

// Rating returns community ratings for a catalog wine, served from cache
// when fresh.
func (s *EnrichmentService) Rating(ctx context.Context, wineID string) (*enrich.RatingInfo, error) {
	wine, err := s.catalog.Wine(ctx, wineID)
	if err != nil {
		return nil, err
	}
	return s.enrich.Rating(ctx, wine.Name)
}
