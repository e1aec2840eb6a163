package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/luberoncellar/cellar-server/internal/enrich"
)

func (s *Server) registerEnrichmentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getWinePrice",
		Method:      http.MethodGet,
		Path:        "/api/v1/wines/{id}/price",
		Summary:     "Get market pricing",
		Description: "Returns Vinmonopolet availability and pricing for a catalog wine",
		Tags:        []string{"Enrichment"},
	}, s.handleGetWinePrice)

	huma.Register(s.api, huma.Operation{
		OperationID: "getWineRating",
		Method:      http.MethodGet,
		Path:        "/api/v1/wines/{id}/rating",
		Summary:     "Get community ratings",
		Description: "Returns Vivino community ratings for a catalog wine",
		Tags:        []string{"Enrichment"},
	}, s.handleGetWineRating)
}

// WineEnrichmentInput contains parameters for enrichment lookups.
type WineEnrichmentInput struct {
	ID string `path:"id" doc:"Wine ID"`
}

// WinePriceOutput wraps the price info for Huma.
type WinePriceOutput struct {
	Body enrich.PriceInfo
}

// WineRatingOutput wraps the rating info for Huma.
type WineRatingOutput struct {
	Body enrich.RatingInfo
}

func (s *Server) handleGetWinePrice(ctx context.Context, input *WineEnrichmentInput) (*WinePriceOutput, error) {
	info, err := s.services.Enrichment.Price(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &WinePriceOutput{Body: *info}, nil
}

func (s *Server) handleGetWineRating(ctx context.Context, input *WineEnrichmentInput) (*WineRatingOutput, error) {
	info, err := s.services.Enrichment.Rating(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &WineRatingOutput{Body: *info}, nil
}
