package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/luberoncellar/cellar-server/internal/domain"
)

func (s *Server) registerWineRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listWines",
		Method:      http.MethodGet,
		Path:        "/api/v1/wines",
		Summary:     "List wines",
		Description: "Returns the wine catalog, optionally filtered by color",
		Tags:        []string{"Wines"},
	}, s.handleListWines)

	huma.Register(s.api, huma.Operation{
		OperationID: "getWine",
		Method:      http.MethodGet,
		Path:        "/api/v1/wines/{id}",
		Summary:     "Get wine",
		Description: "Returns a single catalog wine by ID",
		Tags:        []string{"Wines"},
	}, s.handleGetWine)

	huma.Register(s.api, huma.Operation{
		OperationID: "listWineColors",
		Method:      http.MethodGet,
		Path:        "/api/v1/wines/colors",
		Summary:     "List wine colors",
		Description: "Returns the wine colors present in the catalog",
		Tags:        []string{"Wines"},
	}, s.handleListWineColors)
}

// === DTOs ===

// ListWinesInput contains parameters for listing wines.
type ListWinesInput struct {
	Color string `query:"color" enum:"all,red,white,rosé" doc:"Filter by wine color; 'all' or empty disables the filter" required:"false"`
}

// ListWinesResponse contains the wine catalog.
type ListWinesResponse struct {
	Wines []domain.WineRecord `json:"wines" doc:"Catalog wines"`
	Total int                 `json:"total" doc:"Number of wines returned"`
}

// ListWinesOutput wraps the list wines response for Huma.
type ListWinesOutput struct {
	Body ListWinesResponse
}

// GetWineInput contains parameters for getting a wine.
type GetWineInput struct {
	ID string `path:"id" doc:"Wine ID"`
}

// WineOutput wraps a single wine for Huma.
type WineOutput struct {
	Body domain.WineRecord
}

// WineColorsResponse contains the catalog's wine colors.
type WineColorsResponse struct {
	Colors []domain.WineColor `json:"colors" doc:"Wine colors in catalog order"`
}

// WineColorsOutput wraps the wine colors response for Huma.
type WineColorsOutput struct {
	Body WineColorsResponse
}

// === Handlers ===

func (s *Server) handleListWines(ctx context.Context, input *ListWinesInput) (*ListWinesOutput, error) {
	wines, err := s.services.Catalog.Wines(ctx, input.Color)
	if err != nil {
		return nil, err
	}

	return &ListWinesOutput{
		Body: ListWinesResponse{
			Wines: wines,
			Total: len(wines),
		},
	}, nil
}

func (s *Server) handleGetWine(ctx context.Context, input *GetWineInput) (*WineOutput, error) {
	wine, err := s.services.Catalog.Wine(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &WineOutput{Body: *wine}, nil
}

func (s *Server) handleListWineColors(ctx context.Context, _ *struct{}) (*WineColorsOutput, error) {
	colors, err := s.services.Catalog.Colors(ctx)
	if err != nil {
		return nil, err
	}

	return &WineColorsOutput{Body: WineColorsResponse{Colors: colors}}, nil
}
