package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/luberoncellar/cellar-server/internal/cellar"
	"github.com/luberoncellar/cellar-server/internal/domain"
)

func (s *Server) registerCellarRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCellar",
		Method:      http.MethodGet,
		Path:        "/api/v1/cellar",
		Summary:     "Get cellar",
		Description: "Returns the authenticated user's cellar",
		Tags:        []string{"Cellar"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCellar)

	huma.Register(s.api, huma.Operation{
		OperationID: "addCellarWine",
		Method:      http.MethodPost,
		Path:        "/api/v1/cellar/wines",
		Summary:     "Add bottles",
		Description: "Adds bottles of a wine and vintage to the cellar",
		Tags:        []string{"Cellar"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddCellarWine)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeCellarWine",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cellar/wines/{wineId}/{year}",
		Summary:     "Remove bottles",
		Description: "Removes bottles of a wine and vintage; entries never drop below zero",
		Tags:        []string{"Cellar"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveCellarWine)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCellarWine",
		Method:      http.MethodPatch,
		Path:        "/api/v1/cellar/wines/{wineId}/{year}",
		Summary:     "Update entry metadata",
		Description: "Merges metadata into a cellar entry without changing its quantity",
		Tags:        []string{"Cellar"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateCellarWine)

	huma.Register(s.api, huma.Operation{
		OperationID: "importCellar",
		Method:      http.MethodPost,
		Path:        "/api/v1/cellar/import",
		Summary:     "Import cellar",
		Description: "Replaces the entire cellar with an uploaded snapshot",
		Tags:        []string{"Cellar"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleImportCellar)

	huma.Register(s.api, huma.Operation{
		OperationID: "exportCellar",
		Method:      http.MethodGet,
		Path:        "/api/v1/cellar/export",
		Summary:     "Export cellar",
		Description: "Returns the cellar as a snapshot that can be re-imported",
		Tags:        []string{"Cellar"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleExportCellar)
}

// === DTOs ===

// GetCellarInput contains parameters for fetching the cellar.
type GetCellarInput struct {
	Authorization string `header:"Authorization"`
}

// CellarResponse contains a cellar with derived totals.
type CellarResponse struct {
	UserID       string               `json:"user_id" doc:"Owning user ID"`
	Entries      []domain.CellarEntry `json:"entries" doc:"Cellar entries"`
	TotalBottles int                  `json:"total_bottles" doc:"Sum of entry quantities"`
}

// CellarOutput wraps the cellar response for Huma.
type CellarOutput struct {
	Body CellarResponse
}

// AddCellarWineRequest is the request body for adding bottles.
type AddCellarWineRequest struct {
	WineID   string `json:"wineId" validate:"required" doc:"Catalog wine ID"`
	Year     int    `json:"year" validate:"required,min=1900,max=2100" doc:"Vintage year"`
	Quantity int    `json:"quantity,omitempty" default:"1" minimum:"1" doc:"Bottles to add"`
}

// AddCellarWineInput wraps the add request for Huma.
type AddCellarWineInput struct {
	Authorization string `header:"Authorization"`
	Body          AddCellarWineRequest
}

// RemoveCellarWineInput contains parameters for removing bottles.
// An explicit quantity of zero is a no-op, matching the snapshot
// reconciliation rules.
type RemoveCellarWineInput struct {
	Authorization string `header:"Authorization"`
	WineID        string `path:"wineId" doc:"Catalog wine ID"`
	Year          int    `path:"year" doc:"Vintage year"`
	Quantity      int    `query:"quantity" default:"1" minimum:"0" doc:"Bottles to remove"`
}

// UpdateCellarWineRequest is the request body for updating entry metadata.
// Absent fields are left untouched; quantity cannot be changed here.
type UpdateCellarWineRequest struct {
	PurchaseDate *string              `json:"purchaseDate,omitempty" doc:"Purchase date"`
	Location     *string              `json:"location,omitempty" validate:"omitempty,max=200" doc:"Storage location"`
	Notes        *string              `json:"notes,omitempty" validate:"omitempty,max=2000" doc:"Free-form notes"`
	Status       *domain.CellarStatus `json:"status,omitempty" validate:"omitempty,oneof=in_cellar tasted wishlist" doc:"Entry status"`
	Rating       *int                 `json:"rating,omitempty" validate:"omitempty,min=1,max=5" doc:"Rating 1-5"`
	IsFavorite   *bool                `json:"isFavorite,omitempty" doc:"Favorite flag"`
	TastingNotes *string              `json:"tastingNotes,omitempty" validate:"omitempty,max=2000" doc:"Tasting notes"`
	TastedDate   *string              `json:"tastedDate,omitempty" doc:"Tasting date"`
}

// UpdateCellarWineInput wraps the update request for Huma.
type UpdateCellarWineInput struct {
	Authorization string `header:"Authorization"`
	WineID        string `path:"wineId" doc:"Catalog wine ID"`
	Year          int    `path:"year" doc:"Vintage year"`
	Body          UpdateCellarWineRequest
}

// ImportCellarInput wraps an uploaded cellar snapshot for Huma.
// The body is kept raw so the reconciliation engine owns validation.
type ImportCellarInput struct {
	Authorization string `header:"Authorization"`
	RawBody       []byte
}

// ExportCellarInput contains parameters for exporting the cellar.
type ExportCellarInput struct {
	Authorization string `header:"Authorization"`
}

// ExportCellarOutput wraps the cellar snapshot for Huma.
type ExportCellarOutput struct {
	Body domain.CellarSnapshot
}

// === Handlers ===

func (s *Server) handleGetCellar(ctx context.Context, input *GetCellarInput) (*CellarOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	c, err := s.services.Cellar.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &CellarOutput{Body: mapCellarResponse(c)}, nil
}

func (s *Server) handleAddCellarWine(ctx context.Context, input *AddCellarWineInput) (*CellarOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	c, err := s.services.Cellar.Add(ctx, userID, input.Body.WineID, input.Body.Year, input.Body.Quantity)
	if err != nil {
		return nil, err
	}

	return &CellarOutput{Body: mapCellarResponse(c)}, nil
}

func (s *Server) handleRemoveCellarWine(ctx context.Context, input *RemoveCellarWineInput) (*CellarOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	c, err := s.services.Cellar.Remove(ctx, userID, input.WineID, input.Year, input.Quantity)
	if err != nil {
		return nil, err
	}

	return &CellarOutput{Body: mapCellarResponse(c)}, nil
}

func (s *Server) handleUpdateCellarWine(ctx context.Context, input *UpdateCellarWineInput) (*CellarOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	patch := cellar.EntryPatch{
		PurchaseDate: input.Body.PurchaseDate,
		Location:     input.Body.Location,
		Notes:        input.Body.Notes,
		Status:       input.Body.Status,
		Rating:       input.Body.Rating,
		IsFavorite:   input.Body.IsFavorite,
		TastingNotes: input.Body.TastingNotes,
		TastedDate:   input.Body.TastedDate,
	}

	c, err := s.services.Cellar.Update(ctx, userID, input.WineID, input.Year, patch)
	if err != nil {
		return nil, err
	}

	return &CellarOutput{Body: mapCellarResponse(c)}, nil
}

func (s *Server) handleImportCellar(ctx context.Context, input *ImportCellarInput) (*CellarOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	c, err := s.services.Cellar.Import(ctx, userID, input.RawBody)
	if err != nil {
		return nil, err
	}

	return &CellarOutput{Body: mapCellarResponse(c)}, nil
}

func (s *Server) handleExportCellar(ctx context.Context, input *ExportCellarInput) (*ExportCellarOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.services.Cellar.Export(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ExportCellarOutput{Body: *snapshot}, nil
}

// === Helpers ===

func mapCellarResponse(c *domain.Cellar) CellarResponse {
	entries := c.Entries
	if entries == nil {
		entries = []domain.CellarEntry{}
	}
	return CellarResponse{
		UserID:       c.UserID,
		Entries:      entries,
		TotalBottles: c.TotalBottles(),
	}
}
