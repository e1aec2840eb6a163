package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/luberoncellar/cellar-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchWines",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search wines",
		Description: "Full-text search over the wine catalog with filters and facets",
		Tags:        []string{"Search"},
	}, s.handleSearchWines)
}

// SearchWinesInput contains search query parameters.
type SearchWinesInput struct {
	Query         string   `query:"q" doc:"Search query" required:"false"`
	Color         string   `query:"color" enum:"red,white,rosé" doc:"Filter by wine color" required:"false"`
	Appellation   string   `query:"appellation" doc:"Filter by appellation" required:"false"`
	Grapes        []string `query:"grapes" doc:"Filter by grape varieties (OR)" required:"false"`
	MinPrice      float64  `query:"min_price" doc:"Minimum latest-vintage price" required:"false"`
	MaxPrice      float64  `query:"max_price" doc:"Maximum latest-vintage price" required:"false"`
	MinYear       int      `query:"min_year" doc:"Minimum latest vintage year" required:"false"`
	MaxYear       int      `query:"max_year" doc:"Maximum latest vintage year" required:"false"`
	Limit         int      `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum hits"`
	Offset        int      `query:"offset" minimum:"0" doc:"Pagination offset" required:"false"`
	SortBy        string   `query:"sort_by" enum:"relevance,name,price,year" doc:"Sort field" required:"false"`
	SortOrder     string   `query:"sort_order" enum:"asc,desc" doc:"Sort direction" required:"false"`
	IncludeFacets bool     `query:"facets" doc:"Include facet counts" required:"false"`
	Highlight     bool     `query:"highlight" doc:"Include highlighted fragments" required:"false"`
}

// SearchWinesOutput wraps the search result for Huma.
type SearchWinesOutput struct {
	Body search.SearchResult
}

func (s *Server) handleSearchWines(ctx context.Context, input *SearchWinesInput) (*SearchWinesOutput, error) {
	params := search.DefaultSearchParams()
	params.Query = input.Query
	params.Color = input.Color
	params.Appellation = input.Appellation
	params.Grapes = input.Grapes
	params.MinPrice = input.MinPrice
	params.MaxPrice = input.MaxPrice
	params.MinYear = input.MinYear
	params.MaxYear = input.MaxYear
	params.Offset = input.Offset
	params.IncludeFacets = input.IncludeFacets
	params.Highlight = input.Highlight

	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	if input.SortBy != "" {
		params.SortBy = input.SortBy
	}
	if input.SortOrder != "" {
		params.SortOrder = input.SortOrder
	}

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	return &SearchWinesOutput{Body: *result}, nil
}
