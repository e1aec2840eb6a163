package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/luberoncellar/cellar-server/internal/domain"
	"github.com/luberoncellar/cellar-server/internal/pairing"
)

func (s *Server) registerPairingRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFlavors",
		Method:      http.MethodGet,
		Path:        "/api/v1/pairing/flavors",
		Summary:     "List flavor profiles",
		Description: "Returns all flavor profiles available for matching",
		Tags:        []string{"Pairing"},
	}, s.handleListFlavors)

	huma.Register(s.api, huma.Operation{
		OperationID: "matchFlavor",
		Method:      http.MethodGet,
		Path:        "/api/v1/pairing/flavors/{id}/matches",
		Summary:     "Match wines to flavor",
		Description: "Scores the catalog against a stored flavor profile and returns matching wines, best first",
		Tags:        []string{"Pairing"},
	}, s.handleMatchFlavor)

	huma.Register(s.api, huma.Operation{
		OperationID: "matchProfile",
		Method:      http.MethodPost,
		Path:        "/api/v1/pairing/match",
		Summary:     "Match wines to custom profile",
		Description: "Scores the catalog against an ad-hoc flavor profile",
		Tags:        []string{"Pairing"},
	}, s.handleMatchProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "matchFood",
		Method:      http.MethodGet,
		Path:        "/api/v1/pairing/food",
		Summary:     "Match wines to food",
		Description: "Finds wines whose food pairings match a dish search term",
		Tags:        []string{"Pairing"},
	}, s.handleMatchFood)

	huma.Register(s.api, huma.Operation{
		OperationID: "popularDishes",
		Method:      http.MethodGet,
		Path:        "/api/v1/pairing/dishes",
		Summary:     "Popular dishes",
		Description: "Returns the dishes paired most often across the catalog",
		Tags:        []string{"Pairing"},
	}, s.handlePopularDishes)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFoodCategories",
		Method:      http.MethodGet,
		Path:        "/api/v1/pairing/categories",
		Summary:     "List food categories",
		Description: "Returns the food categories available for filtering",
		Tags:        []string{"Pairing"},
	}, s.handleListFoodCategories)
}

// === DTOs ===

// ListFlavorsResponse contains all flavor profiles.
type ListFlavorsResponse struct {
	Flavors []domain.FlavorProfile `json:"flavors" doc:"Flavor profiles"`
}

// ListFlavorsOutput wraps the flavor list response for Huma.
type ListFlavorsOutput struct {
	Body ListFlavorsResponse
}

// MatchFlavorInput contains parameters for a flavor match.
type MatchFlavorInput struct {
	ID    string `path:"id" doc:"Flavor profile ID"`
	Color string `query:"color" enum:"all,red,white,rosé" doc:"Restrict matches to one wine color" required:"false"`
}

// FlavorMatchesResponse contains scored flavor matches.
type FlavorMatchesResponse struct {
	Matches []pairing.FlavorMatch `json:"matches" doc:"Matching wines, best first"`
	Total   int                   `json:"total" doc:"Number of matches"`
}

// FlavorMatchesOutput wraps the flavor matches response for Huma.
type FlavorMatchesOutput struct {
	Body FlavorMatchesResponse
}

// MatchProfileRequest is an ad-hoc flavor profile to match against.
type MatchProfileRequest struct {
	Name                string              `json:"name,omitempty" validate:"omitempty,max=100" doc:"Profile name"`
	Profile             domain.TasteProfile `json:"profile" doc:"Taste intensity vector"`
	PreferredWineColors []domain.WineColor  `json:"preferred_wine_colors,omitempty" doc:"Preferred wine colors"`
	WineCharacteristics []string            `json:"wine_characteristics,omitempty" doc:"Wine characteristic keywords"`
	Color               string              `json:"color,omitempty" validate:"omitempty,oneof=all red white rosé" doc:"Restrict matches to one wine color"`
}

// MatchProfileInput wraps the ad-hoc match request for Huma.
type MatchProfileInput struct {
	Body MatchProfileRequest
}

// MatchFoodInput contains parameters for a food-pairing search.
type MatchFoodInput struct {
	Query    string `query:"q" doc:"Dish search term; empty returns every pairing"`
	Category string `query:"category" doc:"Food category filter; 'all' or empty disables it" required:"false"`
}

// FoodMatchesResponse contains food-pairing matches.
type FoodMatchesResponse struct {
	Matches []pairing.FoodMatch `json:"matches" doc:"Matching wine and pairing rows"`
	Total   int                 `json:"total" doc:"Number of matches"`
}

// FoodMatchesOutput wraps the food matches response for Huma.
type FoodMatchesOutput struct {
	Body FoodMatchesResponse
}

// PopularDishesInput contains parameters for the popular dishes query.
type PopularDishesInput struct {
	Limit int `query:"limit" default:"10" minimum:"1" maximum:"100" doc:"Maximum dishes to return"`
}

// PopularDishesResponse contains dish frequency counts.
type PopularDishesResponse struct {
	Dishes []pairing.DishCount `json:"dishes" doc:"Dishes by descending pairing count"`
}

// PopularDishesOutput wraps the popular dishes response for Huma.
type PopularDishesOutput struct {
	Body PopularDishesResponse
}

// FoodCategoriesResponse contains the known food categories.
type FoodCategoriesResponse struct {
	Categories []string `json:"categories" doc:"Food category names"`
}

// FoodCategoriesOutput wraps the food categories response for Huma.
type FoodCategoriesOutput struct {
	Body FoodCategoriesResponse
}

// === Handlers ===

func (s *Server) handleListFlavors(ctx context.Context, _ *struct{}) (*ListFlavorsOutput, error) {
	flavors, err := s.services.Catalog.Flavors(ctx)
	if err != nil {
		return nil, err
	}

	return &ListFlavorsOutput{Body: ListFlavorsResponse{Flavors: flavors}}, nil
}

func (s *Server) handleMatchFlavor(ctx context.Context, input *MatchFlavorInput) (*FlavorMatchesOutput, error) {
	matches, err := s.services.Pairing.MatchFlavor(ctx, input.ID, input.Color)
	if err != nil {
		return nil, err
	}

	return &FlavorMatchesOutput{
		Body: FlavorMatchesResponse{
			Matches: matches,
			Total:   len(matches),
		},
	}, nil
}

func (s *Server) handleMatchProfile(ctx context.Context, input *MatchProfileInput) (*FlavorMatchesOutput, error) {
	flavor := &domain.FlavorProfile{
		Name:                input.Body.Name,
		Profile:             input.Body.Profile,
		PreferredWineColors: input.Body.PreferredWineColors,
		WineCharacteristics: input.Body.WineCharacteristics,
	}

	matches, err := s.services.Pairing.MatchProfile(ctx, flavor, input.Body.Color)
	if err != nil {
		return nil, err
	}

	return &FlavorMatchesOutput{
		Body: FlavorMatchesResponse{
			Matches: matches,
			Total:   len(matches),
		},
	}, nil
}

func (s *Server) handleMatchFood(ctx context.Context, input *MatchFoodInput) (*FoodMatchesOutput, error) {
	matches, err := s.services.Pairing.MatchFood(ctx, input.Query, input.Category)
	if err != nil {
		return nil, err
	}

	return &FoodMatchesOutput{
		Body: FoodMatchesResponse{
			Matches: matches,
			Total:   len(matches),
		},
	}, nil
}

func (s *Server) handlePopularDishes(ctx context.Context, input *PopularDishesInput) (*PopularDishesOutput, error) {
	dishes, err := s.services.Pairing.PopularDishes(ctx, input.Limit)
	if err != nil {
		return nil, err
	}

	return &PopularDishesOutput{Body: PopularDishesResponse{Dishes: dishes}}, nil
}

func (s *Server) handleListFoodCategories(_ context.Context, _ *struct{}) (*FoodCategoriesOutput, error) {
	return &FoodCategoriesOutput{
		Body: FoodCategoriesResponse{Categories: s.services.Pairing.FoodCategories()},
	}, nil
}
