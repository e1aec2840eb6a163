package api

import (
	"github.com/luberoncellar/cellar-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth       *service.AuthService
	Catalog    *service.CatalogService
	Pairing    *service.PairingService
	Cellar     *service.CellarService
	Search     *service.SearchService
	Enrichment *service.EnrichmentService
}
