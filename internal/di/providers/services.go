package providers

import (
	"github.com/samber/do/v2"

	"github.com/luberoncellar/cellar-server/internal/auth"
	"github.com/luberoncellar/cellar-server/internal/enrich"
	"github.com/luberoncellar/cellar-server/internal/logger"
	"github.com/luberoncellar/cellar-server/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvidePairingService provides the wine pairing service.
func ProvidePairingService(i do.Injector) (*service.PairingService, error) {
	catalogService := do.MustInvoke[*service.CatalogService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPairingService(catalogService, log.Logger), nil
}

// ProvideCellarService provides the personal cellar service.
func ProvideCellarService(i do.Injector) (*service.CellarService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCellarService(storeHandle.Store, log.Logger), nil
}

// ProvideEnrichmentService provides the catalog-aware enrichment service.
func ProvideEnrichmentService(i do.Injector) (*service.EnrichmentService, error) {
	catalogService := do.MustInvoke[*service.CatalogService](i)
	enrichService := do.MustInvoke[*enrich.Service](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEnrichmentService(catalogService, enrichService, log.Logger), nil
}
