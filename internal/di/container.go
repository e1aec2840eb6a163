// Package di provides dependency injection configuration for the cellar server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/luberoncellar/cellar-server/internal/auth"
	"github.com/luberoncellar/cellar-server/internal/config"
	"github.com/luberoncellar/cellar-server/internal/di/providers"
	"github.com/luberoncellar/cellar-server/internal/enrich"
	"github.com/luberoncellar/cellar-server/internal/logger"
	"github.com/luberoncellar/cellar-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideEnrichCache)

	// Catalog and search
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)
	do.Provide(injector, providers.ProvideCatalogWatcher)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvidePairingService)
	do.Provide(injector, providers.ProvideCellarService)
	do.Provide(injector, providers.ProvideEnrichService)
	do.Provide(injector, providers.ProvideEnrichmentService)

	// Workers
	do.Provide(injector, providers.ProvideSessionCleanupJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.EnrichCacheHandle](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.PairingService](injector)
	_ = do.MustInvoke[*service.CellarService](injector)
	_ = do.MustInvoke[*enrich.Service](injector)
	_ = do.MustInvoke[*service.EnrichmentService](injector)

	// Workers
	_ = do.MustInvoke[*providers.SessionCleanupJob](injector)

	// Server and catalog reload wiring
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	_ = do.MustInvoke[*providers.CatalogWatcherHandle](injector)

	// Bring the search index in line with the loaded catalog
	providers.SyncSearchIndex(injector)

	return nil
}
