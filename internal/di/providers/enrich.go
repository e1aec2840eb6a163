package providers

import (
	"github.com/samber/do/v2"

	"github.com/luberoncellar/cellar-server/internal/config"
	"github.com/luberoncellar/cellar-server/internal/enrich"
	"github.com/luberoncellar/cellar-server/internal/enrich/vinmonopolet"
	"github.com/luberoncellar/cellar-server/internal/enrich/vivino"
	"github.com/luberoncellar/cellar-server/internal/logger"
)

// EnrichCacheHandle wraps the enrichment cache with shutdown capability.
type EnrichCacheHandle struct {
	*enrich.Cache
}

// Shutdown implements do.Shutdownable.
func (h *EnrichCacheHandle) Shutdown() error {
	return h.Close()
}

// ProvideEnrichCache provides the sqlite-backed enrichment cache.
func ProvideEnrichCache(i do.Injector) (*EnrichCacheHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	cache, err := enrich.OpenCache(cfg.EnrichCachePath(), log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Enrichment cache opened", "path", cfg.EnrichCachePath())

	return &EnrichCacheHandle{Cache: cache}, nil
}

// ProvideEnrichService provides the enrichment service backed by the
// Vinmonopolet and Vivino clients.
func ProvideEnrichService(i do.Injector) (*enrich.Service, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	cacheHandle := do.MustInvoke[*EnrichCacheHandle](i)

	prices := vinmonopolet.NewClient(cfg.Enrich.VinmonopoletBaseURL, log.Logger)
	ratings := vivino.NewClient(cfg.Enrich.VivinoBaseURL, log.Logger)

	return enrich.NewService(cacheHandle.Cache, prices, ratings, cfg.Enrich.FreshnessTTL, log.Logger), nil
}
