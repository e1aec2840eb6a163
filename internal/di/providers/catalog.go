package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/luberoncellar/cellar-server/internal/catalog"
	"github.com/luberoncellar/cellar-server/internal/config"
	"github.com/luberoncellar/cellar-server/internal/logger"
	"github.com/luberoncellar/cellar-server/internal/service"
)

// ProvideCatalogService loads the wine catalog and wraps it in a service.
// A configured override file replaces the embedded seed catalog.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var (
		cat *catalog.Catalog
		err error
	)
	if cfg.Catalog.OverridePath != "" {
		cat, err = catalog.LoadFile(cfg.Catalog.OverridePath)
		if err != nil {
			return nil, err
		}
		log.Info("Catalog loaded from override file",
			"path", cfg.Catalog.OverridePath,
			"wines", len(cat.Wines()),
			"flavors", len(cat.Flavors()),
		)
	} else {
		cat, err = catalog.Load()
		if err != nil {
			return nil, err
		}
		log.Info("Embedded catalog loaded",
			"wines", len(cat.Wines()),
			"flavors", len(cat.Flavors()),
		)
	}

	return service.NewCatalogService(cat, log.Logger), nil
}

// CatalogWatcherHandle wraps the catalog file watcher with shutdown capability.
// The watcher is nil when the embedded catalog is in use.
type CatalogWatcherHandle struct {
	watcher *catalog.Watcher
	cancel  context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *CatalogWatcherHandle) Shutdown() error {
	if h.watcher == nil {
		return nil
	}
	h.cancel()
	return h.watcher.Close()
}

// ProvideCatalogWatcher watches the override catalog file and swaps in the
// new snapshot on change, rebuilding the search index to match.
func ProvideCatalogWatcher(i do.Injector) (*CatalogWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Catalog.OverridePath == "" {
		return &CatalogWatcherHandle{}, nil
	}

	catalogService := do.MustInvoke[*service.CatalogService](i)
	searchService := do.MustInvoke[*service.SearchService](i)

	w, err := catalog.NewWatcher(cfg.Catalog.OverridePath, log.Logger, func(c *catalog.Catalog) {
		catalogService.Replace(c)
		if err := searchService.Rebuild(context.Background()); err != nil {
			log.Error("Search rebuild after catalog reload failed", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := w.Start(ctx); err != nil {
			log.Error("Catalog watcher error", "error", err)
		}
	}()

	return &CatalogWatcherHandle{watcher: w, cancel: cancel}, nil
}
