package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/luberoncellar/cellar-server/internal/search"
)

// SearchService manages the full-text wine index and serves queries
// against it. The index is rebuilt from the catalog snapshot at startup
// and whenever the catalog reloads.
type SearchService struct {
	index   *search.SearchIndex
	catalog *CatalogService
	logger  *slog.Logger
}

// NewSearchService creates a search service over an open index.
func NewSearchService(index *search.SearchIndex, catalog *CatalogService, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:   index,
		catalog: catalog,
		logger:  logger,
	}
}

// Search runs a query against the wine index.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	return s.index.Search(ctx, params)
}

// DocumentCount returns how many wines are indexed.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// SyncFromCatalog indexes every wine in the current catalog snapshot.
// Existing documents for the same IDs are overwritten.
func (s *SearchService) SyncFromCatalog(ctx context.Context) error {
	wines, err := s.catalog.Wines(ctx, "")
	if err != nil {
		return err
	}

	docs := make([]*search.WineDocument, 0, len(wines))
	for i := range wines {
		docs = append(docs, search.WineToSearchDocument(&wines[i]))
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index catalog: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Search index synced from catalog", "documents", len(docs))
	}
	return nil
}

// Rebuild wipes the index and re-indexes the current catalog snapshot.
// Used when the catalog file is replaced, since a sync alone would leave
// documents for wines that no longer exist.
func (s *SearchService) Rebuild(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}
	return s.SyncFromCatalog(ctx)
}
