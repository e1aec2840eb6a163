package enrich

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/luberoncellar/cellar-server/internal/enrich/vinmonopolet"
	"github.com/luberoncellar/cellar-server/internal/enrich/vivino"
)

// PriceSource looks up price and availability for a wine name.
type PriceSource interface {
	SearchProducts(ctx context.Context, query string) ([]vinmonopolet.ProductResult, error)
}

// RatingSource looks up community ratings for a wine name.
type RatingSource interface {
	SearchWines(ctx context.Context, query string) ([]vivino.WineRating, error)
}

// PriceInfo is the enrichment result for price and availability.
type PriceInfo struct {
	Products  []vinmonopolet.ProductResult `json:"products"`
	FetchedAt time.Time                    `json:"fetched_at"`
	Cached    bool                         `json:"cached"`
}

// RatingInfo is the enrichment result for community ratings.
type RatingInfo struct {
	Ratings   []vivino.WineRating `json:"ratings"`
	FetchedAt time.Time           `json:"fetched_at"`
	Cached    bool                `json:"cached"`
}

// Service serves enrichment lookups, preferring fresh cache rows over
// live fetches. A live fetch that fails falls back to a stale cache row
// when one exists.
type Service struct {
	cache   *Cache
	prices  PriceSource
	ratings RatingSource
	ttl     time.Duration
	logger  *slog.Logger
}

// NewService creates an enrichment service.
func NewService(cache *Cache, prices PriceSource, ratings RatingSource, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		cache:   cache,
		prices:  prices,
		ratings: ratings,
		ttl:     ttl,
		logger:  logger,
	}
}

// Price returns price and availability data for a wine name.
func (s *Service) Price(ctx context.Context, wineName string) (*PriceInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry, err := s.cache.Get(ctx, SourceVinmonopolet, wineName)
	if err != nil && !errors.Is(err, ErrCacheMiss) {
		return nil, err
	}

	if entry != nil && time.Since(entry.FetchedAt) < s.ttl {
		var info PriceInfo
		if err := json.Unmarshal(entry.Payload, &info); err != nil {
			return nil, fmt.Errorf("decode cached price payload: %w", err)
		}
		info.FetchedAt = entry.FetchedAt
		info.Cached = true
		return &info, nil
	}

	products, fetchErr := s.prices.SearchProducts(ctx, wineName)
	if fetchErr != nil {
		// Serve the stale row rather than nothing.
		if entry != nil {
			s.logger.Warn("Price fetch failed, serving stale cache",
				"wine", wineName, "fetched_at", entry.FetchedAt, "error", fetchErr)
			var info PriceInfo
			if err := json.Unmarshal(entry.Payload, &info); err != nil {
				return nil, fmt.Errorf("decode cached price payload: %w", err)
			}
			info.FetchedAt = entry.FetchedAt
			info.Cached = true
			return &info, nil
		}
		return nil, fetchErr
	}

	info := &PriceInfo{Products: products, FetchedAt: time.Now().UTC()}

	payload, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("encode price payload: %w", err)
	}
	if err := s.cache.Put(ctx, SourceVinmonopolet, wineName, payload); err != nil {
		s.logger.Warn("Failed to cache price payload", "wine", wineName, "error", err)
	}

	return info, nil
}

// Rating returns community rating data for a wine name.
func (s *Service) Rating(ctx context.Context, wineName string) (*RatingInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry, err := s.cache.Get(ctx, SourceVivino, wineName)
	if err != nil && !errors.Is(err, ErrCacheMiss) {
		return nil, err
	}

	if entry != nil && time.Since(entry.FetchedAt) < s.ttl {
		var info RatingInfo
		if err := json.Unmarshal(entry.Payload, &info); err != nil {
			return nil, fmt.Errorf("decode cached rating payload: %w", err)
		}
		info.FetchedAt = entry.FetchedAt
		info.Cached = true
		return &info, nil
	}

	ratings, fetchErr := s.ratings.SearchWines(ctx, wineName)
	if fetchErr != nil {
		if entry != nil {
			s.logger.Warn("Rating fetch failed, serving stale cache",
				"wine", wineName, "fetched_at", entry.FetchedAt, "error", fetchErr)
			var info RatingInfo
			if err := json.Unmarshal(entry.Payload, &info); err != nil {
				return nil, fmt.Errorf("decode cached rating payload: %w", err)
			}
			info.FetchedAt = entry.FetchedAt
			info.Cached = true
			return &info, nil
		}
		return nil, fetchErr
	}

	info := &RatingInfo{Ratings: ratings, FetchedAt: time.Now().UTC()}

	payload, err := json.Marshal(info)
	if err != nil {
		return nil, fmt.Errorf("encode rating payload: %w", err)
	}
	if err := s.cache.Put(ctx, SourceVivino, wineName, payload); err != nil {
		s.logger.Warn("Failed to cache rating payload", "wine", wineName, "error", err)
	}

	return info, nil
}
