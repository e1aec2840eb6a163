// Package enrich augments catalog wines with third-party data: prices and
// availability from Vinmonopolet, community ratings from Vivino. Responses
// are cached in SQLite and refetched when older than the configured TTL.
package enrich

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Enrichment sources.
const (
	SourceVinmonopolet = "vinmonopolet"
	SourceVivino       = "vivino"
)

// ErrCacheMiss is returned when no cached row exists for a lookup.
var ErrCacheMiss = errors.New("enrichment cache miss")

// CacheEntry is one cached enrichment payload.
type CacheEntry struct {
	ID        string
	Source    string
	WineName  string
	Payload   []byte
	FetchedAt time.Time
}

// Cache is a SQLite-backed cache of third-party responses.
type Cache struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenCache opens (or creates) the cache database at the given path.
func OpenCache(path string, logger *slog.Logger) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	return &Cache{db: db, logger: logger}, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached entry for (source, wineName).
// Returns ErrCacheMiss when no row exists.
func (c *Cache) Get(ctx context.Context, source, wineName string) (*CacheEntry, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, source, wine_name, payload, fetched_at
		 FROM enrichment WHERE source = ? AND wine_name = ?`,
		source, wineName,
	)

	var entry CacheEntry
	var fetchedAt string
	err := row.Scan(&entry.ID, &entry.Source, &entry.WineName, &entry.Payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("scan enrichment row: %w", err)
	}

	entry.FetchedAt, err = time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("parse fetched_at: %w", err)
	}

	return &entry, nil
}

// Put upserts a payload for (source, wineName), stamping it with now.
func (c *Cache) Put(ctx context.Context, source, wineName string, payload []byte) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO enrichment (id, source, wine_name, payload, fetched_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (source, wine_name)
		 DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		uuid.NewString(), source, wineName, payload,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert enrichment row: %w", err)
	}
	return nil
}

// Prune removes entries older than the given cutoff. Returns rows removed.
func (c *Cache) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM enrichment WHERE fetched_at < ?`,
		cutoff.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("prune enrichment rows: %w", err)
	}
	return res.RowsAffected()
}
