// Package cellar implements the reconciliation engine for a user's personal
// wine inventory. Every mutation is a read-modify-write cycle around a
// persistence collaborator's Load and Save; the engine never applies a
// mutation to state it returns unless the underlying write succeeded.
//
// Consistency model: last-write-wins. The engine performs no version
// checking or locking; overlapping writes against the same (wine, year) key
// race at the collaborator, and callers needing stronger guarantees must
// serialize their own writes.
package cellar

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"

	"github.com/luberoncellar/cellar-server/internal/domain"
	domainerrors "github.com/luberoncellar/cellar-server/internal/errors"
)

// Collaborator is the minimum persistence contract the engine needs.
// Implementations are interchangeable: a local file store and a
// remote-synced store both satisfy it with identical semantics.
type Collaborator interface {
	Load(ctx context.Context) (*domain.Cellar, error)
	Save(ctx context.Context, cellar *domain.Cellar) error
}

// Engine applies inventory mutations against a collaborator.
type Engine struct {
	store  Collaborator
	logger *slog.Logger
}

// NewEngine creates a reconciliation engine over the given collaborator.
func NewEngine(store Collaborator, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger,
	}
}

// Get loads the current cellar from the collaborator.
func (e *Engine) Get(ctx context.Context) (*domain.Cellar, error) {
	return e.store.Load(ctx)
}

// Add adds quantity bottles of (wineID, year), creating the entry with
// status in_cellar when absent and incrementing it otherwise. A quantity
// below 1 means unspecified and defaults to 1.
func (e *Engine) Add(ctx context.Context, wineID string, year, quantity int) (*domain.Cellar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if wineID == "" {
		return nil, domainerrors.Validation("wine id cannot be empty")
	}
	if quantity < 1 {
		quantity = 1
	}

	cellar, err := e.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cellar: %w", err)
	}

	next := cellar.Clone()
	if i := next.Find(wineID, year); i >= 0 {
		next.Entries[i].Quantity += quantity
	} else {
		next.Entries = append(next.Entries, domain.CellarEntry{
			WineID:   wineID,
			Year:     year,
			Quantity: quantity,
			Status:   domain.CellarStatusInCellar,
		})
	}

	if err := e.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save cellar: %w", err)
	}

	e.logger.Info("bottles added to cellar",
		"wine_id", wineID,
		"year", year,
		"quantity", quantity,
	)

	return next, nil
}

// Remove removes quantity bottles of (wineID, year). When the remaining
// quantity drops to zero or below the entry is deleted outright, never kept
// as a zero row. Removing from an absent entry is a no-op, and an explicit
// quantity of zero leaves the entry untouched without writing.
func (e *Engine) Remove(ctx context.Context, wineID string, year, quantity int) (*domain.Cellar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, domainerrors.Validation("quantity cannot be negative")
	}

	cellar, err := e.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cellar: %w", err)
	}

	i := cellar.Find(wineID, year)
	if i < 0 || quantity == 0 {
		return cellar, nil
	}

	next := cellar.Clone()
	next.Entries[i].Quantity -= quantity
	if next.Entries[i].Quantity <= 0 {
		next.Entries = append(next.Entries[:i], next.Entries[i+1:]...)
	}

	if err := e.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save cellar: %w", err)
	}

	e.logger.Info("bottles removed from cellar",
		"wine_id", wineID,
		"year", year,
		"quantity", quantity,
	)

	return next, nil
}

// EntryPatch carries the metadata fields Update may merge into an entry.
// Nil fields are left untouched. Quantity is deliberately absent: metadata
// updates never change inventory counts.
type EntryPatch struct {
	PurchaseDate *string
	Location     *string
	Notes        *string
	Status       *domain.CellarStatus
	Rating       *int
	IsFavorite   *bool
	TastingNotes *string
	TastedDate   *string
}

// Update merges the patch into the entry for (wineID, year). Updating an
// absent entry is a no-op: metadata updates never materialize inventory.
func (e *Engine) Update(ctx context.Context, wineID string, year int, patch EntryPatch) (*domain.Cellar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if patch.Rating != nil && (*patch.Rating < 1 || *patch.Rating > 5) {
		return nil, domainerrors.Validation("rating must be between 1 and 5")
	}

	cellar, err := e.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cellar: %w", err)
	}

	i := cellar.Find(wineID, year)
	if i < 0 {
		return cellar, nil
	}

	next := cellar.Clone()
	applyPatch(&next.Entries[i], patch)

	if err := e.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save cellar: %w", err)
	}

	e.logger.Info("cellar entry updated",
		"wine_id", wineID,
		"year", year,
	)

	return next, nil
}

func applyPatch(entry *domain.CellarEntry, patch EntryPatch) {
	if patch.PurchaseDate != nil {
		entry.PurchaseDate = *patch.PurchaseDate
	}
	if patch.Location != nil {
		entry.Location = *patch.Location
	}
	if patch.Notes != nil {
		entry.Notes = *patch.Notes
	}
	if patch.Status != nil {
		entry.Status = *patch.Status
	}
	if patch.Rating != nil {
		entry.Rating = patch.Rating
	}
	if patch.IsFavorite != nil {
		entry.IsFavorite = patch.IsFavorite
	}
	if patch.TastingNotes != nil {
		entry.TastingNotes = *patch.TastingNotes
	}
	if patch.TastedDate != nil {
		entry.TastedDate = *patch.TastedDate
	}
}

// Import parses a serialized cellar snapshot and replaces the entire
// current cellar with it. This is a wholesale overwrite, never a merge. The
// payload must contain a wines field holding a list; anything else is a
// validation failure that leaves the current cellar completely untouched.
// Missing optional fields on individual entries are accepted.
func (e *Engine) Import(ctx context.Context, payload []byte) (*domain.Cellar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var snapshot domain.CellarSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, domainerrors.Validation("invalid cellar snapshot").WithCause(err)
	}
	if snapshot.Wines == nil {
		return nil, domainerrors.Validation("cellar snapshot must contain a wines list")
	}

	cellar, err := e.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cellar: %w", err)
	}

	next := &domain.Cellar{
		UserID:  cellar.UserID,
		Entries: snapshot.Wines,
	}

	if err := e.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save cellar: %w", err)
	}

	e.logger.Info("cellar imported",
		"entries", len(next.Entries),
	)

	return next, nil
}

// Export produces the snapshot shape Import consumes, so that exporting
// and re-importing a cellar round-trips to a structurally equal state.
func (e *Engine) Export(ctx context.Context) (*domain.CellarSnapshot, error) {
	cellar, err := e.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cellar: %w", err)
	}

	entries := cellar.Entries
	if entries == nil {
		entries = []domain.CellarEntry{}
	}
	return &domain.CellarSnapshot{Wines: entries}, nil
}
