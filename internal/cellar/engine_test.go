package cellar

import (
	"context"
	"encoding/json/v2"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luberoncellar/cellar-server/internal/domain"
)

// memCollaborator is an in-memory Collaborator for tests. Save failures can
// be injected to verify that failed writes never corrupt loaded state.
type memCollaborator struct {
	cellar  *domain.Cellar
	saveErr error
}

func (m *memCollaborator) Load(_ context.Context) (*domain.Cellar, error) {
	return m.cellar.Clone(), nil
}

func (m *memCollaborator) Save(_ context.Context, c *domain.Cellar) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.cellar = c.Clone()
	return nil
}

func setupEngine(t *testing.T) (*Engine, *memCollaborator) {
	t.Helper()
	store := &memCollaborator{cellar: &domain.Cellar{UserID: "user-1"}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngine(store, logger), store
}

func TestEngine_Add_CreatesEntryWithDefaults(t *testing.T) {
	engine, _ := setupEngine(t)

	cellar, err := engine.Add(context.Background(), "wine-a", 2020, 2)

	require.NoError(t, err)
	require.Len(t, cellar.Entries, 1)
	assert.Equal(t, 2, cellar.Entries[0].Quantity)
	assert.Equal(t, domain.CellarStatusInCellar, cellar.Entries[0].Status)
}

func TestEngine_Add_TwiceProducesOneRow(t *testing.T) {
	engine, _ := setupEngine(t)
	ctx := context.Background()

	_, err := engine.Add(ctx, "wine-a", 2020, 1)
	require.NoError(t, err)
	cellar, err := engine.Add(ctx, "wine-a", 2020, 1)
	require.NoError(t, err)

	require.Len(t, cellar.Entries, 1)
	assert.Equal(t, 2, cellar.Entries[0].Quantity)
}

func TestEngine_Add_DistinctYearsAreDistinctRows(t *testing.T) {
	engine, _ := setupEngine(t)
	ctx := context.Background()

	_, err := engine.Add(ctx, "wine-a", 2020, 1)
	require.NoError(t, err)
	cellar, err := engine.Add(ctx, "wine-a", 2021, 1)
	require.NoError(t, err)

	assert.Len(t, cellar.Entries, 2)
}

func TestEngine_Add_UnspecifiedQuantityDefaultsToOne(t *testing.T) {
	engine, _ := setupEngine(t)

	cellar, err := engine.Add(context.Background(), "wine-a", 2020, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, cellar.Entries[0].Quantity)
}

func TestEngine_Remove_DeletesRowAtZero(t *testing.T) {
	engine, _ := setupEngine(t)
	ctx := context.Background()

	_, err := engine.Add(ctx, "wine-a", 2020, 2)
	require.NoError(t, err)
	cellar, err := engine.Remove(ctx, "wine-a", 2020, 2)
	require.NoError(t, err)

	assert.Empty(t, cellar.Entries, "zero-quantity rows must be deleted, not kept")
}

func TestEngine_Remove_DeletesRowBelowZero(t *testing.T) {
	engine, _ := setupEngine(t)
	ctx := context.Background()

	_, err := engine.Add(ctx, "wine-a", 2020, 1)
	require.NoError(t, err)
	cellar, err := engine.Remove(ctx, "wine-a", 2020, 5)
	require.NoError(t, err)

	assert.Empty(t, cellar.Entries)
}

func TestEngine_Remove_ZeroQuantityIsNoOp(t *testing.T) {
	engine, store := setupEngine(t)
	ctx := context.Background()

	_, err := engine.Add(ctx, "wine-a", 2020, 3)
	require.NoError(t, err)
	cellar, err := engine.Remove(ctx, "wine-a", 2020, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, cellar.Entries[0].Quantity)
	assert.Equal(t, 3, store.cellar.Entries[0].Quantity)
}

func TestEngine_Remove_AbsentEntryIsNoOp(t *testing.T) {
	engine, _ := setupEngine(t)

	cellar, err := engine.Remove(context.Background(), "wine-missing", 2020, 1)

	require.NoError(t, err)
	assert.Empty(t, cellar.Entries)
}

func TestEngine_Update_MergesMetadataOnly(t *testing.T) {
	engine, _ := setupEngine(t)
	ctx := context.Background()

	_, err := engine.Add(ctx, "wine-a", 2020, 3)
	require.NoError(t, err)

	notes := "back shelf"
	rating := 4
	cellar, err := engine.Update(ctx, "wine-a", 2020, EntryPatch{
		Notes:  &notes,
		Rating: &rating,
	})

	require.NoError(t, err)
	entry := cellar.Entries[0]
	assert.Equal(t, 3, entry.Quantity, "metadata update must never change quantity")
	assert.Equal(t, "back shelf", entry.Notes)
	require.NotNil(t, entry.Rating)
	assert.Equal(t, 4, *entry.Rating)
}

func TestEngine_Update_PartialPatchLeavesOtherFields(t *testing.T) {
	engine, _ := setupEngine(t)
	ctx := context.Background()

	_, err := engine.Add(ctx, "wine-a", 2020, 1)
	require.NoError(t, err)
	location := "rack 3"
	_, err = engine.Update(ctx, "wine-a", 2020, EntryPatch{Location: &location})
	require.NoError(t, err)

	notes := "gift"
	cellar, err := engine.Update(ctx, "wine-a", 2020, EntryPatch{Notes: &notes})
	require.NoError(t, err)

	assert.Equal(t, "rack 3", cellar.Entries[0].Location)
	assert.Equal(t, "gift", cellar.Entries[0].Notes)
}

func TestEngine_Update_AbsentEntryIsNoOp(t *testing.T) {
	engine, store := setupEngine(t)

	notes := "x"
	cellar, err := engine.Update(context.Background(), "wine-missing", 2020, EntryPatch{Notes: &notes})

	require.NoError(t, err)
	assert.Empty(t, cellar.Entries, "metadata updates must never materialize inventory")
	assert.Empty(t, store.cellar.Entries)
}

func TestEngine_Update_RejectsOutOfRangeRating(t *testing.T) {
	engine, _ := setupEngine(t)

	rating := 6
	_, err := engine.Update(context.Background(), "wine-a", 2020, EntryPatch{Rating: &rating})

	assert.Error(t, err)
}

func TestEngine_Import_ReplacesWholesale(t *testing.T) {
	engine, _ := setupEngine(t)
	ctx := context.Background()

	_, err := engine.Add(ctx, "wine-old", 2019, 5)
	require.NoError(t, err)

	payload := []byte(`{"wines": [{"wineId": "wine-new", "year": 2022, "quantity": 1}]}`)
	cellar, err := engine.Import(ctx, payload)

	require.NoError(t, err)
	require.Len(t, cellar.Entries, 1)
	assert.Equal(t, "wine-new", cellar.Entries[0].WineID)
}

func TestEngine_Import_EmptyListClearsCellar(t *testing.T) {
	engine, _ := setupEngine(t)
	ctx := context.Background()

	_, err := engine.Add(ctx, "wine-a", 2020, 1)
	require.NoError(t, err)

	cellar, err := engine.Import(ctx, []byte(`{"wines": []}`))

	require.NoError(t, err)
	assert.Empty(t, cellar.Entries)
}

func TestEngine_Import_RejectsNonListWines(t *testing.T) {
	engine, store := setupEngine(t)
	ctx := context.Background()

	for _, id := range []string{"wine-a", "wine-b", "wine-c"} {
		_, err := engine.Add(ctx, id, 2020, 1)
		require.NoError(t, err)
	}

	_, err := engine.Import(ctx, []byte(`{"wines": "not-a-list"}`))

	assert.Error(t, err)
	assert.Len(t, store.cellar.Entries, 3, "failed import must leave the cellar untouched")
}

func TestEngine_Import_RejectsMissingWines(t *testing.T) {
	engine, store := setupEngine(t)
	ctx := context.Background()

	_, err := engine.Add(ctx, "wine-a", 2020, 1)
	require.NoError(t, err)

	_, err = engine.Import(ctx, []byte(`{}`))
	assert.Error(t, err)

	_, err = engine.Import(ctx, []byte(`{"wines": null}`))
	assert.Error(t, err)

	assert.Len(t, store.cellar.Entries, 1)
}

func TestEngine_Import_RejectsMalformedJSON(t *testing.T) {
	engine, _ := setupEngine(t)

	_, err := engine.Import(context.Background(), []byte(`{nope`))

	assert.Error(t, err)
}

func TestEngine_ExportImport_RoundTrips(t *testing.T) {
	engine, store := setupEngine(t)
	ctx := context.Background()

	rating := 5
	favorite := true
	store.cellar = &domain.Cellar{
		UserID: "user-1",
		Entries: []domain.CellarEntry{
			{WineID: "wine-a", Year: 2020, Quantity: 2, Status: domain.CellarStatusInCellar, Location: "rack 1"},
			{WineID: "wine-b", Year: 2018, Quantity: 1, Status: domain.CellarStatusTasted, Rating: &rating, IsFavorite: &favorite},
		},
	}

	original := store.cellar.Clone()

	snapshot, err := engine.Export(ctx)
	require.NoError(t, err)

	payload, err := json.Marshal(snapshot)
	require.NoError(t, err)

	imported, err := engine.Import(ctx, payload)
	require.NoError(t, err)

	assert.Equal(t, original.Entries, imported.Entries)
}

func TestEngine_FailedSaveDoesNotMutateState(t *testing.T) {
	engine, store := setupEngine(t)
	ctx := context.Background()

	_, err := engine.Add(ctx, "wine-a", 2020, 2)
	require.NoError(t, err)

	store.saveErr = errors.New("network down")

	_, err = engine.Add(ctx, "wine-a", 2020, 1)
	assert.Error(t, err)
	assert.Equal(t, 2, store.cellar.Entries[0].Quantity)

	_, err = engine.Remove(ctx, "wine-a", 2020, 1)
	assert.Error(t, err)
	assert.Equal(t, 2, store.cellar.Entries[0].Quantity)
}
