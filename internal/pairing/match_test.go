package pairing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luberoncellar/cellar-server/internal/domain"
)

func matchCatalog() []domain.WineRecord {
	return []domain.WineRecord{
		{
			ID:       "wine-red-syrah",
			Color:    domain.WineColorRed,
			Grapes:   []string{"Syrah"},
			Vintages: []domain.Vintage{{Year: 2020}},
		},
		{
			ID:       "wine-white-viognier",
			Color:    domain.WineColorWhite,
			Grapes:   []string{"Viognier"},
			Vintages: []domain.Vintage{{Year: 2022}},
		},
		{
			ID:       "wine-red-merlot",
			Color:    domain.WineColorRed,
			Grapes:   []string{"Merlot"},
			Vintages: []domain.Vintage{{Year: 2019}},
		},
	}
}

func TestMatchFlavor_ExcludesZeroScores(t *testing.T) {
	catalog := matchCatalog()
	flavor := &domain.FlavorProfile{
		PreferredWineColors: []domain.WineColor{domain.WineColorWhite},
	}

	matches := MatchFlavor(catalog, flavor, ColorFilterAll)

	require.Len(t, matches, 1)
	assert.Equal(t, "wine-white-viognier", matches[0].Wine.ID)
	assert.Equal(t, 30, matches[0].Score)
}

func TestMatchFlavor_SortedDescendingStable(t *testing.T) {
	catalog := matchCatalog()
	// Reds get 30 for color; the Syrah additionally gets the spicy-red rule.
	flavor := &domain.FlavorProfile{
		Profile:             domain.TasteProfile{Spicy: 5, Salty: 1, Acidic: 1, Creamy: 1, Smoky: 1, Herbal: 1, Sweet: 1},
		PreferredWineColors: []domain.WineColor{domain.WineColorRed},
	}

	matches := MatchFlavor(catalog, flavor, ColorFilterAll)

	require.Len(t, matches, 2)
	assert.Equal(t, "wine-red-syrah", matches[0].Wine.ID)
	assert.Equal(t, 40, matches[0].Score)
	assert.Equal(t, "wine-red-merlot", matches[1].Wine.ID)
	assert.Equal(t, 30, matches[1].Score)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
}

func TestMatchFlavor_TiesKeepCatalogOrder(t *testing.T) {
	catalog := matchCatalog()
	flavor := &domain.FlavorProfile{
		PreferredWineColors: []domain.WineColor{domain.WineColorRed},
	}

	matches := MatchFlavor(catalog, flavor, ColorFilterAll)

	require.Len(t, matches, 2)
	assert.Equal(t, "wine-red-syrah", matches[0].Wine.ID)
	assert.Equal(t, "wine-red-merlot", matches[1].Wine.ID)
}

func TestMatchFlavor_ColorFilter(t *testing.T) {
	catalog := matchCatalog()
	flavor := &domain.FlavorProfile{
		PreferredWineColors: []domain.WineColor{
			domain.WineColorRed,
			domain.WineColorWhite,
		},
	}

	matches := MatchFlavor(catalog, flavor, "white")

	require.Len(t, matches, 1)
	for _, m := range matches {
		assert.Equal(t, domain.WineColorWhite, m.Wine.Color)
	}
}

func TestMatchFlavor_LabelsAttached(t *testing.T) {
	catalog := matchCatalog()
	flavor := &domain.FlavorProfile{
		PreferredWineColors: []domain.WineColor{domain.WineColorRed},
	}

	matches := MatchFlavor(catalog, flavor, ColorFilterAll)

	require.NotEmpty(t, matches)
	assert.Equal(t, "fair", matches[0].Label)
}
