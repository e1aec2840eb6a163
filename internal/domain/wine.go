// Package domain contains the core business entities for the cellar server:
// the wine catalog, flavor profiles, and per-user cellar inventory.
package domain

// WineColor classifies a wine by color.
type WineColor string

// Wine colors recognized by the catalog.
const (
	WineColorRed   WineColor = "red"
	WineColorWhite WineColor = "white"
	WineColorRose  WineColor = "rosé"
)

// StorageRecommendation describes how long a vintage should be kept.
type StorageRecommendation string

// Storage recommendations, from drink-immediately to decade-plus aging.
const (
	StorageDrinkNow   StorageRecommendation = "drink-now"
	StorageDrinkSoon  StorageRecommendation = "drink-soon"
	StorageShortTerm  StorageRecommendation = "short-term"
	StorageMediumTerm StorageRecommendation = "medium-term"
	StorageLongTerm   StorageRecommendation = "long-term"
)

// DrinkingWindow is the optimal drinking window for a vintage,
// expressed as year offsets from the vintage year.
type DrinkingWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Vintage is one year's release of a wine. Within a WineRecord no two
// vintages share a year.
type Vintage struct {
	Year                  int                   `json:"year"`
	AlcoholContent        float64               `json:"alcohol_content"`
	TastingNotes          []string              `json:"tasting_notes,omitempty"`
	StorageRecommendation StorageRecommendation `json:"storage_recommendation"`
	OptimalDrinkingWindow DrinkingWindow        `json:"optimal_drinking_window"`
	Price                 *float64              `json:"price,omitempty"`
	Notes                 string                `json:"notes,omitempty"`
}

// FoodPairing is one dish a wine pairs with.
type FoodPairing struct {
	Dish        string `json:"dish"`
	Description string `json:"description,omitempty"`
}

// WineRecord represents one catalog wine: a producer's labeled product,
// independent of vintage. Catalog entries are read-only seed data.
// A valid record always has at least one vintage.
type WineRecord struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Producer     string        `json:"producer"`
	Color        WineColor     `json:"color"`
	Appellation  string        `json:"appellation,omitempty"`
	Grapes       []string      `json:"grapes"`
	Description  string        `json:"description,omitempty"`
	FoodPairings []FoodPairing `json:"food_pairings,omitempty"`
	Vintages     []Vintage     `json:"vintages"`
}

// LatestVintage returns the vintage with the highest year.
// If several vintages share the highest year the first encountered wins.
// Returns nil for a record with no vintages, which valid catalog data
// never produces.
func (w *WineRecord) LatestVintage() *Vintage {
	if len(w.Vintages) == 0 {
		return nil
	}
	latest := &w.Vintages[0]
	for i := 1; i < len(w.Vintages); i++ {
		if w.Vintages[i].Year > latest.Year {
			latest = &w.Vintages[i]
		}
	}
	return latest
}

// VintageByYear finds a vintage by year. Returns nil when absent.
func (w *WineRecord) VintageByYear(year int) *Vintage {
	for i := range w.Vintages {
		if w.Vintages[i].Year == year {
			return &w.Vintages[i]
		}
	}
	return nil
}

// HasAnyGrape reports whether the wine's grape list contains at least one
// of the given variety names. Matching is exact: catalog data uses
// canonical variety names.
func (w *WineRecord) HasAnyGrape(varieties ...string) bool {
	for _, g := range w.Grapes {
		for _, v := range varieties {
			if g == v {
				return true
			}
		}
	}
	return false
}
