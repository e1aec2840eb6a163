// Package catalog holds the read-only Luberon wine catalog and its flavor
// profiles. The default catalog ships embedded in the binary; deployments
// can point at an external override file instead.
package catalog

import (
	_ "embed"
	"encoding/json/v2"
	"fmt"
	"os"

	"github.com/luberoncellar/cellar-server/internal/domain"
)

//go:embed seed.json
var seedData []byte

// Catalog is an immutable snapshot of the wine catalog. Replace the whole
// snapshot to update it; never mutate one in place.
type Catalog struct {
	wines   []domain.WineRecord
	flavors []domain.FlavorProfile

	winesByID   map[string]*domain.WineRecord
	flavorsByID map[string]*domain.FlavorProfile
}

type seedFile struct {
	Wines   []domain.WineRecord    `json:"wines"`
	Flavors []domain.FlavorProfile `json:"flavors"`
}

// Load builds the catalog from the embedded seed data.
func Load() (*Catalog, error) {
	return parse(seedData)
}

// LoadFile builds the catalog from an external override file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	c, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return c, nil
}

func parse(data []byte) (*Catalog, error) {
	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse catalog data: %w", err)
	}

	c := &Catalog{
		wines:       seed.Wines,
		flavors:     seed.Flavors,
		winesByID:   make(map[string]*domain.WineRecord, len(seed.Wines)),
		flavorsByID: make(map[string]*domain.FlavorProfile, len(seed.Flavors)),
	}

	for i := range c.wines {
		w := &c.wines[i]
		if err := validateWine(w); err != nil {
			return nil, err
		}
		if _, dup := c.winesByID[w.ID]; dup {
			return nil, fmt.Errorf("duplicate wine id %q", w.ID)
		}
		c.winesByID[w.ID] = w
	}

	for i := range c.flavors {
		f := &c.flavors[i]
		if f.ID == "" || f.Name == "" {
			return nil, fmt.Errorf("flavor profile missing id or name")
		}
		if _, dup := c.flavorsByID[f.ID]; dup {
			return nil, fmt.Errorf("duplicate flavor id %q", f.ID)
		}
		c.flavorsByID[f.ID] = f
	}

	return c, nil
}

func validateWine(w *domain.WineRecord) error {
	if w.ID == "" || w.Name == "" {
		return fmt.Errorf("wine record missing id or name")
	}

	switch w.Color {
	case domain.WineColorRed, domain.WineColorWhite, domain.WineColorRose:
	default:
		return fmt.Errorf("wine %q has unknown color %q", w.ID, w.Color)
	}

	// Every catalog wine carries at least one vintage; scoring relies on it.
	if len(w.Vintages) == 0 {
		return fmt.Errorf("wine %q has no vintages", w.ID)
	}

	seen := make(map[int]bool, len(w.Vintages))
	for _, v := range w.Vintages {
		if seen[v.Year] {
			return fmt.Errorf("wine %q has duplicate vintage year %d", w.ID, v.Year)
		}
		seen[v.Year] = true
	}

	return nil
}

// Wines returns all catalog wines in catalog order.
func (c *Catalog) Wines() []domain.WineRecord {
	return c.wines
}

// Wine returns the wine with the given ID, or nil when absent.
func (c *Catalog) Wine(id string) *domain.WineRecord {
	return c.winesByID[id]
}

// Flavors returns all flavor profiles in catalog order.
func (c *Catalog) Flavors() []domain.FlavorProfile {
	return c.flavors
}

// Flavor returns the flavor profile with the given ID, or nil when absent.
func (c *Catalog) Flavor(id string) *domain.FlavorProfile {
	return c.flavorsByID[id]
}

// Colors returns the wine colors present in the catalog, in first-seen order.
func (c *Catalog) Colors() []domain.WineColor {
	seen := make(map[domain.WineColor]bool, 3)
	var colors []domain.WineColor
	for i := range c.wines {
		if !seen[c.wines[i].Color] {
			seen[c.wines[i].Color] = true
			colors = append(colors, c.wines[i].Color)
		}
	}
	return colors
}
