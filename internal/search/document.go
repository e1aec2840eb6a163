// Package search provides full-text search over the wine catalog using
// Bleve, with faceted filtering on color, appellation, and grapes.
package search

import (
	"strings"

	"github.com/luberoncellar/cellar-server/internal/domain"
)

// WineDocument is the document structure for the Bleve index.
//
// Tasting notes from every vintage are flattened into one searchable
// field. The trade-off is that a hit cannot say which vintage matched,
// but catalog wines carry few vintages and users search by wine, not
// by vintage.
type WineDocument struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Producer    string `json:"producer"`
	Appellation string `json:"appellation,omitempty"`

	Grapes      []string `json:"grapes,omitempty"`
	Description string   `json:"description,omitempty"`

	// Flattened tasting notes across all vintages
	TastingNotes string `json:"tasting_notes,omitempty"`

	Color string `json:"color"`

	// Numeric fields for range queries and sorting
	Price      float64 `json:"price,omitempty"`       // Latest vintage price
	LatestYear int     `json:"latest_year,omitempty"` // Latest vintage year
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *WineDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":    d.ID,
		"name":  d.Name,
		"color": d.Color,
	}

	if d.Producer != "" {
		m["producer"] = d.Producer
	}
	if d.Appellation != "" {
		m["appellation"] = d.Appellation
	}
	if len(d.Grapes) > 0 {
		m["grapes"] = d.Grapes
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.TastingNotes != "" {
		m["tasting_notes"] = d.TastingNotes
	}
	if d.Price > 0 {
		m["price"] = d.Price
	}
	if d.LatestYear > 0 {
		m["latest_year"] = d.LatestYear
	}

	return m
}

// WineToSearchDocument converts a catalog wine to a WineDocument.
func WineToSearchDocument(wine *domain.WineRecord) *WineDocument {
	doc := &WineDocument{
		ID:          wine.ID,
		Name:        wine.Name,
		Producer:    wine.Producer,
		Appellation: wine.Appellation,
		Grapes:      wine.Grapes,
		Description: wine.Description,
		Color:       string(wine.Color),
	}

	var notes []string
	for _, v := range wine.Vintages {
		notes = append(notes, v.TastingNotes...)
	}
	doc.TastingNotes = strings.Join(notes, " ")

	if latest := wine.LatestVintage(); latest != nil {
		doc.LatestYear = latest.Year
		if latest.Price != nil {
			doc.Price = *latest.Price
		}
	}

	return doc
}
