package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for wine documents.
//
// The mapping is designed with these priorities:
//  1. Fast full-text search on wine names with English stemming
//  2. Producer and tasting-note matches as secondary signals
//  3. Exact keyword matching for color, appellation, and grape filters
//  4. Numeric range queries for price and vintage year
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// --- Text fields (full-text searchable) ---

	// Name - primary search target
	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = en.AnalyzerName
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	// Producer - searchable with simple analyzer (no stemming of names)
	producerFieldMapping := bleve.NewTextFieldMapping()
	producerFieldMapping.Analyzer = simple.Name
	producerFieldMapping.Store = true
	producerFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("producer", producerFieldMapping)

	// Description - searchable but not stored
	descFieldMapping := bleve.NewTextFieldMapping()
	descFieldMapping.Analyzer = en.AnalyzerName
	descFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("description", descFieldMapping)

	// Tasting notes - searchable but not stored
	notesFieldMapping := bleve.NewTextFieldMapping()
	notesFieldMapping.Analyzer = en.AnalyzerName
	notesFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("tasting_notes", notesFieldMapping)

	// --- Keyword fields (exact match, facetable) ---

	// ID - stored but not analyzed
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Color - for filtering and faceting
	colorFieldMapping := bleve.NewTextFieldMapping()
	colorFieldMapping.Analyzer = keyword.Name
	colorFieldMapping.Store = true
	colorFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("color", colorFieldMapping)

	// Appellation - exact matching and faceting
	appellationFieldMapping := bleve.NewTextFieldMapping()
	appellationFieldMapping.Analyzer = keyword.Name
	appellationFieldMapping.Store = true
	appellationFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("appellation", appellationFieldMapping)

	// Grapes - keyword analyzer keeps variety names intact ("Sauvignon Blanc")
	grapesFieldMapping := bleve.NewTextFieldMapping()
	grapesFieldMapping.Analyzer = keyword.Name
	grapesFieldMapping.Store = true
	grapesFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("grapes", grapesFieldMapping)

	// --- Numeric fields (range queries, sorting) ---

	priceFieldMapping := bleve.NewNumericFieldMapping()
	priceFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("price", priceFieldMapping)

	yearFieldMapping := bleve.NewNumericFieldMapping()
	yearFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("latest_year", yearFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
