package search

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a search query.
type SearchParams struct {
	Query string // User's search query

	// Filters
	Color       string   // Filter by exact wine color
	Appellation string   // Filter by exact appellation
	Grapes      []string // Filter by grape varieties (OR)
	MinPrice    float64
	MaxPrice    float64
	MinYear     int
	MaxYear     int

	// Pagination
	Limit  int
	Offset int

	// Sorting
	SortBy    string // "relevance", "name", "price", "year"
	SortOrder string // "asc", "desc"

	// Options
	IncludeFacets bool     // Include facet counts in results
	FacetFields   []string // Which fields to facet on
	Highlight     bool     // Include match highlighting
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:         20,
		Offset:        0,
		SortBy:        "relevance",
		SortOrder:     "desc",
		IncludeFacets: true,
		FacetFields:   []string{"color", "appellation", "grapes"},
		Highlight:     true,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"took_ms"`
	Hits   []SearchHit  `json:"hits"`
	Facets SearchFacets `json:"facets,omitempty"`
}

// SearchHit represents a single search result.
type SearchHit struct {
	ID          string            `json:"id"`
	Score       float64           `json:"score"`
	Name        string            `json:"name"`
	Producer    string            `json:"producer,omitempty"`
	Appellation string            `json:"appellation,omitempty"`
	Color       string            `json:"color,omitempty"`
	Grapes      []string          `json:"grapes,omitempty"`
	Price       float64           `json:"price,omitempty"`
	LatestYear  int               `json:"latest_year,omitempty"`
	Highlights  map[string]string `json:"highlights,omitempty"`
}

// SearchFacets contains facet counts.
type SearchFacets struct {
	Colors       []FacetCount `json:"colors,omitempty"`
	Appellations []FacetCount `json:"appellations,omitempty"`
	Grapes       []FacetCount `json:"grapes,omitempty"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a search query.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildSearchQuery(params)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)

	addSorting(searchRequest, params)

	if params.IncludeFacets {
		addFacets(searchRequest, params)
	}

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("name")
		searchRequest.Highlight.AddField("producer")
	}

	// Request stored fields
	searchRequest.Fields = []string{
		"id", "name", "producer", "appellation", "color", "grapes",
		"price", "latest_year",
	}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		// Extract stored fields
		if n, ok := hit.Fields["name"].(string); ok {
			searchHit.Name = n
		}
		if p, ok := hit.Fields["producer"].(string); ok {
			searchHit.Producer = p
		}
		if a, ok := hit.Fields["appellation"].(string); ok {
			searchHit.Appellation = a
		}
		if c, ok := hit.Fields["color"].(string); ok {
			searchHit.Color = c
		}
		// Bleve returns a bare string for single-element arrays
		switch g := hit.Fields["grapes"].(type) {
		case string:
			searchHit.Grapes = []string{g}
		case []interface{}:
			for _, v := range g {
				if grape, ok := v.(string); ok {
					searchHit.Grapes = append(searchHit.Grapes, grape)
				}
			}
		}
		if p, ok := hit.Fields["price"].(float64); ok {
			searchHit.Price = p
		}
		if y, ok := hit.Fields["latest_year"].(float64); ok {
			searchHit.LatestYear = int(y)
		}

		// Extract highlights
		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	if params.IncludeFacets {
		result.Facets = extractFacets(searchResult)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	// Main text query across name, producer, description, and tasting notes.
	// Name matches score highest; a note hit alone still surfaces the wine.
	if params.Query != "" {
		textQueries := []query.Query{}

		nameMatch := bleve.NewMatchQuery(params.Query)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)
		textQueries = append(textQueries, nameMatch)

		producerMatch := bleve.NewMatchQuery(params.Query)
		producerMatch.SetField("producer")
		producerMatch.SetBoost(2.0)
		textQueries = append(textQueries, producerMatch)

		descMatch := bleve.NewMatchQuery(params.Query)
		descMatch.SetField("description")
		textQueries = append(textQueries, descMatch)

		notesMatch := bleve.NewMatchQuery(params.Query)
		notesMatch.SetField("tasting_notes")
		textQueries = append(textQueries, notesMatch)

		// Fuzzy matching for typo tolerance on name
		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("name")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		// Prefix query for autocomplete (minimum 2 chars)
		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("name")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		// Combine with OR (match any field)
		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	// Color filter
	if params.Color != "" {
		cq := bleve.NewTermQuery(params.Color)
		cq.SetField("color")
		queries = append(queries, cq)
	}

	// Appellation filter
	if params.Appellation != "" {
		aq := bleve.NewTermQuery(params.Appellation)
		aq.SetField("appellation")
		queries = append(queries, aq)
	}

	// Grape filter (exact match, OR across varieties)
	if len(params.Grapes) > 0 {
		grapeQueries := make([]query.Query, len(params.Grapes))
		for i, grape := range params.Grapes {
			gq := bleve.NewTermQuery(grape)
			gq.SetField("grapes")
			grapeQueries[i] = gq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(grapeQueries...))
	}

	// Price range filter
	if params.MinPrice > 0 || params.MaxPrice > 0 {
		min := params.MinPrice
		max := params.MaxPrice
		if params.MaxPrice == 0 {
			max = math.MaxFloat64
		}
		rangeQuery := bleve.NewNumericRangeQuery(&min, &max)
		rangeQuery.SetField("price")
		queries = append(queries, rangeQuery)
	}

	// Vintage year range filter
	if params.MinYear > 0 || params.MaxYear > 0 {
		min := float64(params.MinYear)
		max := float64(params.MaxYear)
		if params.MaxYear == 0 {
			max = 3000 // Far future
		}
		rangeQuery := bleve.NewNumericRangeQuery(&min, &max)
		rangeQuery.SetField("latest_year")
		queries = append(queries, rangeQuery)
	}

	// Combine all queries with AND
	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params SearchParams) {
	switch params.SortBy {
	case "name":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-name"})
		} else {
			req.SortBy([]string{"name"})
		}
	case "price":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-price", "name"})
		} else {
			req.SortBy([]string{"price", "name"})
		}
	case "year":
		if params.SortOrder == "asc" {
			req.SortBy([]string{"latest_year"})
		} else {
			req.SortBy([]string{"-latest_year"})
		}
	default:
		// Relevance (score) is default - Bleve handles this
		req.SortBy([]string{"-_score"})
	}
}

// addFacets configures facet requests.
func addFacets(req *bleve.SearchRequest, params SearchParams) {
	for _, field := range params.FacetFields {
		facetReq := bleve.NewFacetRequest(field, 20) // Top 20 values
		req.AddFacet(field, facetReq)
	}
}

// extractFacets converts Bleve facets to our format.
func extractFacets(result *bleve.SearchResult) SearchFacets {
	facets := SearchFacets{}

	if colorFacet, ok := result.Facets["color"]; ok {
		for _, term := range colorFacet.Terms.Terms() {
			facets.Colors = append(facets.Colors, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	if appellationFacet, ok := result.Facets["appellation"]; ok {
		for _, term := range appellationFacet.Terms.Terms() {
			facets.Appellations = append(facets.Appellations, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	if grapeFacet, ok := result.Facets["grapes"]; ok {
		for _, term := range grapeFacet.Terms.Terms() {
			facets.Grapes = append(facets.Grapes, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	return facets
}
