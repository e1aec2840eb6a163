// Package vivino provides a client for looking up community wine ratings
// from the Vivino search API.
package vivino

// WineRating represents a wine's community rating from Vivino.
type WineRating struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Winery        string  `json:"winery"`
	AverageRating float64 `json:"average_rating"` // 1.0 - 5.0
	RatingsCount  int     `json:"ratings_count"`
}

// searchResponse is the raw Vivino API response.
type searchResponse struct {
	Wines []searchWine `json:"wines"`
}

// searchWine is a single wine from the raw API response.
type searchWine struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Winery struct {
		Name string `json:"name"`
	} `json:"winery"`
	Statistics struct {
		RatingsAverage float64 `json:"ratings_average"`
		RatingsCount   int     `json:"ratings_count"`
	} `json:"statistics"`
}
