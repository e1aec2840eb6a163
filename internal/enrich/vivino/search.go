package vivino

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
)

// SearchWines searches Vivino for wines matching the query.
func (c *Client) SearchWines(ctx context.Context, query string) ([]WineRating, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)

	searchURL := c.baseURL + "/wines/search?" + params.Encode()

	c.logger.Debug("searching Vivino",
		"query", query,
		"url", searchURL,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.UnmarshalRead(resp.Body, &searchResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.Debug("Vivino search results",
		"query", query,
		"count", len(searchResp.Wines),
	)

	results := make([]WineRating, 0, len(searchResp.Wines))
	for i := range searchResp.Wines {
		w := &searchResp.Wines[i]
		results = append(results, WineRating{
			ID:            w.ID,
			Name:          w.Name,
			Winery:        w.Winery.Name,
			AverageRating: w.Statistics.RatingsAverage,
			RatingsCount:  w.Statistics.RatingsCount,
		})
	}

	return results, nil
}
