package vinmonopolet

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
)

const defaultPageSize = 10

// SearchProducts searches Vinmonopolet for products matching the query.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]ProductResult, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("pageSize", fmt.Sprintf("%d", defaultPageSize))

	searchURL := c.baseURL + "/products/search?" + params.Encode()

	c.logger.Debug("searching Vinmonopolet",
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

	var searchResp productsResponse
	if err := json.UnmarshalRead(resp.Body, &searchResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.Debug("Vinmonopolet search results",
		"query", query,
		"count", len(searchResp.Products),
	)

	results := make([]ProductResult, 0, len(searchResp.Products))
	for i := range searchResp.Products {
		p := &searchResp.Products[i]
		results = append(results, ProductResult{
			Code:       p.Code,
			Name:       p.Name,
			Price:      p.Price.Value,
			Volume:     p.Volume.Value,
			Country:    p.MainCountry.Name,
			District:   p.District.Name,
			Buyable:    p.Buyable,
			ProductURL: p.URL,
		})
	}

	return results, nil
}
