// Package vinmonopolet provides a client for looking up wine prices and
// availability from the Vinmonopolet product API.
package vinmonopolet

// ProductResult represents a wine product from a Vinmonopolet search.
type ProductResult struct {
	Code       string  `json:"code"`        // Vinmonopolet product code
	Name       string  `json:"name"`        // Product name
	Price      float64 `json:"price"`       // Price in NOK
	Volume     float64 `json:"volume"`      // Bottle volume in litres
	Country    string  `json:"country"`     // Country of origin
	District   string  `json:"district"`    // Wine district
	Buyable    bool    `json:"buyable"`     // Available for purchase
	ProductURL string  `json:"product_url"` // Link to the product page
}

// productsResponse is the raw API response.
type productsResponse struct {
	Products []productResult `json:"products"`
}

// productResult is a single product from the raw API response.
type productResult struct {
	Code string `json:"code"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Price struct {
		Value float64 `json:"value"`
	} `json:"price"`
	Volume struct {
		Value float64 `json:"value"`
	} `json:"volume"`
	MainCountry struct {
		Name string `json:"name"`
	} `json:"main_country"`
	District struct {
		Name string `json:"name"`
	} `json:"district"`
	Buyable bool `json:"buyable"`
}
