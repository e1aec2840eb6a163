package domain

// CellarStatus tracks where a cellar entry sits in its lifecycle.
type CellarStatus string

// Cellar entry statuses.
const (
	CellarStatusInCellar CellarStatus = "in_cellar"
	CellarStatusTasted   CellarStatus = "tasted"
	CellarStatusWishlist CellarStatus = "wishlist"
)

// CellarEntry is one line of personal inventory: a quantity of a specific
// (wine, vintage) pair. The pair (WineID, Year) is unique within a cellar,
// and quantity is always > 0; zero rows are deleted, never kept.
//
// Field names follow the cellar snapshot interchange format, which clients
// import and export directly.
type CellarEntry struct {
	WineID       string       `json:"wineId"`
	Year         int          `json:"year"`
	Quantity     int          `json:"quantity"`
	PurchaseDate string       `json:"purchaseDate,omitempty"`
	Location     string       `json:"location,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	Status       CellarStatus `json:"status,omitempty"`
	Rating       *int         `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	IsFavorite   *bool        `json:"isFavorite,omitempty"`
	TastingNotes string       `json:"tastingNotes,omitempty"`
	TastedDate   string       `json:"tastedDate,omitempty"`
}

// Cellar is one user's inventory of cellar entries. Row order carries no
// meaning.
type Cellar struct {
	UserID  string        `json:"user_id"`
	Entries []CellarEntry `json:"entries"`
}

// Find returns the index of the entry for (wineID, year), or -1.
func (c *Cellar) Find(wineID string, year int) int {
	for i := range c.Entries {
		if c.Entries[i].WineID == wineID && c.Entries[i].Year == year {
			return i
		}
	}
	return -1
}

// TotalBottles sums quantities across all entries.
func (c *Cellar) TotalBottles() int {
	total := 0
	for i := range c.Entries {
		total += c.Entries[i].Quantity
	}
	return total
}

// Clone returns a deep copy of the cellar. Mutating operations work on a
// copy so a failed save never corrupts the caller's loaded state.
func (c *Cellar) Clone() *Cellar {
	clone := &Cellar{UserID: c.UserID}
	if c.Entries != nil {
		clone.Entries = make([]CellarEntry, len(c.Entries))
		copy(clone.Entries, c.Entries)
	}
	return clone
}

// CellarSnapshot is the serialized import/export shape: a single wines
// field holding the entry list.
type CellarSnapshot struct {
	Wines []CellarEntry `json:"wines"`
}
