package pairing

import (
	"sort"

	"github.com/luberoncellar/cellar-server/internal/domain"
)

// ColorFilterAll disables color filtering in MatchFlavor.
const ColorFilterAll = "all"

// FlavorMatch is one scored result of a flavor-pairing query.
type FlavorMatch struct {
	Wine  *domain.WineRecord `json:"wine"`
	Score int                `json:"score"`
	Label string             `json:"label"`
}

// MatchFlavor scores every catalog wine against the flavor profile and
// returns the matches (score > 0), optionally restricted to one color,
// ordered by descending score. The sort is stable: ties keep catalog order.
func MatchFlavor(catalog []domain.WineRecord, flavor *domain.FlavorProfile, colorFilter string) []FlavorMatch {
	matches := make([]FlavorMatch, 0)
	for i := range catalog {
		wine := &catalog[i]
		score := ScoreWine(wine, flavor)
		if score <= 0 {
			continue
		}
		if colorFilter != "" && colorFilter != ColorFilterAll && string(wine.Color) != colorFilter {
			continue
		}
		matches = append(matches, FlavorMatch{
			Wine:  wine,
			Score: score,
			Label: ScoreLabel(score),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}
