// Package pairing implements the wine matching and scoring engine: flavor
// affinity scoring, flavor- and food-pairing search, and score labels.
// Everything here is pure and safe for concurrent use.
package pairing

import (
	"strings"

	"github.com/luberoncellar/cellar-server/internal/domain"
)

// Score contributions. The total is a raw point sum with no normalization;
// the label thresholds below are tuned to this sum.
const (
	colorMatchPoints     = 30
	characteristicPoints = 10
	grapeRulePoints      = 10
)

// Taste dimensions at or above this intensity trigger the grape heuristics.
const strongTasteThreshold = 4

// Grape sets for the four affinity heuristics. Variety names are canonical
// catalog spellings.
var (
	acidicGrapes      = []string{"Sauvignon Blanc", "Vermentino", "Roussanne"}
	herbalGrapes      = []string{"Syrah", "Grenache", "Vermentino", "Roussanne"}
	smokySpicyGrapes  = []string{"Syrah", "Grenache", "Mourvèdre"}
	creamyWhiteGrapes = []string{"Viognier", "Roussanne", "Marsanne"}
)

// ScoreWine computes the affinity score of a wine for a flavor profile.
// Deterministic and total: absent optional fields contribute zero, and the
// result is never negative.
//
// Contributions, all additive:
//   - preferred color match: +30
//   - each wineCharacteristics keyword found in the wine's description or
//     latest-vintage tasting notes (case-insensitive substring): +10
//   - each matching grape heuristic (acidic, herbal, smoky/spicy red,
//     creamy white): +10
func ScoreWine(wine *domain.WineRecord, flavor *domain.FlavorProfile) int {
	score := 0

	if flavor.PrefersColor(wine.Color) {
		score += colorMatchPoints
	}

	if len(flavor.WineCharacteristics) > 0 {
		haystack := characteristicHaystack(wine)
		for _, keyword := range flavor.WineCharacteristics {
			if strings.Contains(haystack, strings.ToLower(keyword)) {
				score += characteristicPoints
			}
		}
	}

	p := flavor.Profile

	if p.Acidic >= strongTasteThreshold && wine.HasAnyGrape(acidicGrapes...) {
		score += grapeRulePoints
	}
	if p.Herbal >= strongTasteThreshold && wine.HasAnyGrape(herbalGrapes...) {
		score += grapeRulePoints
	}
	if (p.Smoky >= strongTasteThreshold || p.Spicy >= strongTasteThreshold) &&
		wine.Color == domain.WineColorRed && wine.HasAnyGrape(smokySpicyGrapes...) {
		score += grapeRulePoints
	}
	if p.Creamy >= strongTasteThreshold &&
		wine.Color == domain.WineColorWhite && wine.HasAnyGrape(creamyWhiteGrapes...) {
		score += grapeRulePoints
	}

	return score
}

// characteristicHaystack builds the lowercase text the characteristic
// keywords are matched against: the wine description plus the tasting notes
// of the latest vintage.
func characteristicHaystack(wine *domain.WineRecord) string {
	var b strings.Builder
	b.WriteString(wine.Description)
	if latest := wine.LatestVintage(); latest != nil {
		for _, note := range latest.TastingNotes {
			b.WriteString(" ")
			b.WriteString(note)
		}
	}
	return strings.ToLower(b.String())
}

// Score labels, user-visible classifications of a raw score.
const (
	LabelExcellent = "excellent"
	LabelGood      = "good"
	LabelFair      = "fair"
	LabelPossible  = "possible"
)

// ScoreLabel maps a score to its user-visible label.
func ScoreLabel(score int) string {
	switch {
	case score >= 60:
		return LabelExcellent
	case score >= 40:
		return LabelGood
	case score >= 20:
		return LabelFair
	default:
		return LabelPossible
	}
}
