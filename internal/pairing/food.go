package pairing

import (
	"sort"
	"strings"

	"github.com/luberoncellar/cellar-server/internal/domain"
)

// CategoryAll disables category filtering in MatchFood.
const CategoryAll = "all"

// foodCategoryKeywords maps a food category to the keywords that place a
// dish in it. Dish names in the catalog are Norwegian, so the keywords are
// too. Static reference data; matching is lowercase substring containment
// against dish name + description.
var foodCategoryKeywords = map[string][]string{
	"fish":       {"fisk", "torsk", "laks", "steinbit", "kveite", "havabbor"},
	"shellfish":  {"skalldyr", "reker", "kamskjell", "hummer", "krabbe", "blåskjell"},
	"meat":       {"kjøtt", "lam", "storfe", "okse", "svin", "vilt", "hjort"},
	"poultry":    {"kylling", "and", "kalkun", "perlehøne"},
	"cheese":     {"ost", "chèvre", "brie", "comté", "parmesan"},
	"vegetarian": {"grønnsak", "vegetar", "sopp", "salat", "ratatouille"},
	"dessert":    {"dessert", "sjokolade", "kake", "søt", "frukt"},
}

// FoodCategories returns the known food category names, sorted.
func FoodCategories() []string {
	names := make([]string, 0, len(foodCategoryKeywords))
	for name := range foodCategoryKeywords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FoodMatch is one (wine, pairing) row of a food-pairing query.
type FoodMatch struct {
	Wine    *domain.WineRecord `json:"wine"`
	Pairing domain.FoodPairing `json:"pairing"`
}

// MatchFood expands every wine's food pairings to individual (wine, pairing)
// rows and filters them by search term and category. No relevance score is
// computed; rows come back in catalog order. A pairing is included when the
// search term is empty or case-insensitively contained in the dish name or
// description, and the category is "all" or one of its keywords appears in
// the combined dish + description text.
func MatchFood(catalog []domain.WineRecord, searchTerm, category string) []FoodMatch {
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	matches := make([]FoodMatch, 0)
	for i := range catalog {
		wine := &catalog[i]
		for _, pairing := range wine.FoodPairings {
			dish := strings.ToLower(pairing.Dish)
			desc := strings.ToLower(pairing.Description)

			if term != "" && !strings.Contains(dish, term) && !strings.Contains(desc, term) {
				continue
			}
			if !matchesCategory(dish+" "+desc, category) {
				continue
			}

			matches = append(matches, FoodMatch{Wine: wine, Pairing: pairing})
		}
	}
	return matches
}

// matchesCategory tests the combined lowercase dish+description text
// against the category's keyword list. An unknown category matches nothing.
func matchesCategory(text, category string) bool {
	if category == "" || category == CategoryAll {
		return true
	}
	for _, keyword := range foodCategoryKeywords[category] {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// DishCount is a dish name with its catalog-wide frequency.
type DishCount struct {
	Dish  string `json:"dish"`
	Count int    `json:"count"`
}

// PopularDishes counts distinct dish names across the whole catalog and
// returns the most frequent ones, descending by count and truncated to
// limit. Ties order alphabetically so results are deterministic.
func PopularDishes(catalog []domain.WineRecord, limit int) []DishCount {
	counts := make(map[string]int)
	for i := range catalog {
		for _, pairing := range catalog[i].FoodPairings {
			counts[pairing.Dish]++
		}
	}

	dishes := make([]DishCount, 0, len(counts))
	for dish, count := range counts {
		dishes = append(dishes, DishCount{Dish: dish, Count: count})
	}

	sort.Slice(dishes, func(i, j int) bool {
		if dishes[i].Count != dishes[j].Count {
			return dishes[i].Count > dishes[j].Count
		}
		return dishes[i].Dish < dishes[j].Dish
	})

	if limit > 0 && len(dishes) > limit {
		dishes = dishes[:limit]
	}
	return dishes
}
