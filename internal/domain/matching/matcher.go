package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dishcovery/dishcovery/internal/domain/models"
)

// maxResults caps the ranked list returned by Match.
const maxResults = 20

// Query is a normalized ingredient search. Build it from raw request
// input with ParseIngredients and NormalizeCategory; Match assumes
// Ingredients are already trimmed and lower-cased.
type Query struct {
	Ingredients []string
	Category    models.DietCategory
	Allergies   []string
}

// RankedDish is a catalog meal annotated with how well it matched the
// query. All original meal fields are carried through unchanged.
type RankedDish struct {
	models.Meal
	MatchScore         int      `json:"matchScore"`
	MissingIngredients []string `json:"missingIngredients"`
}

// categorySynonyms maps accepted spellings onto the canonical diet labels
var categorySynonyms = map[string]models.DietCategory{
	"vegetarian":     models.DietVegetarian,
	"veg":            models.DietVegetarian,
	"non-veg":        models.DietNonVeg,
	"nonveg":         models.DietNonVeg,
	"non vegetarian": models.DietNonVeg,
	"meat":           models.DietNonVeg,
	"dessert":        models.DietDesserts,
	"desserts":       models.DietDesserts,
	"sweet":          models.DietDesserts,
	"drinks":         models.DietDrinks,
	"drink":          models.DietDrinks,
	"beverage":       models.DietDrinks,
}

// NormalizeCategory resolves a user-supplied category through the synonym
// table. Unrecognized or empty input returns "" which means no category
// filter is applied.
func NormalizeCategory(raw string) models.DietCategory {
	return categorySynonyms[strings.ToLower(strings.TrimSpace(raw))]
}

// ParseIngredients coerces the request's ingredients field into a clean
// slice. Accepts a comma-separated string or a slice of strings; anything
// else is a caller error. Entries are trimmed, lower-cased, and empties
// dropped.
func ParseIngredients(v any) ([]string, error) {
	var raw []string
	switch t := v.(type) {
	case string:
		raw = strings.Split(t, ",")
	case []string:
		raw = t
	case []any:
		raw = make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("ingredients must be a comma-separated string or an array of strings")
			}
			raw = append(raw, s)
		}
	default:
		return nil, fmt.Errorf("ingredients must be a comma-separated string or an array of strings")
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("at least one ingredient is required")
	}
	return out, nil
}

// Match runs the fixed ranking pipeline over the supplied catalog:
// category filter, ingredient filter, allergy exclusion, then scoring and
// a stable sort, capped at maxResults. The catalog is never mutated.
//
// Filtering is deliberately more permissive than scoring: a query term
// matches a dish ingredient by substring ("onion" matches "spring onion")
// so near-misses survive to the ranked list, but only exact
// case-insensitive equality earns score. See the package tests for the
// observable consequence of that asymmetry.
func Match(catalog []models.Meal, q Query) []RankedDish {
	if len(catalog) == 0 {
		return []RankedDish{}
	}

	meals := catalog

	// 1. Category filter, skipped entirely when no usable category given
	if q.Category != "" {
		kept := make([]models.Meal, 0, len(meals))
		for _, m := range meals {
			if models.DietCategory(strings.ToLower(string(m.AICategory))) == q.Category {
				kept = append(kept, m)
			}
		}
		meals = kept
	}

	// 2. Keep meals with at least one ingredient matching a query term
	if len(q.Ingredients) > 0 {
		kept := make([]models.Meal, 0, len(meals))
		for _, m := range meals {
			if anyIngredientMatches(m.Ingredients, q.Ingredients) {
				kept = append(kept, m)
			}
		}
		meals = kept
	}

	// 3. Drop meals carrying an allergen. Substring containment on
	// purpose: "nut" must exclude "peanuts".
	if len(q.Allergies) > 0 {
		allergies := lowerAll(q.Allergies)
		kept := make([]models.Meal, 0, len(meals))
		for _, m := range meals {
			if !containsAllergen(m.Ingredients, allergies) {
				kept = append(kept, m)
			}
		}
		meals = kept
	}

	// 4. Score and rank
	querySet := make(map[string]struct{}, len(q.Ingredients))
	for _, ing := range q.Ingredients {
		querySet[ing] = struct{}{}
	}

	ranked := make([]RankedDish, 0, len(meals))
	for _, m := range meals {
		score := 0
		missing := make([]string, 0, len(m.Ingredients))
		for _, ing := range m.Ingredients {
			if _, ok := querySet[strings.ToLower(ing)]; ok {
				score++
			} else {
				missing = append(missing, ing)
			}
		}
		ranked = append(ranked, RankedDish{
			Meal:               m,
			MatchScore:         score,
			MissingIngredients: missing,
		})
	}

	// Stable sort keeps catalog order on ties so results are
	// deterministic across runs
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})

	if len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}

func anyIngredientMatches(ingredients, terms []string) bool {
	for _, ing := range ingredients {
		lower := strings.ToLower(ing)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				return true
			}
		}
	}
	return false
}

func containsAllergen(ingredients, allergies []string) bool {
	for _, ing := range ingredients {
		lower := strings.ToLower(ing)
		for _, a := range allergies {
			if strings.Contains(lower, a) {
				return true
			}
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
