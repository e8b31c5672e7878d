package services

import (
	"regexp"
	"strings"

	"github.com/dishcovery/dishcovery/internal/domain/models"
)

// Keyword heuristics for assigning a diet category to a synced meal.
// Checked in order; the first hit wins, and anything unrecognized is
// treated as non-veg so meat dishes never leak into vegetarian results.
var (
	nonVegRe     = regexp.MustCompile(`(?i)chicken|meat|beef|lamb|fish|pork|bacon|shrimp|egg`)
	dessertsRe   = regexp.MustCompile(`(?i)sugar|cream|chocolate|ice|cake|cookie|sweet|pudding|custard`)
	drinksRe     = regexp.MustCompile(`(?i)juice|coffee|tea|cocktail|smoothie|milkshake|drink|soda`)
	vegetarianRe = regexp.MustCompile(`(?i)tofu|paneer|vegetable|lentil|bean|spinach|rice|dal|potato|cheese|broccoli`)
)

// ClassifyDiet derives the diet category for a meal from its upstream
// category and ingredient list.
func ClassifyDiet(upstreamCategory string, ingredients []string) models.DietCategory {
	switch strings.ToLower(strings.TrimSpace(upstreamCategory)) {
	case "dessert":
		return models.DietDesserts
	case "vegetarian", "vegan":
		return models.DietVegetarian
	}

	joined := strings.ToLower(strings.Join(ingredients, " "))
	switch {
	case nonVegRe.MatchString(joined):
		return models.DietNonVeg
	case dessertsRe.MatchString(joined):
		return models.DietDesserts
	case drinksRe.MatchString(joined):
		return models.DietDrinks
	case vegetarianRe.MatchString(joined):
		return models.DietVegetarian
	default:
		return models.DietNonVeg
	}
}
