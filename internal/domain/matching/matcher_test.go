package matching

import (
	"fmt"
	"testing"

	"github.com/dishcovery/dishcovery/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []models.Meal {
	return []models.Meal{
		{Name: "Veg Curry", AICategory: models.DietVegetarian, Ingredients: []string{"potato", "onion", "spinach"}},
		{Name: "Chicken Curry", AICategory: models.DietNonVeg, Ingredients: []string{"chicken", "onion"}},
		{Name: "Mango Lassi", AICategory: models.DietDrinks, Ingredients: []string{"mango", "yogurt"}},
	}
}

func TestNormalizeCategory(t *testing.T) {
	cases := map[string]models.DietCategory{
		"vegetarian":     models.DietVegetarian,
		"veg":            models.DietVegetarian,
		"VEG":            models.DietVegetarian,
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
		"  Sweet ":       models.DietDesserts,
		"paleo":          "",
		"":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeCategory(in), "input %q", in)
	}
}

func TestParseIngredients(t *testing.T) {
	t.Run("comma separated string", func(t *testing.T) {
		got, err := ParseIngredients("Onion, Potato ,spinach")
		require.NoError(t, err)
		assert.Equal(t, []string{"onion", "potato", "spinach"}, got)
	})

	t.Run("string slice", func(t *testing.T) {
		got, err := ParseIngredients([]string{" Chicken ", "RICE"})
		require.NoError(t, err)
		assert.Equal(t, []string{"chicken", "rice"}, got)
	})

	t.Run("any slice from decoded json", func(t *testing.T) {
		got, err := ParseIngredients([]any{"Mango", "yogurt"})
		require.NoError(t, err)
		assert.Equal(t, []string{"mango", "yogurt"}, got)
	})

	t.Run("wrong shape is a validation error", func(t *testing.T) {
		_, err := ParseIngredients(42)
		assert.Error(t, err)
		_, err = ParseIngredients([]any{"onion", 7})
		assert.Error(t, err)
	})

	t.Run("empty after trimming is a validation error", func(t *testing.T) {
		_, err := ParseIngredients(" , , ")
		assert.Error(t, err)
	})
}

func TestMatchEndToEndVegCurry(t *testing.T) {
	got := Match(testCatalog(), Query{
		Ingredients: []string{"onion", "potato"},
		Category:    NormalizeCategory("vegetarian"),
	})

	require.Len(t, got, 1)
	assert.Equal(t, "Veg Curry", got[0].Name)
	assert.Equal(t, 2, got[0].MatchScore)
	assert.Equal(t, []string{"spinach"}, got[0].MissingIngredients)
}

func TestMatchAllergyRemovesOnlyCandidate(t *testing.T) {
	got := Match(testCatalog(), Query{
		Ingredients: []string{"chicken"},
		Allergies:   []string{"chicken"},
	})
	assert.Empty(t, got)
}

func TestMatchEmptyCatalog(t *testing.T) {
	got := Match(nil, Query{Ingredients: []string{"onion"}})
	assert.Empty(t, got)
}

func TestMatchUnknownCategoryMeansNoFilter(t *testing.T) {
	// NormalizeCategory("") == "" so all categories survive to ranking
	got := Match(testCatalog(), Query{Ingredients: []string{"onion"}})
	require.Len(t, got, 2)
	names := []string{got[0].Name, got[1].Name}
	assert.Contains(t, names, "Veg Curry")
	assert.Contains(t, names, "Chicken Curry")
}

func TestMatchScoreBoundsAndMissingInvariant(t *testing.T) {
	got := Match(testCatalog(), Query{Ingredients: []string{"onion", "mango", "rice"}})
	for _, d := range got {
		assert.GreaterOrEqual(t, d.MatchScore, 0)
		assert.LessOrEqual(t, d.MatchScore, len(d.Ingredients))
		assert.Equal(t, len(d.Ingredients), d.MatchScore+len(d.MissingIngredients),
			"every dish ingredient is either matched or missing, never both")
	}
}

func TestMatchCapsAtTwenty(t *testing.T) {
	catalog := make([]models.Meal, 50)
	for i := range catalog {
		catalog[i] = models.Meal{
			Name:        fmt.Sprintf("Dish %d", i),
			AICategory:  models.DietVegetarian,
			Ingredients: []string{"onion", fmt.Sprintf("extra-%d", i)},
		}
	}
	got := Match(catalog, Query{Ingredients: []string{"onion"}})
	assert.Len(t, got, 20)
}

func TestMatchStableOrderOnTies(t *testing.T) {
	catalog := []models.Meal{
		{Name: "First", Ingredients: []string{"onion", "a"}},
		{Name: "Second", Ingredients: []string{"onion", "b"}},
		{Name: "Third", Ingredients: []string{"onion", "c"}},
	}
	got := Match(catalog, Query{Ingredients: []string{"onion"}})
	require.Len(t, got, 3)
	assert.Equal(t, "First", got[0].Name)
	assert.Equal(t, "Second", got[1].Name)
	assert.Equal(t, "Third", got[2].Name)
}

func TestMatchSubstringFilterExactScore(t *testing.T) {
	// "onion" substring-matches "spring onion" so the dish passes the
	// filter, but scoring requires exact equality so it earns 0.
	catalog := []models.Meal{
		{Name: "Stir Fry", Ingredients: []string{"spring onion", "rice"}},
	}
	got := Match(catalog, Query{Ingredients: []string{"onion"}})
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].MatchScore)
	assert.Equal(t, []string{"spring onion", "rice"}, got[0].MissingIngredients)
}

func TestMatchCategoryFilterIdempotent(t *testing.T) {
	q := Query{Ingredients: []string{"onion", "potato", "mango"}, Category: models.DietVegetarian}
	once := Match(testCatalog(), q)

	filtered := make([]models.Meal, 0, len(once))
	for _, d := range once {
		filtered = append(filtered, d.Meal)
	}
	twice := Match(filtered, q)

	require.Equal(t, len(once), len(twice))
	for i := range once {
		assert.Equal(t, once[i].Name, twice[i].Name)
		assert.Equal(t, once[i].MatchScore, twice[i].MatchScore)
	}
}

func TestMatchAllergyFilterMonotonic(t *testing.T) {
	q := Query{Ingredients: []string{"onion", "mango"}}
	base := Match(testCatalog(), q)

	allergies := []string{"chicken", "yogurt", "onion"}
	for i := range allergies {
		q.Allergies = allergies[:i+1]
		narrowed := Match(testCatalog(), q)
		assert.LessOrEqual(t, len(narrowed), len(base),
			"adding allergy %q must never grow the result set", allergies[i])
		base = narrowed
	}
}

func TestMatchAllergySubstringContainment(t *testing.T) {
	catalog := []models.Meal{
		{Name: "Satay", Ingredients: []string{"peanuts", "chicken"}},
		{Name: "Salad", Ingredients: []string{"lettuce", "tomato"}},
	}
	got := Match(catalog, Query{
		Ingredients: []string{"chicken", "lettuce"},
		Allergies:   []string{"nut"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "Salad", got[0].Name)
}

func TestMatchDoesNotMutateCatalog(t *testing.T) {
	catalog := testCatalog()
	_ = Match(catalog, Query{Ingredients: []string{"onion"}, Allergies: []string{"mango"}})

	assert.Equal(t, testCatalog(), catalog)
}
