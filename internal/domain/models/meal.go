package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DietCategory is the normalized diet label attached to every meal.
// Values outside this set never reach the database; synonym resolution
// happens at the API boundary (see internal/domain/matching).
type DietCategory string

const (
	DietVegetarian DietCategory = "vegetarian"
	DietNonVeg     DietCategory = "non-veg"
	DietDesserts   DietCategory = "desserts"
	DietDrinks     DietCategory = "drinks"
)

// Meal represents a dish in the catalog, synced from TheMealDB or added
// manually. Field names mirror the upstream API where they came from.
type Meal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MealDBID     string             `bson:"idMeal,omitempty" json:"idMeal,omitempty"`
	Name         string             `bson:"strMeal" json:"strMeal"`
	Category     string             `bson:"strCategory,omitempty" json:"strCategory,omitempty"`
	Area         string             `bson:"strArea,omitempty" json:"strArea,omitempty"`
	Instructions string             `bson:"strInstructions,omitempty" json:"strInstructions,omitempty"`
	Thumbnail    string             `bson:"strMealThumb,omitempty" json:"strMealThumb,omitempty"`
	Tags         string             `bson:"strTags,omitempty" json:"strTags,omitempty"`
	Youtube      string             `bson:"strYoutube,omitempty" json:"strYoutube,omitempty"`
	Ingredients  []string           `bson:"ingredients" json:"ingredients"`
	Measures     []string           `bson:"measures,omitempty" json:"measures,omitempty"`
	AICategory   DietCategory       `bson:"aiCategory" json:"aiCategory"`
	AvgRating    float64            `bson:"avgRating" json:"avgRating"`
	TotalRatings int64              `bson:"totalRatings" json:"totalRatings"`
}
