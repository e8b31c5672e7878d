package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating is one user's rating of one meal. A unique index on
// (meal_id, user_id) guarantees at most one rating per pair; repeat
// submissions are upserts.
type Rating struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MealID    primitive.ObjectID `bson:"meal_id" json:"meal_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Rating    int                `bson:"rating" json:"rating"` // 1..5
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// RatingSummary is the aggregate view stored back onto the meal
type RatingSummary struct {
	Average float64 `bson:"average" json:"average"`
	Count   int64   `bson:"count" json:"count"`
}
