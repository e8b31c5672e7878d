package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CommunityIngredient pairs an ingredient with its measure in a
// user-submitted recipe
type CommunityIngredient struct {
	Ingredient string `bson:"ingredient" json:"ingredient"`
	Measure    string `bson:"measure" json:"measure"`
}

// CommunityRecipe is a recipe uploaded by a user
type CommunityRecipe struct {
	ID          primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	Name        string                `bson:"name" json:"name"`
	Category    string                `bson:"category" json:"category"`
	Country     string                `bson:"country" json:"country"`
	Ingredients []CommunityIngredient `bson:"ingredients" json:"ingredients"`
	Steps       []string              `bson:"steps" json:"steps"`
	Image       string                `bson:"image" json:"image"`
	VideoLink   string                `bson:"video_link,omitempty" json:"video_link,omitempty"`
	UserID      primitive.ObjectID    `bson:"user_id" json:"user_id"`
	Username    string                `bson:"username" json:"username"` // Denormalized for display
	Likes       int64                 `bson:"likes" json:"likes"`
	CreatedAt   time.Time             `bson:"created_at" json:"created_at"`
}

// CommunityComment is a comment on a community recipe. ParentID is set
// for replies and nil for top-level comments.
type CommunityComment struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	RecipeID  primitive.ObjectID  `bson:"recipe_id" json:"recipe_id"`
	UserID    primitive.ObjectID  `bson:"user_id" json:"user_id"`
	Username  string              `bson:"username" json:"username"`
	Text      string              `bson:"text" json:"text"`
	ParentID  *primitive.ObjectID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
}

// ChatMessage is a persisted community chat message. Old messages are
// expired by a Mongo TTL index rather than an application sweep.
type ChatMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MessageID string             `bson:"message_id" json:"message_id"` // UUID assigned at ingest
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Username  string             `bson:"username" json:"username"`
	Message   string             `bson:"message,omitempty" json:"message,omitempty"`
	ImageURL  string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
