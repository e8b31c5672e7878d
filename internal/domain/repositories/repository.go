package repositories

import (
	"context"

	"github.com/dishcovery/dishcovery/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealRepository defines operations for catalog meal data access
type MealRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Meal, error)
	GetByMealDBID(ctx context.Context, idMeal string) (*models.Meal, error)
	Upsert(ctx context.Context, meal *models.Meal) error
	List(ctx context.Context, filter MealFilter) ([]models.Meal, int64, error)
	ListByCategory(ctx context.Context, category models.DietCategory) ([]models.Meal, error)
	ListAll(ctx context.Context) ([]models.Meal, error)
	ListAreas(ctx context.Context) ([]string, error)
	UpdateRatingSummary(ctx context.Context, id primitive.ObjectID, summary models.RatingSummary) error
}

type MealFilter struct {
	Category models.DietCategory
	Area     string
	Search   string
	Page     int
	Limit    int
}

// UserRepository defines operations for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ToggleLikedRecipe(ctx context.Context, userID primitive.ObjectID, recipeID string) (liked bool, err error)
}

// CommunityRecipeRepository defines operations for user-submitted recipes
type CommunityRecipeRepository interface {
	Create(ctx context.Context, recipe *models.CommunityRecipe) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.CommunityRecipe, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, page, limit int) ([]*models.CommunityRecipe, int64, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.CommunityRecipe, error)
	AdjustLikes(ctx context.Context, id primitive.ObjectID, delta int) error
}

// CommunityCommentRepository defines operations for recipe comments
type CommunityCommentRepository interface {
	Create(ctx context.Context, comment *models.CommunityComment) error
	ListByRecipe(ctx context.Context, recipeID primitive.ObjectID) ([]*models.CommunityComment, error)
	Delete(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error
}

// ChatRepository defines operations for community chat history
type ChatRepository interface {
	Append(ctx context.Context, msg *models.ChatMessage) error
	Recent(ctx context.Context, limit int) ([]*models.ChatMessage, error)
}

// RatingRepository defines operations for per-user meal ratings
type RatingRepository interface {
	Upsert(ctx context.Context, rating *models.Rating) error
	GetByMealAndUser(ctx context.Context, mealID, userID primitive.ObjectID) (*models.Rating, error)
	Summarize(ctx context.Context, mealID primitive.ObjectID) (models.RatingSummary, error)
}
