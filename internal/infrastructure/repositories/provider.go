package repositories

import (
	"github.com/dishcovery/dishcovery/internal/domain/repositories"
	"github.com/dishcovery/dishcovery/internal/infrastructure/database"
)

// Provider holds all repository instances
type Provider struct {
	Meal             repositories.MealRepository
	User             repositories.UserRepository
	CommunityRecipe  repositories.CommunityRecipeRepository
	CommunityComment repositories.CommunityCommentRepository
	Chat             repositories.ChatRepository
	Rating           repositories.RatingRepository
}

// NewProvider creates a new repository provider
func NewProvider(db *database.MongoDB) *Provider {
	return &Provider{
		Meal:             NewMealRepository(db),
		User:             NewUserRepository(db),
		CommunityRecipe:  NewCommunityRecipeRepository(db),
		CommunityComment: NewCommunityCommentRepository(db),
		Chat:             NewChatRepository(db),
		Rating:           NewRatingRepository(db),
	}
}
