package repositories

import (
	"context"
	"time"

	"github.com/dishcovery/dishcovery/internal/domain/models"
	"github.com/dishcovery/dishcovery/internal/domain/repositories"
	"github.com/dishcovery/dishcovery/internal/infrastructure/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ratingRepository struct {
	collection *mongo.Collection
}

func NewRatingRepository(db *database.MongoDB) repositories.RatingRepository {
	return &ratingRepository{
		collection: db.Collection(database.CollectionRatings),
	}
}

// Upsert writes the user's rating for a meal, replacing any previous one.
// The unique (meal_id, user_id) index makes this a one-rating-per-user
// guarantee.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	now := time.Now()
	filter := bson.M{"meal_id": rating.MealID, "user_id": rating.UserID}
	update := bson.M{
		"$set": bson.M{
			"rating":     rating.Rating,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"meal_id":    rating.MealID,
			"user_id":    rating.UserID,
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return err
	}
	if result.UpsertedID != nil {
		rating.ID = result.UpsertedID.(primitive.ObjectID)
	}
	return nil
}

func (r *ratingRepository) GetByMealAndUser(ctx context.Context, mealID, userID primitive.ObjectID) (*models.Rating, error) {
	var rating models.Rating
	err := r.collection.FindOne(ctx, bson.M{"meal_id": mealID, "user_id": userID}).Decode(&rating)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}

// Summarize aggregates all ratings for one meal
func (r *ratingRepository) Summarize(ctx context.Context, mealID primitive.ObjectID) (models.RatingSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"meal_id": mealID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return models.RatingSummary{}, err
	}
	defer cursor.Close(ctx)

	var results []models.RatingSummary
	if err := cursor.All(ctx, &results); err != nil {
		return models.RatingSummary{}, err
	}
	if len(results) == 0 {
		return models.RatingSummary{}, nil
	}
	return results[0], nil
}
