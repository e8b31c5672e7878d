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

type communityRecipeRepository struct {
	collection *mongo.Collection
}

func NewCommunityRecipeRepository(db *database.MongoDB) repositories.CommunityRecipeRepository {
	return &communityRecipeRepository{
		collection: db.Collection(database.CollectionCommunityRecipes),
	}
}

func (r *communityRecipeRepository) Create(ctx context.Context, recipe *models.CommunityRecipe) error {
	recipe.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, recipe)
	if err != nil {
		return err
	}
	recipe.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *communityRecipeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.CommunityRecipe, error) {
	var recipe models.CommunityRecipe
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *communityRecipeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *communityRecipeRepository) List(ctx context.Context, page, limit int) ([]*models.CommunityRecipe, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	skip := (page - 1) * limit

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var recipes []*models.CommunityRecipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

func (r *communityRecipeRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.CommunityRecipe, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recipes []*models.CommunityRecipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *communityRecipeRepository) AdjustLikes(ctx context.Context, id primitive.ObjectID, delta int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"likes": delta}},
	)
	return err
}

type communityCommentRepository struct {
	collection *mongo.Collection
}

func NewCommunityCommentRepository(db *database.MongoDB) repositories.CommunityCommentRepository {
	return &communityCommentRepository{
		collection: db.Collection(database.CollectionCommunityComments),
	}
}

func (r *communityCommentRepository) Create(ctx context.Context, comment *models.CommunityComment) error {
	comment.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return err
	}
	comment.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *communityCommentRepository) ListByRecipe(ctx context.Context, recipeID primitive.ObjectID) ([]*models.CommunityComment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"recipe_id": recipeID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []*models.CommunityComment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Delete removes a comment only when it belongs to the requesting user
func (r *communityCommentRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
