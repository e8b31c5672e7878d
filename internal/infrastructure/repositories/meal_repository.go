package repositories

import (
	"context"

	"github.com/dishcovery/dishcovery/internal/domain/models"
	"github.com/dishcovery/dishcovery/internal/domain/repositories"
	"github.com/dishcovery/dishcovery/internal/infrastructure/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mealRepository struct {
	collection *mongo.Collection
}

func NewMealRepository(db *database.MongoDB) repositories.MealRepository {
	return &mealRepository{
		collection: db.Collection(database.CollectionMeals),
	}
}

func (r *mealRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Meal, error) {
	var meal models.Meal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&meal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &meal, nil
}

func (r *mealRepository) GetByMealDBID(ctx context.Context, idMeal string) (*models.Meal, error) {
	var meal models.Meal
	err := r.collection.FindOne(ctx, bson.M{"idMeal": idMeal}).Decode(&meal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &meal, nil
}

// Upsert inserts a meal or replaces the existing document with the same
// upstream id. Used by the MealDB sync so re-running it is safe.
func (r *mealRepository) Upsert(ctx context.Context, meal *models.Meal) error {
	if meal.MealDBID == "" {
		result, err := r.collection.InsertOne(ctx, meal)
		if err != nil {
			return err
		}
		meal.ID = result.InsertedID.(primitive.ObjectID)
		return nil
	}

	opts := options.Replace().SetUpsert(true)
	result, err := r.collection.ReplaceOne(ctx, bson.M{"idMeal": meal.MealDBID}, meal, opts)
	if err != nil {
		return err
	}
	if result.UpsertedID != nil {
		meal.ID = result.UpsertedID.(primitive.ObjectID)
	}
	return nil
}

func (r *mealRepository) List(ctx context.Context, filter repositories.MealFilter) ([]models.Meal, int64, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["aiCategory"] = filter.Category
	}
	if filter.Area != "" {
		query["strArea"] = filter.Area
	}
	if filter.Search != "" {
		query["strMeal"] = bson.M{"$regex": filter.Search, "$options": "i"}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	skip := (page - 1) * limit

	opts := options.Find().
		SetSort(bson.D{{Key: "strMeal", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var meals []models.Meal
	if err := cursor.All(ctx, &meals); err != nil {
		return nil, 0, err
	}

	return meals, total, nil
}

// ListByCategory returns the full category slice in stable name order.
// The ingredient matcher depends on a deterministic catalog order for
// its tie-breaking.
func (r *mealRepository) ListByCategory(ctx context.Context, category models.DietCategory) ([]models.Meal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "strMeal", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"aiCategory": category}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var meals []models.Meal
	if err := cursor.All(ctx, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *mealRepository) ListAll(ctx context.Context) ([]models.Meal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "strMeal", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var meals []models.Meal
	if err := cursor.All(ctx, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *mealRepository) ListAreas(ctx context.Context) ([]string, error) {
	raw, err := r.collection.Distinct(ctx, "strArea", bson.M{"strArea": bson.M{"$ne": ""}})
	if err != nil {
		return nil, err
	}

	areas := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			areas = append(areas, s)
		}
	}
	return areas, nil
}

func (r *mealRepository) UpdateRatingSummary(ctx context.Context, id primitive.ObjectID, summary models.RatingSummary) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"avgRating": summary.Average, "totalRatings": summary.Count}},
	)
	return err
}
