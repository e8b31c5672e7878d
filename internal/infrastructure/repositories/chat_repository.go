package repositories

import (
	"context"
	"time"

	"github.com/dishcovery/dishcovery/internal/domain/models"
	"github.com/dishcovery/dishcovery/internal/domain/repositories"
	"github.com/dishcovery/dishcovery/internal/infrastructure/database"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type chatRepository struct {
	collection *mongo.Collection
}

func NewChatRepository(db *database.MongoDB) repositories.ChatRepository {
	return &chatRepository{
		collection: db.Collection(database.CollectionChatMessages),
	}
}

// Append stores one chat message. Expiry is handled by the collection's
// TTL index, not by application code.
func (r *chatRepository) Append(ctx context.Context, msg *models.ChatMessage) error {
	if msg.MessageID == "" {
		msg.MessageID = uuid.NewString()
	}
	msg.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, msg)
	if err != nil {
		return err
	}
	msg.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// Recent returns the latest messages in chronological order
func (r *chatRepository) Recent(ctx context.Context, limit int) ([]*models.ChatMessage, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*models.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	// Newest-first from Mongo; flip for display order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
