package database

import (
	"context"
	"fmt"
	"time"

	"github.com/dishcovery/dishcovery/internal/infrastructure/config"
	"github.com/dishcovery/dishcovery/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// MongoDB wraps the MongoDB client and database
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	config   config.MongoDBConfig
	logger   *logger.Logger
}

// NewMongoDB creates a new MongoDB connection
func NewMongoDB(cfg config.MongoDBConfig, log *logger.Logger) (*MongoDB, error) {
	return &MongoDB{
		config: cfg,
		logger: log.WithComponent("mongodb"),
	}, nil
}

// Connect establishes connection to MongoDB
func (m *MongoDB) Connect(ctx context.Context) error {
	clientOpts := options.Client().
		ApplyURI(m.config.URI).
		SetMaxPoolSize(m.config.MaxPoolSize).
		SetMinPoolSize(m.config.MinPoolSize).
		SetConnectTimeout(m.config.ConnectTimeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	m.client = client
	m.database = client.Database(m.config.Database)
	m.logger.Info("Connected to MongoDB", zap.String("database", m.config.Database))

	// Create indexes
	if err := m.createIndexes(ctx); err != nil {
		m.logger.Warn("Failed to create some indexes", zap.Error(err))
	}

	return nil
}

// Close closes the MongoDB connection
func (m *MongoDB) Close(ctx context.Context) error {
	if m.client != nil {
		return m.client.Disconnect(ctx)
	}
	return nil
}

// Database returns the database instance
func (m *MongoDB) Database() *mongo.Database {
	return m.database
}

// Collection returns a collection by name
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.database.Collection(name)
}

// Collections
const (
	CollectionMeals             = "meals"
	CollectionUsers             = "users"
	CollectionCommunityRecipes  = "community_recipes"
	CollectionCommunityComments = "community_comments"
	CollectionChatMessages      = "community_chat"
	CollectionRatings           = "ratings"
)

// chatMessageTTL is how long community chat messages are retained before
// the TTL monitor removes them
const chatMessageTTL = 24 * time.Hour

// createIndexes creates necessary indexes for all collections
func (m *MongoDB) createIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionMeals: {
			{Keys: bson.D{{Key: "idMeal", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
			{Keys: bson.D{{Key: "aiCategory", Value: 1}}},
			{Keys: bson.D{{Key: "strArea", Value: 1}}},
			{Keys: bson.D{{Key: "strMeal", Value: "text"}}},
		},
		CollectionUsers: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionCommunityRecipes: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		CollectionCommunityComments: {
			{Keys: bson.D{{Key: "recipe_id", Value: 1}, {Key: "created_at", Value: 1}}},
			{Keys: bson.D{{Key: "parent_id", Value: 1}}, Options: options.Index().SetSparse(true)},
		},
		CollectionChatMessages: {
			{Keys: bson.D{{Key: "message_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "created_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(int32(chatMessageTTL / time.Second))},
		},
		CollectionRatings: {
			{Keys: bson.D{{Key: "meal_id", Value: 1}, {Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "meal_id", Value: 1}}},
		},
	}

	for collection, idxModels := range indexes {
		coll := m.database.Collection(collection)
		for _, idx := range idxModels {
			_, err := coll.Indexes().CreateOne(ctx, idx)
			if err != nil {
				m.logger.Warn("Failed to create index",
					zap.String("collection", collection),
					zap.Error(err))
			}
		}
	}

	return nil
}

// Health checks if MongoDB is healthy
func (m *MongoDB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.client.Ping(ctx, readpref.Primary())
}
