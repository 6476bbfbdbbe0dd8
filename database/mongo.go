package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"inkpost/config"
)

const (
	BlogsCollection = "blogs"
	UsersCollection = "users"

	mongoConnectTimeout = 30 * time.Second
)

// ConnectMongo dials the document store and pings the primary so that
// failures surface at startup.
func ConnectMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetConnectTimeout(mongoConnectTimeout).
		SetServerSelectionTimeout(mongoConnectTimeout).
		SetRetryReads(true).
		SetRetryWrites(true).
		SetMaxPoolSize(100).
		SetMaxConnIdleTime(300 * time.Second)

	cli, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info().Str("db", cfg.MongoDB).Msg("mongodb connected")
	return cli, nil
}

// MongoIndexes lists the indexes each collection needs.
func MongoIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		BlogsCollection: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "title", Value: "text"}, {Key: "content", Value: "text"}}},
			{Keys: bson.D{{Key: "visibility", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "visibility", Value: 1}, {Key: "likes", Value: -1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "hashtags", Value: 1}}},
			{Keys: bson.D{{Key: "author_id", Value: 1}}},
		},
		UsersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "profile.is_active", Value: 1}}},
		},
	}
}

func MigrateMongo(ctx context.Context, db *mongo.Database) error {
	for col, indexes := range MongoIndexes() {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes on %s: %w", col, err)
		}
	}
	return nil
}
