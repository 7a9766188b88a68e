package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoConfig holds MongoDB connection configuration.
type MongoConfig struct {
	URI      string
	Database string

	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
	MaxPoolSize            uint64
	MinPoolSize            uint64
}

// DefaultMongoConfig returns sensible defaults for a MongoDB connection.
func DefaultMongoConfig(uri, database string) MongoConfig {
	return MongoConfig{
		URI:                    uri,
		Database:               database,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		MaxPoolSize:            100,
		MinPoolSize:            10,
	}
}

// ConnectMongo opens a pooled MongoDB connection and verifies it with a ping.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return client.Database(cfg.Database), nil
}

// PingMongo verifies the database connection is still alive. Used by the
// readiness probe.
func PingMongo(ctx context.Context, db *mongo.Database) error {
	if db == nil {
		return fmt.Errorf("mongodb: no database configured")
	}
	if err := db.Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongodb: %w", err)
	}
	return nil
}

// DisconnectMongo closes the underlying client connection.
func DisconnectMongo(ctx context.Context, db *mongo.Database) error {
	if db == nil {
		return nil
	}
	return db.Client().Disconnect(ctx)
}
