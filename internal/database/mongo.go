package database

import (
	"context"
	"fmt"
	"time"

	"campushub/internal/config"
	"campushub/internal/middleware"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectMongo connects to the configured MongoDB deployment, retrying forever with a fixed delay
// until it answers a ping or ctx is cancelled.
func ConnectMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	client, err := RetryForever(ctx, config.DriverMongo, cfg.DBRetryDelay(), func(ctx context.Context) (*mongo.Client, error) {
		return OpenMongo(ctx, cfg.MongoURI)
	})
	if err != nil {
		return nil, err
	}
	middleware.Logger.Info("MongoDB connected successfully")
	return client, nil
}

// OpenMongo makes a single connection attempt.
func OpenMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, nil
}
