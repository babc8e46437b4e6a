// Package mongodb implements the store interfaces on top of a MongoDB
// database, with uploaded files kept in GridFS.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dkellner/todo-api/internal/config"
)

const (
	usersCollection = "users"
	itemsCollection = "items"

	connectTimeout = 10 * time.Second
)

// Connect establishes a MongoDB client from the database configuration and
// verifies connectivity with a ping. The caller owns the returned client and
// must Disconnect it on shutdown.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		// Best-effort cleanup; the ping failure is the error worth reporting.
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, client.Database(cfg.Name), nil
}
