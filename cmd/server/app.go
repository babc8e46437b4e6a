package main

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dkellner/todo-api/internal/config"
	"github.com/dkellner/todo-api/internal/platform/mongodb"
	"github.com/dkellner/todo-api/internal/service/auth"
	"github.com/dkellner/todo-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	mongoClient *mongo.Client

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	itemStore store.ItemStore
	fileStore store.FileStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
}

// newApplication wires the application dependencies from configuration:
// database connection, stores, password hashing and the token service.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	client, db, err := mongodb.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	fileStore, err := mongodb.NewGridFSFileStore(db)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to initialize file store: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	bcryptVerifier := auth.NewBcryptVerifier()

	return &application{
		config:           cfg,
		logger:           log,
		mongoClient:      client,
		userStore:        mongodb.NewMongoUserStore(db),
		itemStore:        mongodb.NewMongoItemStore(db),
		fileStore:        fileStore,
		jwtService:       jwtService,
		passwordHasher:   bcryptVerifier,
		passwordVerifier: bcryptVerifier,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup(ctx context.Context) {
	if err := app.mongoClient.Disconnect(ctx); err != nil {
		app.logger.Error("failed to disconnect from mongodb", "error", err)
	}
}
