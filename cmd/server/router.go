package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dkellner/todo-api/internal/api"
	apiMiddleware "github.com/dkellner/todo-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordHasher, app.passwordVerifier)
	itemHandler := api.NewItemHandler(app.itemStore, app.userStore, app.fileStore)
	userHandler := api.NewUserHandler(app.userStore, app.fileStore)
	fileHandler := api.NewFileHandler(app.fileStore)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Public endpoints
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Welcome to the todo API"))
	})
	r.Post("/register", authHandler.Register)
	r.Post("/auth", authHandler.Login)
	r.Get("/items", itemHandler.GetAll)
	r.Get("/items/id/{id}", itemHandler.GetByID)
	r.Get("/items/{title}", itemHandler.GetByTitle)
	r.Put("/items/complete/{title}", itemHandler.CompleteByTitle)
	r.Get("/file/{filename}", fileHandler.Get)

	// Token refresh requires a valid refresh token in the Authorization header
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.AuthenticateRefresh)
		r.Post("/refresh", authHandler.RefreshToken)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/items/user", itemHandler.GetMine)
		r.Post("/items", itemHandler.Create)
		r.Put("/items/status/{id}", itemHandler.SetStatus)
		r.Put("/items/info/{id}", itemHandler.UpdateInfo)
		// Regex-typed wildcard so the route can share the /items position
		// with the public title lookup.
		r.Delete("/items/{id:[0-9a-fA-F]{24}}", itemHandler.Delete)
		r.Post("/items/photos/{id}", itemHandler.UploadPhoto)

		r.Get("/users", userHandler.GetAll)
		r.Get("/users/{username}", userHandler.Get)
		r.Delete("/users/{username}", userHandler.Delete)
		r.Patch("/users/{username}", userHandler.Patch)
		r.Post("/users/photos/{id}", userHandler.UploadPhoto)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
