package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dkellner/todo-api/internal/api/middleware"
	"github.com/dkellner/todo-api/internal/api/shared"
	"github.com/dkellner/todo-api/internal/domain"
	"github.com/dkellner/todo-api/internal/store"
)

// getPathObjectID extracts and parses an ObjectID path parameter, writing a
// 400 response on failure.
func getPathObjectID(w http.ResponseWriter, r *http.Request, paramName string) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, paramName)
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "invalid "+paramName)
		return primitive.NilObjectID, false
	}
	return id, true
}

// callerUser resolves the authenticated caller to their stored user document.
// The middleware guarantees a username is present; the lookup can still miss
// if the account was deleted after the token was issued, which surfaces as a
// server error just like the recorded system.
func callerUser(w http.ResponseWriter, r *http.Request, users store.UserStore) (*domain.User, bool) {
	username, ok := middleware.GetUsername(r)
	if !ok {
		shared.RespondWithMessage(w, r, http.StatusUnauthorized, false, "Missing Authorization Header")
		return nil, false
	}

	user, err := users.FindByUsername(r.Context(), username)
	if err != nil {
		slog.Error("failed to resolve caller", "error", err, "username", username)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error, missing user id")
		return nil, false
	}
	return user, true
}
