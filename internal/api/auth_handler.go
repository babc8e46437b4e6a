package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dkellner/todo-api/internal/api/middleware"
	"github.com/dkellner/todo-api/internal/api/shared"
	"github.com/dkellner/todo-api/internal/domain"
	"github.com/dkellner/todo-api/internal/service/auth"
	"github.com/dkellner/todo-api/internal/store"
)

// AuthHandler handles registration, login and token refresh.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
	}
}

// decodeUserRequest parses and validates the shared registration/login
// payload, writing the 400 response itself on failure.
func decodeUserRequest(w http.ResponseWriter, r *http.Request) (*UserRequest, bool) {
	var req UserRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Bad request parameters: "+err.Error())
		return nil, false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Bad request parameters: "+err.Error())
		return nil, false
	}
	return &req, true
}

// issueTokenPair mints an access and refresh token for the username. On
// failure it writes the 500 response and returns false.
func (h *AuthHandler) issueTokenPair(w http.ResponseWriter, r *http.Request, username string) (string, string, bool) {
	access, err := h.jwtService.GenerateToken(r.Context(), username)
	if err != nil {
		slog.Error("failed to generate access token", "error", err, "username", username)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return "", "", false
	}
	refresh, err := h.jwtService.GenerateRefreshToken(r.Context(), username)
	if err != nil {
		slog.Error("failed to generate refresh token", "error", err, "username", username)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return "", "", false
	}
	return access, refresh, true
}

// Register handles POST /register. There is deliberately no duplicate-username
// check; registering an existing name inserts a second document, matching the
// recorded contract.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeUserRequest(w, r)
	if !ok {
		return
	}

	hashed, err := h.passwordHasher.Hash(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err, "username", req.Username)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to register user")
		return
	}

	user, err := domain.NewUser(req.Username, hashed)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Bad request parameters: "+err.Error())
		return
	}

	if err := h.userStore.Insert(r.Context(), user); err != nil {
		slog.Error("failed to insert user", "error", err, "username", req.Username)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to register user")
		return
	}

	access, refresh, ok := h.issueTokenPair(w, r, user.Username)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.Envelope{
		OK: true,
		Data: AuthUserResponse{
			Username:     user.Username,
			ImageName:    user.ImageName,
			AccessToken:  access,
			RefreshToken: refresh,
		},
		Message: "User registered successfully!",
	})
}

// Login handles POST /auth.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeUserRequest(w, r)
	if !ok {
		return
	}

	user, err := h.userStore.FindByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "invalid username or password")
			return
		}
		slog.Error("failed to look up user", "error", err, "username", req.Username)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to authenticate user")
		return
	}

	if err := h.passwordVerifier.Compare(user.Password, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "invalid username or password")
		return
	}

	access, refresh, ok := h.issueTokenPair(w, r, user.Username)
	if !ok {
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, AuthUserResponse{
		Username:     user.Username,
		ImageName:    user.ImageName,
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// RefreshToken handles POST /refresh. The refresh-token middleware has
// already verified the Authorization header and injected the identity.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsername(r)
	if !ok {
		shared.RespondWithMessage(w, r, http.StatusUnauthorized, false, "Missing Authorization Header")
		return
	}

	access, err := h.jwtService.GenerateToken(r.Context(), username)
	if err != nil {
		slog.Error("failed to generate access token", "error", err, "username", username)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, RefreshResponse{AccessToken: access})
}
