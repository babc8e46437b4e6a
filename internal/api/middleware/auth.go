// Package middleware provides the bearer-token authentication middleware.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dkellner/todo-api/internal/api/shared"
	"github.com/dkellner/todo-api/internal/service/auth"
)

// unauthorizedMessage is the fixed body for every token failure, whatever
// the actual cause. Clients depend on this exact string.
const unauthorizedMessage = "Missing Authorization Header"

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate validates access tokens from the Authorization header and adds
// the caller's username to the request context for authorized requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return m.guard(next, func(ctx context.Context, token string) (*auth.Claims, error) {
		return m.jwtService.ValidateToken(ctx, token)
	})
}

// AuthenticateRefresh is the refresh-token variant used by the token refresh
// endpoint: the Authorization header must carry a valid refresh token.
func (m *AuthMiddleware) AuthenticateRefresh(next http.Handler) http.Handler {
	return m.guard(next, func(ctx context.Context, token string) (*auth.Claims, error) {
		return m.jwtService.ValidateRefreshToken(ctx, token)
	})
}

func (m *AuthMiddleware) guard(
	next http.Handler,
	validate func(context.Context, string) (*auth.Claims, error),
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			shared.RespondWithMessage(w, r, http.StatusUnauthorized, false, unauthorizedMessage)
			return
		}

		claims, err := validate(r.Context(), token)
		if err != nil {
			shared.RespondWithMessage(w, r, http.StatusUnauthorized, false, unauthorizedMessage)
			return
		}

		ctx := context.WithValue(r.Context(), shared.UsernameContextKey, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetUsername extracts the authenticated username from the request context.
// Returns the username and a boolean indicating if it was found.
func GetUsername(r *http.Request) (string, bool) {
	username, ok := r.Context().Value(shared.UsernameContextKey).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
