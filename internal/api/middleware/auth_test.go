package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkellner/todo-api/internal/config"
	"github.com/dkellner/todo-api/internal/service/auth"
)

func newTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "test-secret-that-is-at-least-32-chars!!",
		TokenLifetimeMinutes:        1440,
		RefreshTokenLifetimeMinutes: 43200,
	})
	require.NoError(t, err)
	return svc
}

// echoUsername is a terminal handler recording the username the middleware
// injected.
func echoUsername(captured *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if username, ok := GetUsername(r); ok {
			*captured = username
		}
		w.WriteHeader(http.StatusOK)
	})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthenticateAllowsValidToken(t *testing.T) {
	svc := newTestJWTService(t)
	token, err := svc.GenerateToken(context.Background(), "alice")
	require.NoError(t, err)

	var captured string
	handler := NewAuthMiddleware(svc).Authenticate(echoUsername(&captured))

	req := httptest.NewRequest("GET", "/items/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", captured)
}

func TestAuthenticateRejectsWithFixedMessage(t *testing.T) {
	svc := newTestJWTService(t)
	refresh, err := svc.GenerateRefreshToken(context.Background(), "alice")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"no token", "Bearer "},
		{"malformed token", "Bearer not-a-jwt"},
		{"refresh token on access route", "Bearer " + refresh},
	}

	handler := NewAuthMiddleware(svc).Authenticate(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/items/user", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decodeEnvelope(t, rec)
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, "Missing Authorization Header", body["message"])
		})
	}
}

func TestAuthenticateRefreshAcceptsOnlyRefreshTokens(t *testing.T) {
	svc := newTestJWTService(t)
	access, err := svc.GenerateToken(context.Background(), "alice")
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(context.Background(), "alice")
	require.NoError(t, err)

	var captured string
	handler := NewAuthMiddleware(svc).AuthenticateRefresh(echoUsername(&captured))

	req := httptest.NewRequest("POST", "/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", captured)

	req = httptest.NewRequest("POST", "/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing Authorization Header", decodeEnvelope(t, rec)["message"])
}
