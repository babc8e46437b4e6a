package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apiMiddleware "github.com/dkellner/todo-api/internal/api/middleware"
	"github.com/dkellner/todo-api/internal/config"
	"github.com/dkellner/todo-api/internal/domain"
	"github.com/dkellner/todo-api/internal/service/auth"
	"github.com/dkellner/todo-api/internal/store"
)

// In-memory store implementations for handler tests.

type mockUserStore struct {
	mu    sync.Mutex
	users []*domain.User

	insertErr error
	findErr   error

	deleteCount  int64
	deletedEmail string

	patchQuery   map[string]interface{}
	patchPayload map[string]interface{}
}

var _ store.UserStore = (*mockUserStore)(nil)

func (m *mockUserStore) Insert(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	user.ID = primitive.NewObjectID()
	copied := *user
	m.users = append(m.users, &copied)
	return nil
}

func (m *mockUserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) FindAll(ctx context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	out := []domain.User{}
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserStore) SetImageName(ctx context.Context, id primitive.ObjectID, imageName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			u.ImageName = imageName
			return nil
		}
	}
	return store.ErrUserNotFound
}

func (m *mockUserStore) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletedEmail = email
	return m.deleteCount, nil
}

func (m *mockUserStore) Patch(ctx context.Context, query, payload map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patchQuery = query
	m.patchPayload = payload
	return nil
}

type mockItemStore struct {
	mu    sync.Mutex
	items []*domain.Item

	findErr error
}

var _ store.ItemStore = (*mockItemStore)(nil)

func (m *mockItemStore) Insert(ctx context.Context, item *domain.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = primitive.NewObjectID()
	copied := *item
	m.items = append(m.items, &copied)
	return nil
}

func (m *mockItemStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range m.items {
		if i.ID == id {
			copied := *i
			return &copied, nil
		}
	}
	return nil, store.ErrItemNotFound
}

func (m *mockItemStore) FindByTitle(ctx context.Context, title string) (*domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range m.items {
		if i.Title == title {
			copied := *i
			return &copied, nil
		}
	}
	return nil, store.ErrItemNotFound
}

func (m *mockItemStore) FindAll(ctx context.Context) ([]domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	out := []domain.Item{}
	for _, i := range m.items {
		out = append(out, *i)
	}
	return out, nil
}

func (m *mockItemStore) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Item{}
	for _, i := range m.items {
		if i.UserID == ownerID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (m *mockItemStore) SetDone(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range m.items {
		if i.ID == id {
			i.Done = true
			return nil
		}
	}
	return store.ErrItemNotFound
}

func (m *mockItemStore) UpdateInfo(ctx context.Context, id primitive.ObjectID, title, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range m.items {
		if i.ID == id {
			i.Title = title
			i.Description = description
			return nil
		}
	}
	return store.ErrItemNotFound
}

func (m *mockItemStore) SetImageName(ctx context.Context, id primitive.ObjectID, imageName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, i := range m.items {
		if i.ID == id {
			i.ImageName = imageName
			return nil
		}
	}
	return store.ErrItemNotFound
}

func (m *mockItemStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for n, i := range m.items {
		if i.ID == id {
			m.items = append(m.items[:n], m.items[n+1:]...)
			return nil
		}
	}
	return nil
}

type mockFileStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

var _ store.FileStore = (*mockFileStore)(nil)

func newMockFileStore() *mockFileStore {
	return &mockFileStore{files: map[string][]byte{}}
}

func (m *mockFileStore) Save(ctx context.Context, filename string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filename] = data
	return nil
}

func (m *mockFileStore) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[filename]
	if !ok {
		return nil, store.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// testEnv wires the handlers into a router mirroring the production routes.
type testEnv struct {
	users  *mockUserStore
	items  *mockItemStore
	files  *mockFileStore
	jwt    auth.JWTService
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	jwtSvc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "test-secret-that-is-at-least-32-chars!!",
		TokenLifetimeMinutes:        1440,
		RefreshTokenLifetimeMinutes: 43200,
	})
	require.NoError(t, err)

	env := &testEnv{
		users: &mockUserStore{deleteCount: 0},
		items: &mockItemStore{},
		files: newMockFileStore(),
		jwt:   jwtSvc,
	}

	hasher := auth.NewBcryptVerifier()
	authHandler := NewAuthHandler(env.users, jwtSvc, hasher, hasher)
	itemHandler := NewItemHandler(env.items, env.users, env.files)
	userHandler := NewUserHandler(env.users, env.files)
	fileHandler := NewFileHandler(env.files)
	authMiddleware := apiMiddleware.NewAuthMiddleware(jwtSvc)

	r := chi.NewRouter()
	r.Post("/register", authHandler.Register)
	r.Post("/auth", authHandler.Login)
	r.Get("/items", itemHandler.GetAll)
	r.Get("/items/id/{id}", itemHandler.GetByID)
	r.Get("/items/{title}", itemHandler.GetByTitle)
	r.Put("/items/complete/{title}", itemHandler.CompleteByTitle)
	r.Get("/file/{filename}", fileHandler.Get)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.AuthenticateRefresh)
		r.Post("/refresh", authHandler.RefreshToken)
	})
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/items/user", itemHandler.GetMine)
		r.Post("/items", itemHandler.Create)
		r.Put("/items/status/{id}", itemHandler.SetStatus)
		r.Put("/items/info/{id}", itemHandler.UpdateInfo)
		r.Delete("/items/{id:[0-9a-fA-F]{24}}", itemHandler.Delete)
		r.Post("/items/photos/{id}", itemHandler.UploadPhoto)
		r.Get("/users", userHandler.GetAll)
		r.Get("/users/{username}", userHandler.Get)
		r.Delete("/users/{username}", userHandler.Delete)
		r.Patch("/users/{username}", userHandler.Patch)
		r.Post("/users/photos/{id}", userHandler.UploadPhoto)
	})

	env.router = r
	return env
}

// do performs a request against the test router. A non-empty token goes into
// the Authorization header.
func (env *testEnv) do(method, target, token string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	OK      bool            `json:"ok"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func parseEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// register creates a user through the API and returns the token pair.
func (env *testEnv) register(t *testing.T, username, password string) (access, refresh string) {
	t.Helper()
	rec := env.do("POST", "/register", "", `{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data AuthUserResponse
	e := parseEnvelope(t, rec)
	require.True(t, e.OK)
	require.NoError(t, json.Unmarshal(e.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	require.NotEmpty(t, data.RefreshToken)
	return data.AccessToken, data.RefreshToken
}
