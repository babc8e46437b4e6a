package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dkellner/todo-api/internal/api/shared"
	"github.com/dkellner/todo-api/internal/store"
)

// UserHandler handles the user record endpoints.
type UserHandler struct {
	userStore store.UserStore
	fileStore store.FileStore
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userStore store.UserStore, fileStore store.FileStore) *UserHandler {
	return &UserHandler{
		userStore: userStore,
		fileStore: fileStore,
	}
}

// Get handles GET /users/{username}. The password hash never leaves the
// store layer; responses marshal through UserResponse.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.userStore.FindByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithMessage(w, r, http.StatusOK, false, "user not found")
			return
		}
		slog.Error("failed to fetch user", "error", err, "username", username)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error fetching the user")
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, newUserResponse(user))
}

// GetAll handles GET /users: every user record, passwords stripped.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.FindAll(r.Context())
	if err != nil {
		slog.Error("failed to fetch users", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error fetching the users")
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, newUserResponse(&users[i]))
	}
	shared.RespondWithData(w, r, http.StatusOK, resp)
}

// Delete handles DELETE /users/{username}. The record is matched by the
// email body field; the username path parameter is unused. That mismatch is
// the recorded contract and is kept as-is.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req DeleteUserRequest
	// Lenient decode: this endpoint predates the strict schemas and accepts
	// whatever body carries an email field.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Bad request parameters!")
		return
	}

	deleted, err := h.userStore.DeleteByEmail(r.Context(), req.Email)
	if err != nil {
		slog.Error("failed to delete user", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error deleting the user")
		return
	}

	if deleted == 1 {
		shared.RespondWithMessage(w, r, http.StatusOK, true, "record deleted")
	} else {
		shared.RespondWithMessage(w, r, http.StatusOK, true, "no record found")
	}
}

// Patch handles PATCH /users/{username}: applies the caller-supplied query
// and $set payload verbatim. Unrestricted by the recorded contract — any
// authenticated caller can modify any user document.
func (h *UserHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req PatchUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Query) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Bad request parameters!")
		return
	}

	if err := h.userStore.Patch(r.Context(), req.Query, req.Payload); err != nil {
		slog.Error("failed to patch user", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error updating the user")
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, true, "record updated")
}

// UploadPhoto handles POST /users/photos/{id}: stores the multipart "file"
// part and records its name on the user document.
func (h *UserHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathObjectID(w, r, "id")
	if !ok {
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Bad request parameters!")
		return
	}
	defer func() { _ = file.Close() }()

	if err := h.fileStore.Save(r.Context(), header.Filename, file); err != nil {
		slog.Error("failed to store file", "error", err, "filename", header.Filename)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error storing the file")
		return
	}

	if err := h.userStore.SetImageName(r.Context(), id, header.Filename); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithMessage(w, r, http.StatusOK, false, "user not found")
			return
		}
		slog.Error("failed to set user image", "error", err, "user_id", id.Hex())
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error updating the user")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, header.Filename)
}
