package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dkellner/todo-api/internal/api/shared"
	"github.com/dkellner/todo-api/internal/domain"
	"github.com/dkellner/todo-api/internal/store"
)

// ItemHandler handles the item CRUD and photo endpoints.
type ItemHandler struct {
	itemStore store.ItemStore
	userStore store.UserStore
	fileStore store.FileStore
}

// NewItemHandler creates a new ItemHandler with the given dependencies.
func NewItemHandler(itemStore store.ItemStore, userStore store.UserStore, fileStore store.FileStore) *ItemHandler {
	return &ItemHandler{
		itemStore: itemStore,
		userStore: userStore,
		fileStore: fileStore,
	}
}

// GetAll handles GET /items: every item, regardless of owner.
func (h *ItemHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemStore.FindAll(r.Context())
	if err != nil {
		slog.Error("failed to fetch items", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error fetching the items")
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, items)
}

// GetMine handles GET /items/user: the caller's items only.
func (h *ItemHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	user, ok := callerUser(w, r, h.userStore)
	if !ok {
		return
	}

	items, err := h.itemStore.FindByOwner(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to fetch user items", "error", err, "username", user.Username)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error fetching the items")
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, items)
}

// GetByID handles GET /items/id/{id}. A miss reports at HTTP 200 with a
// message, per the recorded contract.
func (h *ItemHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathObjectID(w, r, "id")
	if !ok {
		return
	}

	item, err := h.itemStore.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			shared.RespondWithMessage(w, r, http.StatusOK, false, "item not found")
			return
		}
		slog.Error("failed to fetch item", "error", err, "item_id", id.Hex())
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error fetching the item")
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, item)
}

// GetByTitle handles GET /items/{title}: exact title match.
func (h *ItemHandler) GetByTitle(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	item, err := h.itemStore.FindByTitle(r.Context(), title)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			shared.RespondWithMessage(w, r, http.StatusOK, false, "this item does not exist")
			return
		}
		slog.Error("failed to fetch item", "error", err, "title", title)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error fetching the item")
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, item)
}

// Create handles POST /items. Ownership comes from the token; the item
// always starts with done=false.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ItemCreateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Bad request parameters: "+err.Error())
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Bad request parameters: "+err.Error())
		return
	}

	user, ok := callerUser(w, r, h.userStore)
	if !ok {
		return
	}

	item, err := domain.NewItem(req.Title, req.Description, user.ID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Bad request parameters: "+err.Error())
		return
	}

	if err := h.itemStore.Insert(r.Context(), item); err != nil {
		slog.Error("failed to insert item", "error", err, "username", user.Username)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error creating the item")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, newItemFieldsResponse(item))
}

// SetStatus handles PUT /items/status/{id}: marks the item done and returns
// the caller's updated item list.
func (h *ItemHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathObjectID(w, r, "id")
	if !ok {
		return
	}

	if err := h.itemStore.SetDone(r.Context(), id); err != nil && !errors.Is(err, store.ErrItemNotFound) {
		slog.Error("failed to update item status", "error", err, "item_id", id.Hex())
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error updating item")
		return
	}

	h.respondWithCallerItems(w, r)
}

// CompleteByTitle handles PUT /items/complete/{title}: marks the item with
// that exact title done and returns its updated fields. Unauthenticated, per
// the recorded contract.
func (h *ItemHandler) CompleteByTitle(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	item, err := h.itemStore.FindByTitle(r.Context(), title)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			shared.RespondWithMessage(w, r, http.StatusOK, false, "this item does not exist")
			return
		}
		slog.Error("failed to fetch item", "error", err, "title", title)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error updating item")
		return
	}

	if err := h.itemStore.SetDone(r.Context(), item.ID); err != nil {
		slog.Error("failed to update item status", "error", err, "item_id", item.ID.Hex())
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error updating item")
		return
	}

	updated, err := h.itemStore.FindByID(r.Context(), item.ID)
	if err != nil {
		slog.Error("failed to fetch updated item", "error", err, "item_id", item.ID.Hex())
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error updating item")
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, newItemFieldsResponse(updated))
}

// UpdateInfo handles PUT /items/info/{id}: overwrites title and description
// from the body. The body is deliberately not validated, matching the
// recorded contract.
func (h *ItemHandler) UpdateInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathObjectID(w, r, "id")
	if !ok {
		return
	}

	var req ItemInfoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Bad request parameters: "+err.Error())
		return
	}

	if err := h.itemStore.UpdateInfo(r.Context(), id, req.Title, req.Description); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			shared.RespondWithMessage(w, r, http.StatusOK, false, "item not found")
			return
		}
		slog.Error("failed to update item info", "error", err, "item_id", id.Hex())
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error updating item")
		return
	}

	updated, err := h.itemStore.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("failed to fetch updated item", "error", err, "item_id", id.Hex())
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error updating item")
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, newItemFieldsResponse(updated))
}

// Delete handles DELETE /items/{id}: removes the item and returns the
// caller's remaining item list.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathObjectID(w, r, "id")
	if !ok {
		return
	}

	if err := h.itemStore.Delete(r.Context(), id); err != nil {
		slog.Error("failed to delete item", "error", err, "item_id", id.Hex())
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error deleting item")
		return
	}

	h.respondWithCallerItems(w, r)
}

// UploadPhoto handles POST /items/photos/{id}: stores the multipart "file"
// part under its client-supplied name and records it on the item.
func (h *ItemHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
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

	if err := h.itemStore.SetImageName(r.Context(), id, header.Filename); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			shared.RespondWithMessage(w, r, http.StatusOK, false, "item not found")
			return
		}
		slog.Error("failed to set item image", "error", err, "item_id", id.Hex())
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error updating item")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, header.Filename)
}

// respondWithCallerItems writes the caller's current item list, the shared
// tail of the status-update and delete endpoints.
func (h *ItemHandler) respondWithCallerItems(w http.ResponseWriter, r *http.Request) {
	user, ok := callerUser(w, r, h.userStore)
	if !ok {
		return
	}

	items, err := h.itemStore.FindByOwner(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to fetch user items", "error", err, "username", user.Username)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error fetching the items")
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, items)
}
