package api

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/dkellner/todo-api/internal/api/shared"
	"github.com/dkellner/todo-api/internal/store"
)

// FileHandler streams previously uploaded files back to clients.
type FileHandler struct {
	fileStore store.FileStore
}

// NewFileHandler creates a new FileHandler with the given dependencies.
func NewFileHandler(fileStore store.FileStore) *FileHandler {
	return &FileHandler{fileStore: fileStore}
}

// Get handles GET /file/{filename}: streams the stored bytes back
// unmodified. Unlike the record lookups, a missing file is a real 404.
func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	f, err := h.fileStore.Open(r.Context(), filename)
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "file not found")
			return
		}
		slog.Error("failed to open file", "error", err, "filename", filename)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error fetching the file")
		return
	}
	defer func() { _ = f.Close() }()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)

	if _, err := io.Copy(w, f); err != nil {
		// Headers are gone; all we can do is log the broken stream.
		slog.Error("failed to stream file", "error", err, "filename", filename)
	}
}
