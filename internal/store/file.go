package store

import (
	"context"
	"io"
)

// FileStore defines the interface for uploaded file blobs, addressed by the
// client-supplied filename. Saving the same name twice overwrites; callers
// accept last-writer-wins.
type FileStore interface {
	// Save stores the contents of r under the given filename.
	Save(ctx context.Context, filename string, r io.Reader) error

	// Open returns a reader over the stored file.
	// Returns ErrFileNotFound if no file has that name.
	Open(ctx context.Context, filename string) (io.ReadCloser, error)
}
