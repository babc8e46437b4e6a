package mongodb

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"

	"github.com/dkellner/todo-api/internal/store"
)

// GridFSFileStore implements the store.FileStore interface using a GridFS
// bucket, matching the upload semantics of the recorded system: files are
// addressed by their client-supplied name and re-uploads add a new revision
// (downloads serve the latest).
type GridFSFileStore struct {
	bucket *gridfs.Bucket
}

// NewGridFSFileStore creates a file store backed by the database's default
// GridFS bucket.
func NewGridFSFileStore(db *mongo.Database) (*GridFSFileStore, error) {
	bucket, err := gridfs.NewBucket(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create gridfs bucket: %w", err)
	}
	return &GridFSFileStore{bucket: bucket}, nil
}

// Ensure GridFSFileStore implements store.FileStore.
var _ store.FileStore = (*GridFSFileStore)(nil)

// Save implements store.FileStore.Save. The v1 driver's GridFS API carries
// deadlines on the bucket rather than per call, so the context deadline is
// propagated that way.
func (s *GridFSFileStore) Save(ctx context.Context, filename string, r io.Reader) error {
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetWriteDeadline(deadline); err != nil {
			return fmt.Errorf("failed to set write deadline: %w", err)
		}
	}

	if _, err := s.bucket.UploadFromStream(filename, r); err != nil {
		return fmt.Errorf("failed to store file %q: %w", filename, err)
	}
	return nil
}

// Open implements store.FileStore.Open.
func (s *GridFSFileStore) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := s.bucket.SetReadDeadline(deadline); err != nil {
			return nil, fmt.Errorf("failed to set read deadline: %w", err)
		}
	}

	stream, err := s.bucket.OpenDownloadStreamByName(filename)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %v", store.ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("failed to open file %q: %w", filename, err)
	}
	return stream, nil
}
