package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dkellner/todo-api/internal/domain"
)

// UserStore defines the interface for user persistence in the users
// collection.
type UserStore interface {
	// Insert saves a new user and fills in its assigned ID.
	// There is no uniqueness constraint on the username; callers that need
	// one must check first.
	Insert(ctx context.Context, user *domain.User) error

	// FindByUsername retrieves a user by the identity key.
	// Returns ErrUserNotFound if no user has that username.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindAll returns every user document.
	FindAll(ctx context.Context) ([]domain.User, error)

	// SetImageName records the uploaded photo filename on the user with the
	// given ID. Returns ErrUserNotFound if the user does not exist.
	SetImageName(ctx context.Context, id primitive.ObjectID, imageName string) error

	// DeleteByEmail removes the first user whose email field matches.
	// Returns the number of documents deleted (zero when nothing matched).
	DeleteByEmail(ctx context.Context, email string) (int64, error)

	// Patch applies a $set of payload to the documents matching query, both
	// taken verbatim from the caller. This is deliberately unrestricted to
	// match the recorded contract; any authenticated caller can update any
	// user document through it.
	Patch(ctx context.Context, query, payload map[string]interface{}) error
}
