package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dkellner/todo-api/internal/domain"
)

// ItemStore defines the interface for item persistence in the items
// collection.
type ItemStore interface {
	// Insert saves a new item and fills in its assigned ID.
	Insert(ctx context.Context, item *domain.Item) error

	// FindByID retrieves an item by its document ID.
	// Returns ErrItemNotFound if the item does not exist.
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Item, error)

	// FindByTitle retrieves the first item with an exact title match.
	// Returns ErrItemNotFound if no item has that title.
	FindByTitle(ctx context.Context, title string) (*domain.Item, error)

	// FindAll returns every item document.
	FindAll(ctx context.Context) ([]domain.Item, error)

	// FindByOwner returns all items whose user_id matches the given owner.
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Item, error)

	// SetDone marks the item done. The flag only ever moves to true through
	// this path. Returns ErrItemNotFound if the item does not exist.
	SetDone(ctx context.Context, id primitive.ObjectID) error

	// UpdateInfo overwrites the item's title and description.
	// Returns ErrItemNotFound if the item does not exist.
	UpdateInfo(ctx context.Context, id primitive.ObjectID, title, description string) error

	// SetImageName records the uploaded photo filename on the item.
	// Returns ErrItemNotFound if the item does not exist.
	SetImageName(ctx context.Context, id primitive.ObjectID, imageName string) error

	// Delete removes an item by ID. Deleting a missing item is not an error.
	Delete(ctx context.Context, id primitive.ObjectID) error
}
