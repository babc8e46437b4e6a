package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dkellner/todo-api/internal/domain"
	"github.com/dkellner/todo-api/internal/store"
)

// MongoItemStore implements the store.ItemStore interface against the items
// collection.
type MongoItemStore struct {
	coll *mongo.Collection
}

// NewMongoItemStore creates an item store over the given database.
func NewMongoItemStore(db *mongo.Database) *MongoItemStore {
	return &MongoItemStore{coll: db.Collection(itemsCollection)}
}

// Ensure MongoItemStore implements store.ItemStore.
var _ store.ItemStore = (*MongoItemStore)(nil)

// Insert implements store.ItemStore.Insert.
func (s *MongoItemStore) Insert(ctx context.Context, item *domain.Item) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	res, err := s.coll.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = id
	}
	return nil
}

// FindByID implements store.ItemStore.FindByID.
func (s *MongoItemStore) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Item, error) {
	var item domain.Item
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		return nil, mapError(err, store.ErrItemNotFound)
	}
	return &item, nil
}

// FindByTitle implements store.ItemStore.FindByTitle.
func (s *MongoItemStore) FindByTitle(ctx context.Context, title string) (*domain.Item, error) {
	var item domain.Item
	err := s.coll.FindOne(ctx, bson.M{"title": title}).Decode(&item)
	if err != nil {
		return nil, mapError(err, store.ErrItemNotFound)
	}
	return &item, nil
}

// FindAll implements store.ItemStore.FindAll.
func (s *MongoItemStore) FindAll(ctx context.Context) ([]domain.Item, error) {
	return s.find(ctx, bson.M{})
}

// FindByOwner implements store.ItemStore.FindByOwner.
func (s *MongoItemStore) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Item, error) {
	return s.find(ctx, bson.M{"user_id": ownerID})
}

func (s *MongoItemStore) find(ctx context.Context, filter bson.M) ([]domain.Item, error) {
	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}

	items := []domain.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}

// SetDone implements store.ItemStore.SetDone.
func (s *MongoItemStore) SetDone(ctx context.Context, id primitive.ObjectID) error {
	return s.setFields(ctx, id, bson.M{"done": true})
}

// UpdateInfo implements store.ItemStore.UpdateInfo.
func (s *MongoItemStore) UpdateInfo(ctx context.Context, id primitive.ObjectID, title, description string) error {
	return s.setFields(ctx, id, bson.M{"title": title, "description": description})
}

// SetImageName implements store.ItemStore.SetImageName.
func (s *MongoItemStore) SetImageName(ctx context.Context, id primitive.ObjectID, imageName string) error {
	return s.setFields(ctx, id, bson.M{"image_name": imageName})
}

func (s *MongoItemStore) setFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := s.coll.UpdateByID(ctx, id, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrItemNotFound
	}
	return nil
}

// Delete implements store.ItemStore.Delete.
func (s *MongoItemStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}
