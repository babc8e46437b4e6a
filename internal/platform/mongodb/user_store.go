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

// MongoUserStore implements the store.UserStore interface against the users
// collection.
type MongoUserStore struct {
	coll *mongo.Collection
}

// NewMongoUserStore creates a user store over the given database. The
// database connection is initialized and managed by the caller.
func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection(usersCollection)}
}

// Ensure MongoUserStore implements store.UserStore.
var _ store.UserStore = (*MongoUserStore)(nil)

// Insert implements store.UserStore.Insert.
func (s *MongoUserStore) Insert(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	res, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// FindByUsername implements store.UserStore.FindByUsername.
func (s *MongoUserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		return nil, mapError(err, store.ErrUserNotFound)
	}
	return &user, nil
}

// FindAll implements store.UserStore.FindAll.
func (s *MongoUserStore) FindAll(ctx context.Context) ([]domain.User, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	users := []domain.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// SetImageName implements store.UserStore.SetImageName.
func (s *MongoUserStore) SetImageName(ctx context.Context, id primitive.ObjectID, imageName string) error {
	res, err := s.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"image_name": imageName}})
	if err != nil {
		return fmt.Errorf("failed to update user image: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// DeleteByEmail implements store.UserStore.DeleteByEmail.
func (s *MongoUserStore) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	res, err := s.coll.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}
	return res.DeletedCount, nil
}

// Patch implements store.UserStore.Patch. Query and payload come verbatim
// from the client; see the interface doc for the access implications.
func (s *MongoUserStore) Patch(ctx context.Context, query, payload map[string]interface{}) error {
	_, err := s.coll.UpdateOne(ctx, query, bson.M{"$set": payload})
	if err != nil {
		return fmt.Errorf("failed to patch user: %w", err)
	}
	return nil
}
