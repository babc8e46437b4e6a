package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Item is a single todo entry owned by exactly one user. UserID references
// the owner's document ID; listing "my items" filters on it.
type Item struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"        json:"id"`
	Title       string             `bson:"title"                json:"title"`
	Description string             `bson:"description"          json:"description"`
	Done        bool               `bson:"done"                 json:"done"`
	UserID      primitive.ObjectID `bson:"user_id"              json:"user_id"`
	ImageName   string             `bson:"image_name,omitempty" json:"image_name,omitempty"`
}

// NewItem creates an Item for the given owner. New items always start with
// done=false regardless of what the client sent.
func NewItem(title, description string, ownerID primitive.ObjectID) (*Item, error) {
	item := &Item{
		Title:       title,
		Description: description,
		Done:        false,
		UserID:      ownerID,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks that the Item carries the fields the store requires.
func (i *Item) Validate() error {
	if i.Title == "" {
		return ErrEmptyTitle
	}
	if i.Description == "" {
		return ErrEmptyDescription
	}
	return nil
}
