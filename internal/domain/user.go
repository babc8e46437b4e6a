package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// MinPasswordLength is the minimum plaintext password length accepted at
// registration and login.
const MinPasswordLength = 5

// User represents a registered account. The username is the identity key;
// the ObjectID is assigned by the store at insertion.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Username  string             `bson:"username"             json:"username"`
	Password  string             `bson:"password"             json:"-"` // bcrypt hash, never serialized
	ImageName string             `bson:"image_name,omitempty" json:"image_name,omitempty"`
}

// NewUser creates a User with the given username and already-hashed password.
// The caller is responsible for hashing the plaintext before calling this.
func NewUser(username, hashedPassword string) (*User, error) {
	user := &User{
		Username: username,
		Password: hashedPassword,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks that the User carries the fields the store requires.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if u.Password == "" {
		return ErrValidation
	}
	return nil
}
