package mongodb

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// mapError maps a driver error to the store's sentinel errors, wrapping the
// original for debugging. notFound is the sentinel to use for an empty
// single-document result.
func mapError(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %v", notFound, err)
	}
	return err
}
