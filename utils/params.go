package utils

import (
	"tavolo/apperr"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseObjectID distinguishes a malformed id from a valid-but-absent one.
func ParseObjectID(entity, raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperr.New(apperr.InvalidID, "Invalid %s ID: %q", entity, raw)
	}
	return id, nil
}
