// Package apperr classifies storage and precondition failures into the small
// set of request errors the HTTP layer knows how to answer.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

type Kind int

const (
	// Unexpected is any failure with no more specific classification.
	Unexpected Kind = iota
	// NotFound means a referenced entity does not exist.
	NotFound
	// InvalidID means the supplied id is not a structurally valid ObjectID.
	InvalidID
	// Conflict means a uniqueness constraint was violated.
	Conflict
	// InvalidState means a precondition on another entity's state is unmet.
	InvalidState
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the classification from err, defaulting to Unexpected.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Unexpected
}

// Status maps a classified error to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case NotFound:
		return http.StatusNotFound
	case InvalidID:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case InvalidState:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message. Unexpected errors are masked so
// internal detail never leaks.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != Unexpected {
		return ae.Message
	}
	return "An unexpected error occurred."
}

// FromMongo translates driver errors for a single-document lookup or write.
func FromMongo(err error, entity, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return New(NotFound, "%s with ID %q not found", entity, id)
	case mongo.IsDuplicateKeyError(err):
		return Wrap(Conflict, err, "%s already exists", entity)
	default:
		return Wrap(Unexpected, err, "storage failure on %s", entity)
	}
}
