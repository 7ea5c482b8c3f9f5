package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{NotFound, http.StatusNotFound},
		{InvalidID, http.StatusBadRequest},
		{Conflict, http.StatusConflict},
		{InvalidState, http.StatusBadRequest},
		{Unexpected, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := Status(New(c.kind, "boom")); got != c.want {
			t.Errorf("Status(kind %d) = %d, want %d", c.kind, got, c.want)
		}
	}
}

func TestStatusUnclassified(t *testing.T) {
	if got := Status(errors.New("raw")); got != http.StatusInternalServerError {
		t.Fatalf("Status(raw error) = %d, want 500", got)
	}
}

func TestMessageMasksUnexpected(t *testing.T) {
	err := Wrap(Unexpected, errors.New("connection refused"), "storage failure on User")
	if got := Message(err); got != "An unexpected error occurred." {
		t.Fatalf("Message = %q, internal detail leaked", got)
	}

	nf := New(NotFound, "User with ID %q not found", "abc")
	if got := Message(nf); got != `User with ID "abc" not found` {
		t.Fatalf("Message = %q", got)
	}
}

func TestKindOfWrapped(t *testing.T) {
	inner := New(NotFound, "gone")
	outer := fmt.Errorf("while cascading: %w", inner)
	if KindOf(outer) != NotFound {
		t.Fatal("KindOf should see through wrapping")
	}
	if KindOf(errors.New("raw")) != Unexpected {
		t.Fatal("unclassified errors default to Unexpected")
	}
}

func TestFromMongo(t *testing.T) {
	if FromMongo(nil, "User", "x") != nil {
		t.Fatal("nil error should stay nil")
	}

	err := FromMongo(mongo.ErrNoDocuments, "Booking", "abc")
	if KindOf(err) != NotFound {
		t.Fatalf("ErrNoDocuments -> %v, want NotFound", err)
	}

	err = FromMongo(errors.New("i/o timeout"), "Booking", "abc")
	if KindOf(err) != Unexpected {
		t.Fatalf("driver error -> %v, want Unexpected", err)
	}
}
