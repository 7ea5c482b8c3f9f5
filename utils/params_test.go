package utils

import (
	"testing"

	"tavolo/apperr"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseObjectID(t *testing.T) {
	want := primitive.NewObjectID()
	got, err := ParseObjectID("booking", want.Hex())
	if err != nil {
		t.Fatalf("valid hex rejected: %v", err)
	}
	if got != want {
		t.Fatalf("got %s, want %s", got.Hex(), want.Hex())
	}
}

func TestParseObjectIDMalformed(t *testing.T) {
	for _, raw := range []string{"", "not-hex", "123", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := ParseObjectID("booking", raw)
		if apperr.KindOf(err) != apperr.InvalidID {
			t.Errorf("ParseObjectID(%q) = %v, want InvalidID", raw, err)
		}
	}
}
