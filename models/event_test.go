package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// image_showcase is a scalar string in storage; a document written through
// the upload handler must decode back into the model.
func TestEventShowcaseStorageRoundTrip(t *testing.T) {
	stored := bson.M{
		"_id":            primitive.NewObjectID(),
		"restaurant":     primitive.NewObjectID(),
		"name_of_event":  "wine night",
		"image_showcase": "4f2a.jpg",
		"tags":           bson.A{"wine"},
	}

	raw, err := bson.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal stored document: %v", err)
	}

	var ev Event
	if err := bson.Unmarshal(raw, &ev); err != nil {
		t.Fatalf("stored document no longer decodes: %v", err)
	}
	if ev.ImageShowcase != "4f2a.jpg" {
		t.Fatalf("image_showcase = %q, want %q", ev.ImageShowcase, "4f2a.jpg")
	}

	// a replacement upload overwrites, never accumulates
	stored["image_showcase"] = "9b1c.jpg"
	raw, err = bson.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal replacement: %v", err)
	}
	if err := bson.Unmarshal(raw, &ev); err != nil {
		t.Fatalf("replacement document no longer decodes: %v", err)
	}
	if ev.ImageShowcase != "9b1c.jpg" {
		t.Fatalf("image_showcase = %q, want %q", ev.ImageShowcase, "9b1c.jpg")
	}
}
