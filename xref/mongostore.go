package xref

import (
	"context"
	"time"

	"tavolo/apperr"
	"tavolo/db"
	"tavolo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DB is the mongo-backed Store the handlers use.
var DB Store = mongoStore{}

type mongoStore struct{}

func (mongoStore) User(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return nil, apperr.FromMongo(err, "User", id.Hex())
	}
	return &u, nil
}

func (mongoStore) Restaurant(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	var rst models.Restaurant
	err := db.RestaurantsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&rst)
	if err != nil {
		return nil, apperr.FromMongo(err, "Restaurant", id.Hex())
	}
	return &rst, nil
}

func (mongoStore) Event(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var ev models.Event
	err := db.EventsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&ev)
	if err != nil {
		return nil, apperr.FromMongo(err, "Event", id.Hex())
	}
	return &ev, nil
}

func (mongoStore) SaveRestaurantRefs(ctx context.Context, id primitive.ObjectID, bookings, events []primitive.ObjectID) error {
	res, err := db.RestaurantsCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"bookings":   bookings,
			"events":     events,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return apperr.FromMongo(err, "Restaurant", id.Hex())
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "Restaurant with ID %q not found", id.Hex())
	}
	return nil
}

func (mongoStore) SaveOwnedRestaurants(ctx context.Context, ownerID primitive.ObjectID, restaurants []primitive.ObjectID) error {
	res, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": ownerID},
		bson.M{"$set": bson.M{
			"restaurants": restaurants,
			"updated_at":  time.Now().UTC(),
		}},
	)
	if err != nil {
		return apperr.FromMongo(err, "User", ownerID.Hex())
	}
	if res.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "User with ID %q not found", ownerID.Hex())
	}
	return nil
}

func (mongoStore) InsertEvent(ctx context.Context, ev *models.Event) (primitive.ObjectID, error) {
	res, err := db.EventsCollection.InsertOne(ctx, ev)
	if err != nil {
		return primitive.NilObjectID, apperr.FromMongo(err, "Event", "")
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// Child deletions tolerate already-missing documents: a dangling reference on
// a parent must not wedge the cleanup that would repair it.
func (mongoStore) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.EventsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.FromMongo(err, "Event", id.Hex())
	}
	return nil
}

func (mongoStore) DeleteRestaurant(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.RestaurantsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.FromMongo(err, "Restaurant", id.Hex())
	}
	return nil
}

func (mongoStore) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	_, err := db.UserCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.FromMongo(err, "User", id.Hex())
	}
	return nil
}
