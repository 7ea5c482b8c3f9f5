// Package xref keeps the denormalized id arrays on parent documents
// (restaurant.bookings, restaurant.events, user.restaurants) in step with the
// child records they point at. The store offers no multi-document
// transactions, so every operation here is ordered to leave the least
// damaging state behind when it fails partway.
package xref

import (
	"context"

	"tavolo/apperr"
	"tavolo/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the slice of persistence the cross-entity operations need.
type Store interface {
	User(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Restaurant(ctx context.Context, id primitive.ObjectID) (*models.Restaurant, error)
	Event(ctx context.Context, id primitive.ObjectID) (*models.Event, error)

	SaveRestaurantRefs(ctx context.Context, id primitive.ObjectID, bookings, events []primitive.ObjectID) error
	SaveOwnedRestaurants(ctx context.Context, ownerID primitive.ObjectID, restaurants []primitive.ObjectID) error

	InsertEvent(ctx context.Context, ev *models.Event) (primitive.ObjectID, error)
	DeleteEvent(ctx context.Context, id primitive.ObjectID) error
	DeleteRestaurant(ctx context.Context, id primitive.ObjectID) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
}

// LinkBooking records a confirmed booking on its restaurant. Idempotent:
// re-confirming the same booking does not duplicate the reference.
func LinkBooking(ctx context.Context, s Store, bookingID, restaurantID primitive.ObjectID) error {
	rst, err := s.Restaurant(ctx, restaurantID)
	if err != nil {
		return err
	}
	if rst.HasBooking(bookingID) {
		return nil
	}
	return s.SaveRestaurantRefs(ctx, rst.ID, append(rst.Bookings, bookingID), rst.Events)
}

// AddEvent creates an event against an approved restaurant and records it on
// the restaurant. A non-approved restaurant rejects the event before anything
// is written.
func AddEvent(ctx context.Context, s Store, ev *models.Event) error {
	rst, err := s.Restaurant(ctx, ev.Restaurant)
	if err != nil {
		return err
	}
	if rst.Status != models.StatusApproved {
		return apperr.New(apperr.InvalidState, "Restaurant is not approved by the admin")
	}

	id, err := s.InsertEvent(ctx, ev)
	if err != nil {
		return err
	}
	ev.ID = id

	return s.SaveRestaurantRefs(ctx, rst.ID, rst.Bookings, append(rst.Events, id))
}

// RemoveEvent deletes an event, clearing the restaurant's reference first so
// a failure between the two steps leaves a dangling id on the parent rather
// than an orphaned, invisible event.
func RemoveEvent(ctx context.Context, s Store, eventID primitive.ObjectID) error {
	ev, err := s.Event(ctx, eventID)
	if err != nil {
		return err
	}

	rst, err := s.Restaurant(ctx, ev.Restaurant)
	if err != nil {
		return err
	}

	kept := make([]primitive.ObjectID, 0, len(rst.Events))
	for _, id := range rst.Events {
		if id != eventID {
			kept = append(kept, id)
		}
	}
	if err := s.SaveRestaurantRefs(ctx, rst.ID, rst.Bookings, kept); err != nil {
		return err
	}

	return s.DeleteEvent(ctx, eventID)
}

// AttachRestaurant records a newly registered restaurant on its owner.
func AttachRestaurant(ctx context.Context, s Store, ownerID, restaurantID primitive.ObjectID) error {
	owner, err := s.User(ctx, ownerID)
	if err != nil {
		return err
	}
	if owner.OwnsRestaurant(restaurantID) {
		return nil
	}
	return s.SaveOwnedRestaurants(ctx, owner.ID, append(owner.Restaurants, restaurantID))
}

// DetachRestaurant removes a restaurant from its owner's list.
func DetachRestaurant(ctx context.Context, s Store, ownerID, restaurantID primitive.ObjectID) error {
	owner, err := s.User(ctx, ownerID)
	if err != nil {
		return err
	}
	kept := make([]primitive.ObjectID, 0, len(owner.Restaurants))
	for _, id := range owner.Restaurants {
		if id != restaurantID {
			kept = append(kept, id)
		}
	}
	return s.SaveOwnedRestaurants(ctx, owner.ID, kept)
}

// RemoveUser deletes a user and every restaurant it owns. Restaurants go
// first, in list order; the first failure aborts the cascade with earlier
// deletions left in place. No rollback is attempted. The user document is
// deleted last so a partial cascade can be resumed.
func RemoveUser(ctx context.Context, s Store, userID primitive.ObjectID) error {
	user, err := s.User(ctx, userID)
	if err != nil {
		return err
	}

	for _, rid := range user.Restaurants {
		if err := s.DeleteRestaurant(ctx, rid); err != nil {
			return apperr.Wrap(apperr.KindOf(err), err, "cascade stopped at restaurant %s", rid.Hex())
		}
	}

	return s.DeleteUser(ctx, userID)
}
