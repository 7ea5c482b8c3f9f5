package xref

import (
	"context"
	"testing"

	"tavolo/apperr"
	"tavolo/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore keeps all entities in maps and lets tests inject failures per
// operation.
type fakeStore struct {
	users       map[primitive.ObjectID]*models.User
	restaurants map[primitive.ObjectID]*models.Restaurant
	events      map[primitive.ObjectID]*models.Event

	failInsertEvent      error
	failDeleteEvent      error
	failDeleteRestaurant map[primitive.ObjectID]error

	insertedEvents     int
	deletedRestaurants []primitive.ObjectID
	userDeleted        bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:                map[primitive.ObjectID]*models.User{},
		restaurants:          map[primitive.ObjectID]*models.Restaurant{},
		events:               map[primitive.ObjectID]*models.Event{},
		failDeleteRestaurant: map[primitive.ObjectID]error{},
	}
}

func (f *fakeStore) User(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "User with ID %q not found", id.Hex())
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) Restaurant(_ context.Context, id primitive.ObjectID) (*models.Restaurant, error) {
	r, ok := f.restaurants[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "Restaurant with ID %q not found", id.Hex())
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) Event(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "Event with ID %q not found", id.Hex())
	}
	cp := *e
	return &cp, nil
}

func (f *fakeStore) SaveRestaurantRefs(_ context.Context, id primitive.ObjectID, bookings, events []primitive.ObjectID) error {
	r, ok := f.restaurants[id]
	if !ok {
		return apperr.New(apperr.NotFound, "Restaurant with ID %q not found", id.Hex())
	}
	r.Bookings = bookings
	r.Events = events
	return nil
}

func (f *fakeStore) SaveOwnedRestaurants(_ context.Context, ownerID primitive.ObjectID, restaurants []primitive.ObjectID) error {
	u, ok := f.users[ownerID]
	if !ok {
		return apperr.New(apperr.NotFound, "User with ID %q not found", ownerID.Hex())
	}
	u.Restaurants = restaurants
	return nil
}

func (f *fakeStore) InsertEvent(_ context.Context, ev *models.Event) (primitive.ObjectID, error) {
	if f.failInsertEvent != nil {
		return primitive.NilObjectID, f.failInsertEvent
	}
	id := primitive.NewObjectID()
	cp := *ev
	cp.ID = id
	f.events[id] = &cp
	f.insertedEvents++
	return id, nil
}

func (f *fakeStore) DeleteEvent(_ context.Context, id primitive.ObjectID) error {
	if f.failDeleteEvent != nil {
		return f.failDeleteEvent
	}
	delete(f.events, id)
	return nil
}

func (f *fakeStore) DeleteRestaurant(_ context.Context, id primitive.ObjectID) error {
	if err := f.failDeleteRestaurant[id]; err != nil {
		return err
	}
	delete(f.restaurants, id)
	f.deletedRestaurants = append(f.deletedRestaurants, id)
	return nil
}

func (f *fakeStore) DeleteUser(_ context.Context, id primitive.ObjectID) error {
	delete(f.users, id)
	f.userDeleted = true
	return nil
}

func (f *fakeStore) addRestaurant(status models.RestaurantStatus) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.restaurants[id] = &models.Restaurant{
		ID:       id,
		Status:   status,
		Bookings: []primitive.ObjectID{},
		Events:   []primitive.ObjectID{},
	}
	return id
}

func TestLinkBookingIdempotent(t *testing.T) {
	s := newFakeStore()
	rid := s.addRestaurant(models.StatusApproved)
	bid := primitive.NewObjectID()

	if err := LinkBooking(context.Background(), s, bid, rid); err != nil {
		t.Fatalf("first link: %v", err)
	}
	if err := LinkBooking(context.Background(), s, bid, rid); err != nil {
		t.Fatalf("second link: %v", err)
	}

	if got := len(s.restaurants[rid].Bookings); got != 1 {
		t.Fatalf("expected 1 booking ref, got %d", got)
	}
}

func TestLinkBookingMissingRestaurant(t *testing.T) {
	s := newFakeStore()
	err := LinkBooking(context.Background(), s, primitive.NewObjectID(), primitive.NewObjectID())
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestAddEventRequiresApproval(t *testing.T) {
	s := newFakeStore()
	for _, status := range []models.RestaurantStatus{models.StatusPending, models.StatusDisapproved} {
		rid := s.addRestaurant(status)
		ev := &models.Event{Restaurant: rid, NameOfEvent: "wine night"}

		err := AddEvent(context.Background(), s, ev)
		if apperr.KindOf(err) != apperr.InvalidState {
			t.Fatalf("status %q: expected InvalidState, got %v", status, err)
		}
		if s.insertedEvents != 0 {
			t.Fatalf("status %q: event was inserted despite rejection", status)
		}
	}
}

func TestAddEventLinksRestaurant(t *testing.T) {
	s := newFakeStore()
	rid := s.addRestaurant(models.StatusApproved)
	ev := &models.Event{Restaurant: rid, NameOfEvent: "tasting"}

	if err := AddEvent(context.Background(), s, ev); err != nil {
		t.Fatalf("AddEvent: %v", err)
	}
	if ev.ID.IsZero() {
		t.Fatal("event id was not assigned")
	}

	events := s.restaurants[rid].Events
	if len(events) != 1 || events[0] != ev.ID {
		t.Fatalf("restaurant event refs = %v, want [%s]", events, ev.ID.Hex())
	}
}

func TestRemoveEventUnlinksBeforeDelete(t *testing.T) {
	s := newFakeStore()
	rid := s.addRestaurant(models.StatusApproved)
	ev := &models.Event{Restaurant: rid, NameOfEvent: "live jazz"}
	if err := AddEvent(context.Background(), s, ev); err != nil {
		t.Fatalf("AddEvent: %v", err)
	}

	s.failDeleteEvent = apperr.New(apperr.Unexpected, "storage failure on Event")

	err := RemoveEvent(context.Background(), s, ev.ID)
	if err == nil {
		t.Fatal("expected delete failure to propagate")
	}

	// The parent reference must already be gone even though the child
	// document survived.
	if got := len(s.restaurants[rid].Events); got != 0 {
		t.Fatalf("restaurant still holds %d event refs", got)
	}
	if _, ok := s.events[ev.ID]; !ok {
		t.Fatal("event document should still exist after failed delete")
	}
}

func TestRemoveEventDeletesChild(t *testing.T) {
	s := newFakeStore()
	rid := s.addRestaurant(models.StatusApproved)
	keep := &models.Event{Restaurant: rid, NameOfEvent: "keep"}
	drop := &models.Event{Restaurant: rid, NameOfEvent: "drop"}
	for _, ev := range []*models.Event{keep, drop} {
		if err := AddEvent(context.Background(), s, ev); err != nil {
			t.Fatalf("AddEvent: %v", err)
		}
	}

	if err := RemoveEvent(context.Background(), s, drop.ID); err != nil {
		t.Fatalf("RemoveEvent: %v", err)
	}

	if _, ok := s.events[drop.ID]; ok {
		t.Fatal("event document was not deleted")
	}
	events := s.restaurants[rid].Events
	if len(events) != 1 || events[0] != keep.ID {
		t.Fatalf("restaurant event refs = %v, want [%s]", events, keep.ID.Hex())
	}
}

func TestAttachDetachRestaurant(t *testing.T) {
	s := newFakeStore()
	uid := primitive.NewObjectID()
	s.users[uid] = &models.User{ID: uid, Restaurants: []primitive.ObjectID{}}
	rid := primitive.NewObjectID()

	if err := AttachRestaurant(context.Background(), s, uid, rid); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := AttachRestaurant(context.Background(), s, uid, rid); err != nil {
		t.Fatalf("re-attach: %v", err)
	}
	if got := len(s.users[uid].Restaurants); got != 1 {
		t.Fatalf("expected 1 owned restaurant, got %d", got)
	}

	if err := DetachRestaurant(context.Background(), s, uid, rid); err != nil {
		t.Fatalf("detach: %v", err)
	}
	if got := len(s.users[uid].Restaurants); got != 0 {
		t.Fatalf("expected 0 owned restaurants, got %d", got)
	}
}

func TestRemoveUserCascade(t *testing.T) {
	s := newFakeStore()
	uid := primitive.NewObjectID()
	r1 := s.addRestaurant(models.StatusApproved)
	r2 := s.addRestaurant(models.StatusPending)
	s.users[uid] = &models.User{ID: uid, Restaurants: []primitive.ObjectID{r1, r2}}

	if err := RemoveUser(context.Background(), s, uid); err != nil {
		t.Fatalf("RemoveUser: %v", err)
	}

	if len(s.restaurants) != 0 {
		t.Fatalf("%d restaurants survived the cascade", len(s.restaurants))
	}
	if !s.userDeleted {
		t.Fatal("user document was not deleted")
	}
}

func TestRemoveUserCascadeStopsAtFirstFailure(t *testing.T) {
	s := newFakeStore()
	uid := primitive.NewObjectID()
	r1 := s.addRestaurant(models.StatusApproved)
	r2 := s.addRestaurant(models.StatusApproved)
	r3 := s.addRestaurant(models.StatusApproved)
	s.users[uid] = &models.User{ID: uid, Restaurants: []primitive.ObjectID{r1, r2, r3}}

	s.failDeleteRestaurant[r2] = apperr.New(apperr.Unexpected, "storage failure on Restaurant")

	err := RemoveUser(context.Background(), s, uid)
	if err == nil {
		t.Fatal("expected cascade failure to propagate")
	}

	if len(s.deletedRestaurants) != 1 || s.deletedRestaurants[0] != r1 {
		t.Fatalf("deleted restaurants = %v, want [%s]", s.deletedRestaurants, r1.Hex())
	}
	if _, ok := s.restaurants[r3]; !ok {
		t.Fatal("restaurant after the failure point was deleted")
	}
	if s.userDeleted {
		t.Fatal("user document was deleted despite a failed cascade")
	}
}

func TestRemoveUserMissingUser(t *testing.T) {
	s := newFakeStore()
	err := RemoveUser(context.Background(), s, primitive.NewObjectID())
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
