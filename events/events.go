package events

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tavolo/apperr"
	"tavolo/db"
	"tavolo/models"
	"tavolo/mq"
	"tavolo/rdx"
	"tavolo/utils"
	"tavolo/xref"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// restaurantLookup populates the hosting restaurant (and its owner) onto
// each event.
func restaurantLookup() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "restaurants"},
			{Key: "localField", Value: "restaurant"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "restaurant_info"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$restaurant_info"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "restaurant_info.owner"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "restaurant_info.owner_info"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$restaurant_info.owner_info"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// CreateEvent creates an event for an approved restaurant and links it into
// the restaurant's event list. A pending or disapproved restaurant rejects
// the event before anything is written.
func CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var ev models.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if ev.Restaurant.IsZero() || ev.NameOfEvent == "" {
		http.Error(w, "Missing required fields: restaurant, name_of_event", http.StatusBadRequest)
		return
	}

	ev.ID = primitive.NilObjectID
	if ev.Tags == nil {
		ev.Tags = []string{}
	}
	ev.CreatedAt = time.Now().UTC()

	if err := xref.AddEvent(ctx, xref.DB, &ev); err != nil {
		utils.Error(w, err)
		return
	}

	rdx.InvalidateCache("restaurants")
	go mq.Emit(ctx, "event-created", models.Index{EntityType: "event", EntityId: ev.ID.Hex(), Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, ev)
}

func GetEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pipeline := []bson.D{}
	if rid := r.URL.Query().Get("restaurant"); rid != "" {
		id, err := utils.ParseObjectID("restaurant", rid)
		if err != nil {
			utils.Error(w, err)
			return
		}
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{{Key: "restaurant", Value: id}}}})
	}
	pipeline = append(pipeline, restaurantLookup()...)

	cursor, err := db.EventsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.Error(w, apperr.Wrap(apperr.Unexpected, err, "failed to fetch events"))
		return
	}
	defer cursor.Close(ctx)

	list := []models.EventWithRestaurant{}
	if err := cursor.All(ctx, &list); err != nil {
		utils.Error(w, apperr.Wrap(apperr.Unexpected, err, "failed to decode events"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

func GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := utils.ParseObjectID("event", ps.ByName("eventid"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	pipeline := append(
		[]bson.D{{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}}},
		restaurantLookup()...,
	)

	cursor, err := db.EventsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.Error(w, apperr.Wrap(apperr.Unexpected, err, "failed to fetch event"))
		return
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		utils.Error(w, apperr.New(apperr.NotFound, "Event with ID %q not found", id.Hex()))
		return
	}

	var ev models.EventWithRestaurant
	if err := cursor.Decode(&ev); err != nil {
		utils.Error(w, apperr.Wrap(apperr.Unexpected, err, "failed to decode event"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, ev)
}

// updatable fields for PATCH; the restaurant reference is immutable
var updatableFields = map[string]bool{
	"name_of_event":        true,
	"description_of_event": true,
	"event_date":           true,
	"event_start_time":     true,
	"event_end_time":       true,
	"ticket_fee":           true,
	"tags":                 true,
	"total_no_of_tickets":  true,
}

func EditEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := utils.ParseObjectID("event", ps.ByName("eventid"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	update := bson.M{}
	for k, v := range patch {
		if updatableFields[k] {
			update[k] = v
		}
	}
	if len(update) == 0 {
		http.Error(w, "No updatable fields supplied", http.StatusBadRequest)
		return
	}

	res := db.EventsCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var ev models.Event
	if err := res.Decode(&ev); err != nil {
		utils.Error(w, apperr.FromMongo(err, "Event", id.Hex()))
		return
	}

	go mq.Emit(ctx, "event-updated", models.Index{EntityType: "event", EntityId: id.Hex(), Method: "PATCH"})

	utils.RespondWithJSON(w, http.StatusOK, ev)
}

// DeleteEvent unlinks the event from its restaurant before removing the
// event document itself.
func DeleteEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := utils.ParseObjectID("event", ps.ByName("eventid"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	if err := xref.RemoveEvent(ctx, xref.DB, id); err != nil {
		utils.Error(w, err)
		return
	}

	rdx.InvalidateCache("restaurants")
	go mq.Emit(ctx, "event-deleted", models.Index{EntityType: "event", EntityId: id.Hex(), Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Event deleted successfully"})
}
