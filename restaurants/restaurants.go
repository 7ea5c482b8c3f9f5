package restaurants

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
	"go.mongodb.org/mongo-driver/mongo"
)

const listCacheKey = "restaurants"

// ownerLookup populates the owner document onto each restaurant.
func ownerLookup() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "owner"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner_info"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner_info"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// RegisterRestaurant creates a restaurant for an existing owner. New
// restaurants always start in the pending approval state.
func RegisterRestaurant(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var rst models.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&rst); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if rst.RestaurantName == "" || rst.Owner.IsZero() {
		http.Error(w, "Missing required fields: restaurant_name, owner", http.StatusBadRequest)
		return
	}

	// Owner must pre-exist.
	owner, err := xref.DB.User(ctx, rst.Owner)
	if err != nil {
		utils.Error(w, err)
		return
	}

	// Duplicate restaurant by name and owner.
	err = db.RestaurantsCollection.FindOne(ctx, bson.M{
		"restaurant_name": rst.RestaurantName,
		"owner":           rst.Owner,
	}).Err()
	if err == nil {
		utils.Error(w, apperr.New(apperr.Conflict, "Restaurant with the same name and owner already exists."))
		return
	} else if err != mongo.ErrNoDocuments {
		utils.Error(w, apperr.Wrap(apperr.Unexpected, err, "duplicate check failed"))
		return
	}

	rst.ID = primitive.NilObjectID
	rst.Status = models.StatusPending
	rst.Bookings = []primitive.ObjectID{}
	rst.Events = []primitive.ObjectID{}
	if rst.OwnerName == "" {
		rst.OwnerName = owner.FirstName + " " + owner.LastName
	}
	rst.CreatedAt = time.Now().UTC()
	rst.UpdatedAt = rst.CreatedAt

	res, err := db.RestaurantsCollection.InsertOne(ctx, rst)
	if err != nil {
		utils.Error(w, apperr.FromMongo(err, "Restaurant", ""))
		return
	}
	rst.ID = res.InsertedID.(primitive.ObjectID)

	if err := xref.AttachRestaurant(ctx, xref.DB, owner.ID, rst.ID); err != nil {
		utils.Error(w, err)
		return
	}

	rdx.InvalidateCache(listCacheKey)
	go mq.Emit(ctx, "restaurant-created", models.Index{EntityType: "restaurant", EntityId: rst.ID.Hex(), Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, rst)
}

// GetRestaurants lists restaurants, optionally filtered by approval state.
// The unfiltered list is served from cache when warm.
func GetRestaurants(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := r.URL.Query().Get("is_verified_by_admin")

	if status == "" {
		if cached, _ := rdx.RdxGet(listCacheKey); cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	pipeline := []bson.D{}
	if status != "" {
		if !validStatus(models.RestaurantStatus(status)) {
			http.Error(w, "Invalid approval state filter", http.StatusBadRequest)
			return
		}
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{{Key: "is_verified_by_admin", Value: status}}}})
	}
	pipeline = append(pipeline, ownerLookup()...)

	cursor, err := db.RestaurantsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.Error(w, apperr.Wrap(apperr.Unexpected, err, "failed to fetch restaurants"))
		return
	}
	defer cursor.Close(ctx)

	list := []models.RestaurantWithOwner{}
	if err := cursor.All(ctx, &list); err != nil {
		utils.Error(w, apperr.Wrap(apperr.Unexpected, err, "failed to decode restaurants"))
		return
	}

	if status == "" {
		if data, err := json.Marshal(list); err == nil {
			rdx.RdxSet(listCacheKey, string(data))
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

func GetRestaurant(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := utils.ParseObjectID("restaurant", ps.ByName("restaurantid"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	pipeline := append(
		[]bson.D{{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}}},
		ownerLookup()...,
	)

	cursor, err := db.RestaurantsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.Error(w, apperr.Wrap(apperr.Unexpected, err, "failed to fetch restaurant"))
		return
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		utils.Error(w, apperr.New(apperr.NotFound, "Restaurant with ID %q not found", id.Hex()))
		return
	}

	var rst models.RestaurantWithOwner
	if err := cursor.Decode(&rst); err != nil {
		utils.Error(w, apperr.Wrap(apperr.Unexpected, err, "failed to decode restaurant"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, rst)
}

func validStatus(s models.RestaurantStatus) bool {
	switch s {
	case models.StatusPending, models.StatusApproved, models.StatusDisapproved:
		return true
	}
	return false
}
