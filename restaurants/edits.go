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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// updatable fields for PATCH; owner and the back-reference arrays stay
// immutable through this endpoint
var updatableFields = map[string]bool{
	"restaurant_name":      true,
	"owner_name":           true,
	"state":                true,
	"city":                 true,
	"country":              true,
	"latitude":             true,
	"longitude":            true,
	"special_dishes":       true,
	"restaurant_images":    true,
	"category":             true,
	"zipcode":              true,
	"full_address":         true,
	"opening_hours":        true,
	"booking_price":        true,
	"is_verified_by_admin": true,
}

func EditRestaurant(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := utils.ParseObjectID("restaurant", ps.ByName("restaurantid"))
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
	if status, ok := update["is_verified_by_admin"].(string); ok {
		if !validStatus(models.RestaurantStatus(status)) {
			http.Error(w, "Invalid approval state", http.StatusBadRequest)
			return
		}
	}
	if len(update) == 0 {
		http.Error(w, "No updatable fields supplied", http.StatusBadRequest)
		return
	}
	update["updated_at"] = time.Now().UTC()

	res := db.RestaurantsCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var rst models.Restaurant
	if err := res.Decode(&rst); err != nil {
		utils.Error(w, apperr.FromMongo(err, "Restaurant", id.Hex()))
		return
	}

	rdx.InvalidateCache(listCacheKey)
	go mq.Emit(ctx, "restaurant-updated", models.Index{EntityType: "restaurant", EntityId: id.Hex(), Method: "PATCH"})

	utils.RespondWithJSON(w, http.StatusOK, rst)
}

// SetApproval is the admin gate: flips the approval state that controls
// whether the restaurant may host events.
func SetApproval(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := utils.ParseObjectID("restaurant", ps.ByName("restaurantid"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	var body struct {
		Status models.RestaurantStatus `json:"is_verified_by_admin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if !validStatus(body.Status) {
		http.Error(w, "Invalid approval state", http.StatusBadRequest)
		return
	}

	res := db.RestaurantsCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_verified_by_admin": body.Status, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var rst models.Restaurant
	if err := res.Decode(&rst); err != nil {
		utils.Error(w, apperr.FromMongo(err, "Restaurant", id.Hex()))
		return
	}

	rdx.InvalidateCache(listCacheKey)
	go mq.Emit(ctx, "restaurant-approval", models.Index{EntityType: "restaurant", EntityId: id.Hex(), Method: "PATCH"})

	utils.RespondWithJSON(w, http.StatusOK, rst)
}

// DeleteRestaurant removes the restaurant and pulls it from the owner's
// owned list. A missing owner is tolerated so an orphaned restaurant can
// still be cleaned up.
func DeleteRestaurant(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := utils.ParseObjectID("restaurant", ps.ByName("restaurantid"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	rst, err := xref.DB.Restaurant(ctx, id)
	if err != nil {
		utils.Error(w, err)
		return
	}

	if err := xref.DB.DeleteRestaurant(ctx, id); err != nil {
		utils.Error(w, err)
		return
	}

	if err := xref.DetachRestaurant(ctx, xref.DB, rst.Owner, id); err != nil {
		if apperr.KindOf(err) != apperr.NotFound {
			utils.Error(w, err)
			return
		}
	}

	rdx.InvalidateCache(listCacheKey)
	go mq.Emit(ctx, "restaurant-deleted", models.Index{EntityType: "restaurant", EntityId: id.Hex(), Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Restaurant deleted successfully"})
}
