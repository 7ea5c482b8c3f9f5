package users

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"tavolo/apperr"
	"tavolo/db"
	"tavolo/models"
	"tavolo/mq"
	"tavolo/utils"
	"tavolo/xref"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateUser registers a partner/admin account document directly. Duplicate
// emails are rejected by the unique index.
func CreateUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if user.Email == "" || user.FirstName == "" || user.LastName == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	if user.UID == "" {
		user.UID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RolePartner
	}
	user.ID = primitive.NilObjectID
	user.Restaurants = []primitive.ObjectID{}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	res, err := db.UserCollection.InsertOne(ctx, user)
	if err != nil {
		utils.Error(w, apperr.FromMongo(err, "User", ""))
		return
	}
	user.ID = res.InsertedID.(primitive.ObjectID)

	go mq.Emit(ctx, "user-created", models.Index{EntityType: "user", EntityId: user.ID.Hex(), Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, user)
}

func GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cursor, err := db.UserCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.Error(w, apperr.Wrap(apperr.Unexpected, err, "failed to fetch users"))
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		utils.Error(w, apperr.Wrap(apperr.Unexpected, err, "failed to decode users"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, users)
}

func GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := utils.ParseObjectID("user", ps.ByName("userid"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		utils.Error(w, apperr.FromMongo(err, "User", id.Hex()))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

func GetUserByUID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	uid := ps.ByName("uid")

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"uid": uid}).Decode(&user); err != nil {
		utils.Error(w, apperr.FromMongo(err, "User", uid))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

// updatable fields for PATCH; ids, back-references and auth fields are
// immutable through this endpoint
var updatableFields = map[string]bool{
	"phone_number": true,
	"email":        true,
	"first_name":   true,
	"last_name":    true,
	"role":         true,
}

func EditUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := utils.ParseObjectID("user", ps.ByName("userid"))
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
	update["updated_at"] = time.Now().UTC()

	res := db.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var user models.User
	if err := res.Decode(&user); err != nil {
		utils.Error(w, apperr.FromMongo(err, "User", id.Hex()))
		return
	}

	go mq.Emit(ctx, "user-updated", models.Index{EntityType: "user", EntityId: id.Hex(), Method: "PATCH"})

	utils.RespondWithJSON(w, http.StatusOK, user)
}

// DeleteUser removes the user and cascades to every restaurant it owns.
func DeleteUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := utils.ParseObjectID("user", ps.ByName("userid"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	if err := xref.RemoveUser(ctx, xref.DB, id); err != nil {
		utils.Error(w, err)
		return
	}

	go mq.Emit(ctx, "user-deleted", models.Index{EntityType: "user", EntityId: id.Hex(), Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "User and associated restaurants successfully deleted"})
}
