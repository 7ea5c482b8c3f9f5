package bookings

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

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultDurationMinutes = 60

// CreateBooking records a new booking in PENDING state. The restaurant must
// exist at creation time; it is re-checked again only on confirmation.
func CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if b.RestaurantID.IsZero() || b.CustomerName == "" || b.CustomerContact == "" || b.BookingTime.IsZero() {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	if _, err := xref.DB.Restaurant(ctx, b.RestaurantID); err != nil {
		utils.Error(w, err)
		return
	}

	if b.Status == "" {
		b.Status = models.BookingPending
	} else if !models.ValidBookingStatus(b.Status) {
		http.Error(w, "Invalid booking status", http.StatusBadRequest)
		return
	}
	if b.DurationInMinutes <= 0 {
		b.DurationInMinutes = defaultDurationMinutes
	}
	b.ID = primitive.NilObjectID
	b.DeriveEndTime()
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt

	res, err := db.BookingsCollection.InsertOne(ctx, b)
	if err != nil {
		utils.Error(w, apperr.FromMongo(err, "Booking", ""))
		return
	}
	b.ID = res.InsertedID.(primitive.ObjectID)

	go mq.Emit(ctx, "booking-created", models.Index{EntityType: "booking", EntityId: b.ID.Hex(), Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, b)
}

func GetBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if rid := r.URL.Query().Get("restaurant_id"); rid != "" {
		id, err := utils.ParseObjectID("restaurant", rid)
		if err != nil {
			utils.Error(w, err)
			return
		}
		filter["restaurant_id"] = id
	}

	cursor, err := db.BookingsCollection.Find(ctx, filter)
	if err != nil {
		utils.Error(w, apperr.Wrap(apperr.Unexpected, err, "failed to fetch bookings"))
		return
	}
	defer cursor.Close(ctx)

	list := []models.Booking{}
	if err := cursor.All(ctx, &list); err != nil {
		utils.Error(w, apperr.Wrap(apperr.Unexpected, err, "failed to decode bookings"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

func GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := utils.ParseObjectID("booking", ps.ByName("bookingid"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	var b models.Booking
	if err := db.BookingsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		utils.Error(w, apperr.FromMongo(err, "Booking", id.Hex()))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, b)
}

type bookingPatch struct {
	CustomerName      *string               `json:"customer_name"`
	CustomerContact   *string               `json:"customer_contact"`
	NumberOfGuests    *int                  `json:"number_of_guests"`
	BookingTime       *time.Time            `json:"booking_time"`
	DurationInMinutes *int                  `json:"booking_duration_in_minutes"`
	SpecialRequests   *string               `json:"special_requests"`
	Status            *models.BookingStatus `json:"status"`
}

// EditBooking applies a partial update. Status transitions are not enforced
// here; only the confirm endpoint carries the link side effect.
func EditBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := utils.ParseObjectID("booking", ps.ByName("bookingid"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	var patch bookingPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if patch.Status != nil && !models.ValidBookingStatus(*patch.Status) {
		http.Error(w, "Invalid booking status", http.StatusBadRequest)
		return
	}

	update := bson.M{}
	if patch.CustomerName != nil {
		update["customer_name"] = *patch.CustomerName
	}
	if patch.CustomerContact != nil {
		update["customer_contact"] = *patch.CustomerContact
	}
	if patch.NumberOfGuests != nil {
		update["number_of_guests"] = *patch.NumberOfGuests
	}
	if patch.SpecialRequests != nil {
		update["special_requests"] = *patch.SpecialRequests
	}
	if patch.Status != nil {
		update["status"] = *patch.Status
	}

	// Rederive the end time when the window moves.
	if patch.BookingTime != nil || patch.DurationInMinutes != nil {
		var current models.Booking
		if err := db.BookingsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&current); err != nil {
			utils.Error(w, apperr.FromMongo(err, "Booking", id.Hex()))
			return
		}
		if patch.BookingTime != nil {
			current.BookingTime = *patch.BookingTime
			update["booking_time"] = current.BookingTime
		}
		if patch.DurationInMinutes != nil {
			current.DurationInMinutes = *patch.DurationInMinutes
			update["booking_duration_in_minutes"] = current.DurationInMinutes
		}
		current.DeriveEndTime()
		update["booking_end_time"] = current.BookingEndTime
	}

	if len(update) == 0 {
		http.Error(w, "No updatable fields supplied", http.StatusBadRequest)
		return
	}
	update["updated_at"] = time.Now().UTC()

	res := db.BookingsCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var b models.Booking
	if err := res.Decode(&b); err != nil {
		utils.Error(w, apperr.FromMongo(err, "Booking", id.Hex()))
		return
	}

	broadcastBooking(&b)
	go mq.Emit(ctx, "booking-updated", models.Index{EntityType: "booking", EntityId: id.Hex(), Method: "PATCH"})

	utils.RespondWithJSON(w, http.StatusOK, b)
}

// ConfirmBooking flips the booking to CONFIRMED and records it on the owning
// restaurant. Re-confirming is harmless: the link append is idempotent. If
// the restaurant vanished since the booking was created, the booking stays
// CONFIRMED and the restaurant lookup reports not-found; no compensation is
// attempted.
func ConfirmBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := utils.ParseObjectID("booking", ps.ByName("bookingid"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	res := db.BookingsCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": models.BookingConfirmed, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var b models.Booking
	if err := res.Decode(&b); err != nil {
		utils.Error(w, apperr.FromMongo(err, "Booking", id.Hex()))
		return
	}

	if err := xref.LinkBooking(ctx, xref.DB, b.ID, b.RestaurantID); err != nil {
		utils.Error(w, err)
		return
	}

	broadcastBooking(&b)
	go mq.Emit(ctx, "booking-confirmed", models.Index{EntityType: "booking", EntityId: id.Hex(), Method: "GET"})

	utils.RespondWithJSON(w, http.StatusOK, b)
}

func DeleteBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := utils.ParseObjectID("booking", ps.ByName("bookingid"))
	if err != nil {
		utils.Error(w, err)
		return
	}

	res, err := db.BookingsCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.Error(w, apperr.FromMongo(err, "Booking", id.Hex()))
		return
	}
	if res.DeletedCount == 0 {
		utils.Error(w, apperr.New(apperr.NotFound, "Booking with ID %q not found", id.Hex()))
		return
	}

	go mq.Emit(ctx, "booking-deleted", models.Index{EntityType: "booking", EntityId: id.Hex(), Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Booking deleted successfully"})
}
