package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCanceled  BookingStatus = "CANCELED"
	BookingCompleted BookingStatus = "COMPLETED"
)

func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCanceled, BookingCompleted:
		return true
	}
	return false
}

type Booking struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RestaurantID      primitive.ObjectID `json:"restaurant_id" bson:"restaurant_id"`
	CustomerName      string             `json:"customer_name" bson:"customer_name"`
	CustomerContact   string             `json:"customer_contact" bson:"customer_contact"`
	NumberOfGuests    int                `json:"number_of_guests" bson:"number_of_guests"`
	BookingTime       time.Time          `json:"booking_time" bson:"booking_time"`
	DurationInMinutes int                `json:"booking_duration_in_minutes" bson:"booking_duration_in_minutes"`
	BookingEndTime    time.Time          `json:"booking_end_time" bson:"booking_end_time"`
	SpecialRequests   string             `json:"special_requests,omitempty" bson:"special_requests,omitempty"`
	Status            BookingStatus      `json:"status" bson:"status"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}

// DeriveEndTime recomputes booking_end_time from the start and duration.
func (b *Booking) DeriveEndTime() {
	b.BookingEndTime = b.BookingTime.Add(time.Duration(b.DurationInMinutes) * time.Minute)
}
