package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RestaurantStatus string

const (
	StatusPending     RestaurantStatus = "pending"
	StatusApproved    RestaurantStatus = "approved"
	StatusDisapproved RestaurantStatus = "disapproved"
)

type OpeningHours struct {
	Day        string `json:"day" bson:"day"`
	OpenedTime string `json:"openedtime,omitempty" bson:"openedtime,omitempty"`
	ClosedTime string `json:"closedtime,omitempty" bson:"closedtime,omitempty"`
	Closed     bool   `json:"closed,omitempty" bson:"closed,omitempty"`
}

type Restaurant struct {
	ID               primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	RestaurantName   string               `json:"restaurant_name" bson:"restaurant_name"`
	OwnerName        string               `json:"owner_name" bson:"owner_name"`
	State            string               `json:"state,omitempty" bson:"state,omitempty"`
	City             string               `json:"city,omitempty" bson:"city,omitempty"`
	Country          string               `json:"country,omitempty" bson:"country,omitempty"`
	Latitude         float64              `json:"latitude" bson:"latitude"`
	Longitude        float64              `json:"longitude" bson:"longitude"`
	SpecialDishes    []string             `json:"special_dishes" bson:"special_dishes"`
	RestaurantImages []string             `json:"restaurant_images" bson:"restaurant_images"`
	Category         string               `json:"category" bson:"category"`
	Zipcode          string               `json:"zipcode" bson:"zipcode"`
	FullAddress      string               `json:"full_address" bson:"full_address"`
	OpeningHours     []OpeningHours       `json:"opening_hours" bson:"opening_hours"`
	BookingPrice     float64              `json:"booking_price,omitempty" bson:"booking_price,omitempty"`
	BannerImage      string               `json:"banner_image,omitempty" bson:"banner_image,omitempty"`
	Owner            primitive.ObjectID   `json:"owner" bson:"owner"`
	Status           RestaurantStatus     `json:"is_verified_by_admin" bson:"is_verified_by_admin"`
	Bookings         []primitive.ObjectID `json:"bookings" bson:"bookings"`
	Events           []primitive.ObjectID `json:"events" bson:"events"`
	CreatedAt        time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at" bson:"updated_at"`
}

// RestaurantWithOwner is the populated shape returned by read endpoints.
type RestaurantWithOwner struct {
	Restaurant `bson:",inline"`
	OwnerInfo  *User `json:"owner_info,omitempty" bson:"owner_info,omitempty"`
}

// HasBooking reports whether id is already linked into the bookings list.
func (rst *Restaurant) HasBooking(id primitive.ObjectID) bool {
	for _, bid := range rst.Bookings {
		if bid == id {
			return true
		}
	}
	return false
}
