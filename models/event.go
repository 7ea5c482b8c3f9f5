package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Restaurant     primitive.ObjectID `json:"restaurant" bson:"restaurant"`
	NameOfEvent    string             `json:"name_of_event" bson:"name_of_event"`
	Description    string             `json:"description_of_event" bson:"description_of_event"`
	EventDate      time.Time          `json:"event_date" bson:"event_date"`
	EventStartTime string             `json:"event_start_time" bson:"event_start_time"`
	EventEndTime   string             `json:"event_end_time" bson:"event_end_time"`
	TicketFee      float64            `json:"ticket_fee" bson:"ticket_fee"`
	ImageShowcase  string             `json:"image_showcase,omitempty" bson:"image_showcase,omitempty"`
	Tags           []string           `json:"tags" bson:"tags"`
	TotalTickets   int                `json:"total_no_of_tickets" bson:"total_no_of_tickets"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
}

// EventWithRestaurant is the populated shape returned by read endpoints.
type EventWithRestaurant struct {
	Event          `bson:",inline"`
	RestaurantInfo *RestaurantWithOwner `json:"restaurant_info,omitempty" bson:"restaurant_info,omitempty"`
}
