package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RolePartner UserRole = "partner"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	UID         string               `json:"uid" bson:"uid"`
	PhoneNumber string               `json:"phone_number" bson:"phone_number"`
	Email       string               `json:"email" bson:"email"`
	FirstName   string               `json:"first_name" bson:"first_name"`
	LastName    string               `json:"last_name" bson:"last_name"`
	Role        UserRole             `json:"role,omitempty" bson:"role,omitempty"`
	Restaurants []primitive.ObjectID `json:"restaurants" bson:"restaurants"`

	// Auth fields, never serialized to clients.
	PasswordHash  string    `json:"-" bson:"password_hash,omitempty"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// OwnsRestaurant reports whether id is already in the user's owned list.
func (u *User) OwnsRestaurant(id primitive.ObjectID) bool {
	for _, rid := range u.Restaurants {
		if rid == id {
			return true
		}
	}
	return false
}
