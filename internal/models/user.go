package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the profile document in the "users" collection. The identity fields
// come from the external identity provider; the cumulative stats are owned by
// this backend and only ever move through atomic increments.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	UID         string `bson:"uid" json:"uid"` // external identity provider id
	DisplayName string `bson:"display_name,omitempty" json:"display_name,omitempty"`
	Email       string `bson:"email" json:"email"`
	PhotoURL    string `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	PhoneNumber string `bson:"phone_number,omitempty" json:"phone_number,omitempty"`

	Address *Address `bson:"address,omitempty" json:"address,omitempty"`

	// Cumulative stats. EcoPoints mirrors the sum of ecoPointsAwarded over the
	// user's non-cancelled waste/food requests.
	EcoPoints      int64     `bson:"eco_points" json:"eco_points"`
	WasteRecycled  float64   `bson:"waste_recycled" json:"waste_recycled"` // in kg
	MealsRescued   float64   `bson:"meals_rescued" json:"meals_rescued"`
	LastActivityAt time.Time `bson:"last_activity_at,omitempty" json:"last_activity_at,omitempty"`

	Role string `bson:"role,omitempty" json:"role,omitempty"` // "user" or "admin"
}

type Address struct {
	Street     string `bson:"street,omitempty" json:"street,omitempty"`
	City       string `bson:"city,omitempty" json:"city,omitempty"`
	State      string `bson:"state,omitempty" json:"state,omitempty"`
	PostalCode string `bson:"postal_code,omitempty" json:"postal_code,omitempty"`
	Country    string `bson:"country,omitempty" json:"country,omitempty"`
}
