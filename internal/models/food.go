package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FoodRequest is a food donation pickup in the "food_requests" collection.
// Shares the status lifecycle and award-snapshot rules with WasteRequest.
type FoodRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	UserID      string    `bson:"user_id" json:"user_id"`
	FoodType    string    `bson:"food_type" json:"food_type"`
	Quantity    float64   `bson:"quantity" json:"quantity"` // kg or units
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	ImageURLs   []string  `bson:"image_urls,omitempty" json:"image_urls,omitempty"`
	ExpiryDate  time.Time `bson:"expiry_date" json:"expiry_date"`
	Address     *Address  `bson:"address,omitempty" json:"address,omitempty"`

	Status              string     `bson:"status" json:"status"`
	ScheduledPickupDate *time.Time `bson:"scheduled_pickup_date,omitempty" json:"scheduled_pickup_date,omitempty"`
	CompletedDate       *time.Time `bson:"completed_date,omitempty" json:"completed_date,omitempty"`

	EcoPointsAwarded int `bson:"eco_points_awarded" json:"eco_points_awarded"`
}
