package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Waste request lifecycle. "completed" and "cancelled" are terminal.
const (
	StatusPending   = "pending"
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// WasteRequest is a scheduled recycling pickup in the "waste_requests"
// collection. EcoPointsAwarded is a snapshot computed at submission time and
// never recomputed afterwards.
type WasteRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	UserID      string   `bson:"user_id" json:"user_id"`
	WasteType   string   `bson:"waste_type" json:"waste_type"` // plastic|paper|glass|metal|electronic|organic|other
	Weight      float64  `bson:"weight" json:"weight"`         // in kg
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	ImageURLs   []string `bson:"image_urls,omitempty" json:"image_urls,omitempty"`
	Address     *Address `bson:"address,omitempty" json:"address,omitempty"`

	Status              string     `bson:"status" json:"status"`
	ScheduledPickupDate *time.Time `bson:"scheduled_pickup_date,omitempty" json:"scheduled_pickup_date,omitempty"`
	CompletedDate       *time.Time `bson:"completed_date,omitempty" json:"completed_date,omitempty"`

	EcoPointsAwarded int `bson:"eco_points_awarded" json:"eco_points_awarded"`
}

// CanTransitionTo reports whether a status change is legal:
// pending → scheduled → completed, with cancellation allowed from any
// non-terminal state.
func CanTransitionTo(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusScheduled || to == StatusCancelled
	case StatusScheduled:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}
