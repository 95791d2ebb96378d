package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is an in-app notification in the "notifications" collection.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	UserID    string `bson:"user_id" json:"user_id"`
	Title     string `bson:"title" json:"title"`
	Body      string `bson:"body" json:"body"`
	Read      bool   `bson:"read" json:"read"`
	Type      string `bson:"type" json:"type"` // "order", "waste", "food", "system"
	RelatedID string `bson:"related_id,omitempty" json:"related_id,omitempty"`
}
