package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a shop item in the "products" collection.
type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	Name                   string   `bson:"name" json:"name"`
	Description            string   `bson:"description,omitempty" json:"description,omitempty"`
	Price                  float64  `bson:"price" json:"price"`
	Category               string   `bson:"category" json:"category"`
	ImageURL               string   `bson:"image_url,omitempty" json:"image_url,omitempty"`
	EcoRating              int      `bson:"eco_rating" json:"eco_rating"` // 1-5 stars
	StockQuantity          int      `bson:"stock_quantity" json:"stock_quantity"`
	Recyclable             bool     `bson:"recyclable" json:"recyclable"`
	SustainabilityFeatures []string `bson:"sustainability_features,omitempty" json:"sustainability_features,omitempty"`
}
