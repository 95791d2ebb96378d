package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Order is a shop purchase in the "orders" collection. Payment capture itself
// happens on the Razorpay side; we only track the order reference and status.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	UserID          string      `bson:"user_id" json:"user_id"`
	Items           []OrderItem `bson:"items" json:"items"`
	TotalAmount     float64     `bson:"total_amount" json:"total_amount"` // in rupees
	Status          string      `bson:"status" json:"status"`
	PaymentStatus   string      `bson:"payment_status" json:"payment_status"`
	ShippingAddress *Address    `bson:"shipping_address,omitempty" json:"shipping_address,omitempty"`

	RazorpayOrderID   string `bson:"razorpay_order_id,omitempty" json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string `bson:"razorpay_payment_id,omitempty" json:"razorpay_payment_id,omitempty"`

	EcoPointsEarned int `bson:"eco_points_earned" json:"eco_points_earned"`
}

type OrderItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	ImageURL  string  `bson:"image_url,omitempty" json:"image_url,omitempty"`
}
