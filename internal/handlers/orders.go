package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/config"
	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/database"
	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/models"
	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/services"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var razorpayService *services.RazorpayService

// InitRazorpayService wires the payment gateway client from config.
func InitRazorpayService(cfg *config.Config) error {
	service, err := services.NewRazorpayService(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	if err != nil {
		return err
	}
	razorpayService = service
	return nil
}

// CreateOrderBody is the checkout payload.
type CreateOrderBody struct {
	Items           []models.OrderItem `json:"items"`
	ShippingAddress *models.Address    `json:"shipping_address,omitempty"`
}

// CreateOrderData is returned to the client so it can open Razorpay checkout.
type CreateOrderData struct {
	Order           models.Order `json:"order"`
	RazorpayOrderID string       `json:"razorpay_order_id"`
	AmountPaise     int64        `json:"amount_paise"`
	Currency        string       `json:"currency"`
}

// CreateOrder persists a pending order and brokers a Razorpay order for it.
// The order document exists before any gateway call so a failed payment
// leaves an auditable pending order rather than nothing.
func CreateOrder(w http.ResponseWriter, r *http.Request) {
	if razorpayService == nil {
		writeError(w, http.StatusServiceUnavailable, "Payments are not configured")
		return
	}

	uid := userUID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	var req CreateOrderBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "Order must contain at least one item")
		return
	}

	var total float64
	for _, item := range req.Items {
		if item.Quantity <= 0 || item.Price < 0 {
			writeError(w, http.StatusBadRequest, "Invalid item quantity or price")
			return
		}
		total += item.Price * float64(item.Quantity)
	}
	if total <= 0 {
		writeError(w, http.StatusBadRequest, "Order total must be positive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	profile, err := services.GetProfile(ctx, uid)
	if err != nil {
		writeError(w, http.StatusNotFound, "User profile not found")
		return
	}

	now := time.Now().UTC()
	order := models.Order{
		ID:              primitive.NewObjectID(),
		CreatedAt:       now,
		UpdatedAt:       now,
		UserID:          uid,
		Items:           req.Items,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		ShippingAddress: req.ShippingAddress,
	}

	if _, err := database.DB.Collection("orders").InsertOne(ctx, order); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	receipt := fmt.Sprintf("order_%s_%d", order.ID.Hex(), now.UnixMilli())
	rzpOrderID, err := razorpayService.CreateOrder(total, receipt, uid, profile.Email)
	if err != nil {
		writeError(w, http.StatusBadGateway, "Failed to create payment order")
		return
	}

	_, _ = database.DB.Collection("orders").UpdateOne(ctx,
		bson.M{"_id": order.ID},
		bson.M{"$set": bson.M{"razorpay_order_id": rzpOrderID, "updated_at": time.Now().UTC()}},
	)
	order.RazorpayOrderID = rzpOrderID

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order created",
		Data: CreateOrderData{
			Order:           order,
			RazorpayOrderID: rzpOrderID,
			AmountPaise:     int64(total * 100),
			Currency:        "INR",
		},
	})
}

// VerifyPaymentBody carries the fields Razorpay checkout hands back.
type VerifyPaymentBody struct {
	OrderID           string `json:"order_id"` // our order document id
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// VerifyPayment checks the checkout signature and marks the order paid.
func VerifyPayment(w http.ResponseWriter, r *http.Request) {
	if razorpayService == nil {
		writeError(w, http.StatusServiceUnavailable, "Payments are not configured")
		return
	}

	uid := userUID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	var req VerifyPaymentBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	objID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	if !razorpayService.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		writeError(w, http.StatusBadRequest, "Payment signature verification failed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := database.DB.Collection("orders").UpdateOne(ctx,
		bson.M{"_id": objID, "user_id": uid, "razorpay_order_id": req.RazorpayOrderID},
		bson.M{"$set": bson.M{
			"payment_status":      models.PaymentStatusCompleted,
			"status":              models.OrderStatusProcessing,
			"razorpay_payment_id": req.RazorpayPaymentID,
			"updated_at":          time.Now().UTC(),
		}},
	)
	if err != nil || res.MatchedCount == 0 {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	services.NotifyAsync(uid, "order", "Payment received", "Your order is being processed.", req.OrderID)

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Payment verified"})
}

// GetOrders lists the user's orders, newest first.
func GetOrders(w http.ResponseWriter, r *http.Request) {
	uid := userUID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	limit, skip := parseListParams(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"created_at": -1})
	findOptions.SetLimit(limit)
	findOptions.SetSkip(skip)

	cursor, err := database.DB.Collection("orders").Find(ctx, bson.M{"user_id": uid}, findOptions)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: orders})
}
