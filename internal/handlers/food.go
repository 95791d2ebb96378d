package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/database"
	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/models"
	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/points"
	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/services"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateFoodRequestBody is the submission payload for a food donation pickup.
type CreateFoodRequestBody struct {
	FoodType            string          `json:"food_type"`
	Quantity            float64         `json:"quantity"`
	Description         string          `json:"description,omitempty"`
	ImageURLs           []string        `json:"image_urls,omitempty"`
	ExpiryDate          time.Time       `json:"expiry_date"`
	Address             *models.Address `json:"address,omitempty"`
	ScheduledPickupDate *time.Time      `json:"scheduled_pickup_date,omitempty"`
}

// CreateFoodRequest handles a new food donation submission. Same ordering as
// waste: persist the record first, then apply the award.
func CreateFoodRequest(w http.ResponseWriter, r *http.Request) {
	uid := userUID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	var req CreateFoodRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FoodType == "" {
		writeError(w, http.StatusBadRequest, "Food type is required")
		return
	}
	if req.ExpiryDate.IsZero() {
		writeError(w, http.StatusBadRequest, "Expiry date is required")
		return
	}

	award, err := points.FoodAward(req.Quantity)
	if err != nil {
		if errors.Is(err, points.ErrInvalidQuantity) {
			writeError(w, http.StatusBadRequest, "Quantity must be greater than zero")
		} else {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	request := models.FoodRequest{
		ID:                  primitive.NewObjectID(),
		CreatedAt:           now,
		UpdatedAt:           now,
		UserID:              uid,
		FoodType:            req.FoodType,
		Quantity:            req.Quantity,
		Description:         req.Description,
		ImageURLs:           req.ImageURLs,
		ExpiryDate:          req.ExpiryDate,
		Address:             req.Address,
		Status:              models.StatusPending,
		ScheduledPickupDate: req.ScheduledPickupDate,
		EcoPointsAwarded:    award,
	}

	if _, err := database.DB.Collection("food_requests").InsertOne(ctx, request); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create food request")
		return
	}

	err = services.DefaultStatsService().ApplyAward(ctx, uid, services.Award{
		EcoPoints:  award,
		MealsUnits: req.Quantity,
	})
	if err != nil {
		log.Printf("food request %s created but stats update failed for user %s: %v", request.ID.Hex(), uid, err)
		writeError(w, http.StatusInternalServerError, "Request saved but points could not be credited")
		return
	}

	services.NotifyAsync(uid, "food",
		"Food donation scheduled",
		"Your donation was received. You earned "+strconv.Itoa(award)+" EcoPoints!",
		request.ID.Hex())

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Food request created successfully",
		Data:    request,
	})
}

// GetFoodRequests lists the user's food donation requests, newest first.
func GetFoodRequests(w http.ResponseWriter, r *http.Request) {
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

	cursor, err := database.DB.Collection("food_requests").Find(ctx, bson.M{"user_id": uid}, findOptions)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load food requests")
		return
	}
	defer cursor.Close(ctx)

	requests := []models.FoodRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load food requests")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: requests})
}

// UpdateFoodRequestStatus moves a food request through its lifecycle.
func UpdateFoodRequestStatus(w http.ResponseWriter, r *http.Request) {
	updateRequestStatus(w, r, "food_requests")
}
