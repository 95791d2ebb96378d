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

// CreateWasteRequestBody is the submission payload for a recycling pickup.
type CreateWasteRequestBody struct {
	WasteType           string          `json:"waste_type"`
	Weight              float64         `json:"weight"`
	Description         string          `json:"description,omitempty"`
	ImageURLs           []string        `json:"image_urls,omitempty"`
	Address             *models.Address `json:"address,omitempty"`
	ScheduledPickupDate *time.Time      `json:"scheduled_pickup_date,omitempty"`
}

// CreateWasteRequest handles a new recycling pickup submission. The EcoPoints
// award is computed once here, stored on the request document as a snapshot,
// and then applied to the user's cumulative stats — strictly in that order,
// so stats are only ever incremented for requests that durably exist.
func CreateWasteRequest(w http.ResponseWriter, r *http.Request) {
	uid := userUID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	var req CreateWasteRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	award, err := points.WasteAward(req.WasteType, req.Weight)
	if err != nil {
		switch {
		case errors.Is(err, points.ErrInvalidQuantity):
			writeError(w, http.StatusBadRequest, "Weight must be greater than zero")
		case errors.Is(err, points.ErrUnknownCategory):
			writeError(w, http.StatusBadRequest, "Unknown waste category")
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	request := models.WasteRequest{
		ID:                  primitive.NewObjectID(),
		CreatedAt:           now,
		UpdatedAt:           now,
		UserID:              uid,
		WasteType:           req.WasteType,
		Weight:              req.Weight,
		Description:         req.Description,
		ImageURLs:           req.ImageURLs,
		Address:             req.Address,
		Status:              models.StatusPending,
		ScheduledPickupDate: req.ScheduledPickupDate,
		EcoPointsAwarded:    award,
	}

	if _, err := database.DB.Collection("waste_requests").InsertOne(ctx, request); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create waste request")
		return
	}

	// Create-then-increment: only bump stats after the record is durable.
	// A failure here leaves the record without its stat update; log the id
	// so it can be reconciled.
	err = services.DefaultStatsService().ApplyAward(ctx, uid, services.Award{
		EcoPoints: award,
		WasteKg:   req.Weight,
	})
	if err != nil {
		log.Printf("waste request %s created but stats update failed for user %s: %v", request.ID.Hex(), uid, err)
		writeError(w, http.StatusInternalServerError, "Request saved but points could not be credited")
		return
	}

	services.NotifyAsync(uid, "waste",
		"Recycling pickup scheduled",
		"Your recycling request was received. You earned "+strconv.Itoa(award)+" EcoPoints!",
		request.ID.Hex())

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Waste request created successfully",
		Data:    request,
	})
}

// GetWasteRequests lists the user's waste requests, newest first.
func GetWasteRequests(w http.ResponseWriter, r *http.Request) {
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

	cursor, err := database.DB.Collection("waste_requests").Find(ctx, bson.M{"user_id": uid}, findOptions)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load waste requests")
		return
	}
	defer cursor.Close(ctx)

	requests := []models.WasteRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load waste requests")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: requests})
}

// UpdateStatusBody is the payload for a status transition.
type UpdateStatusBody struct {
	Status string `json:"status"`
}

// UpdateWasteRequestStatus moves a waste request through its lifecycle.
// Completed and cancelled are terminal; cancellation never claws back the
// awarded points.
func UpdateWasteRequestStatus(w http.ResponseWriter, r *http.Request) {
	updateRequestStatus(w, r, "waste_requests")
}

// updateRequestStatus implements the shared transition rules for waste and
// food request documents.
func updateRequestStatus(w http.ResponseWriter, r *http.Request, collection string) {
	uid := userUID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	id := r.URL.Query().Get("id")
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request id")
		return
	}

	var body UpdateStatusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	col := database.DB.Collection(collection)

	var current struct {
		Status string `bson:"status"`
	}
	if err := col.FindOne(ctx, bson.M{"_id": objID, "user_id": uid}).Decode(&current); err != nil {
		writeError(w, http.StatusNotFound, "Request not found")
		return
	}

	if !models.CanTransitionTo(current.Status, body.Status) {
		writeError(w, http.StatusConflict, "Cannot change status from "+current.Status+" to "+body.Status)
		return
	}

	now := time.Now().UTC()
	update := bson.M{"status": body.Status, "updated_at": now}
	if body.Status == models.StatusCompleted {
		update["completed_date"] = now
	}

	// Filter on the old status too, so two racing transitions can't both win.
	res, err := col.UpdateOne(ctx,
		bson.M{"_id": objID, "user_id": uid, "status": current.Status},
		bson.M{"$set": update},
	)
	if err != nil || res.MatchedCount == 0 {
		writeError(w, http.StatusConflict, "Status was changed concurrently, please retry")
		return
	}

	kind := "waste"
	if collection == "food_requests" {
		kind = "food"
	}
	services.NotifyAsync(uid, kind, "Pickup "+body.Status, "Your request is now "+body.Status+".", id)

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Status updated"})
}

// parseListParams reads limit/skip pagination query params with the same
// defaults across list endpoints.
func parseListParams(r *http.Request) (limit, skip int64) {
	limit = 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			limit = int64(parsed)
		}
	}
	skip = 0
	if v := r.URL.Query().Get("skip"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			skip = int64(parsed)
		}
	}
	return limit, skip
}
