package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/database"
	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/models"
	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/services"
	"go.mongodb.org/mongo-driver/bson"
)

// GetMeBody carries the identity fields the provider exposes to the client.
type GetMeBody struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

// GetMe returns the caller's profile, lazily creating an all-zero stats
// profile on first access.
func GetMe(w http.ResponseWriter, r *http.Request) {
	uid := userUID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	var body GetMeBody
	// Body is optional; GET callers may omit it entirely.
	_ = json.NewDecoder(r.Body).Decode(&body)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := services.EnsureProfile(ctx, uid, body.Email, body.DisplayName, body.PhotoURL); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	profile, err := services.GetProfile(ctx, uid)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: profile})
}

// UpdateProfileBody is the editable subset of the profile. Stats fields are
// deliberately absent: they only move through the award path.
type UpdateProfileBody struct {
	DisplayName string          `json:"display_name,omitempty"`
	PhotoURL    string          `json:"photo_url,omitempty"`
	PhoneNumber string          `json:"phone_number,omitempty"`
	Address     *models.Address `json:"address,omitempty"`
}

// UpdateProfile updates the caller's editable profile fields.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	uid := userUID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	var req UpdateProfileBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if req.DisplayName != "" {
		set["display_name"] = req.DisplayName
	}
	if req.PhotoURL != "" {
		set["photo_url"] = req.PhotoURL
	}
	if req.PhoneNumber != "" {
		set["phone_number"] = req.PhoneNumber
	}
	if req.Address != nil {
		set["address"] = req.Address
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := database.DB.Collection("users").UpdateOne(ctx, bson.M{"uid": uid}, bson.M{"$set": set})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if res.MatchedCount == 0 {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Profile updated"})
}
