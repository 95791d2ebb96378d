package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/services"
)

// GetNotifications lists the caller's notifications, newest first.
func GetNotifications(w http.ResponseWriter, r *http.Request) {
	uid := userUID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	limit, _ := parseListParams(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	notifications, err := services.ListNotifications(ctx, uid, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load notifications")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: notifications})
}

// MarkNotificationRead marks one notification as read.
func MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	uid := userUID(r)
	if uid == "" {
		writeError(w, http.StatusUnauthorized, "Missing user identity")
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "Notification id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := services.MarkNotificationRead(ctx, uid, id); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to mark notification as read")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Notification marked as read"})
}
