package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/services"
)

// GetLeaderboard returns the community rankings. Sort key and limit come from
// query parameters (?sort_by=eco_points&limit=50); the result is a fresh
// snapshot on every call, never cached, so two viewers may legitimately see
// different ranks while stats are moving.
func GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	sortKey := r.URL.Query().Get("sort_by")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	entries, err := services.ProjectLeaderboard(ctx, sortKey, limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSortKey) {
			writeError(w, http.StatusBadRequest, "Invalid sort key")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load leaderboard")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: entries})
}
