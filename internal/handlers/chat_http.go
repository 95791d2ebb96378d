package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/services"
)

// ChatHistoryData is the payload for a page of room history.
type ChatHistoryData struct {
	Messages []services.ChatMessage `json:"messages"`
	HasMore  bool                   `json:"has_more"`
}

// LoadChatHistory returns paginated history for a community room.
// Query params: room_id (required), before (RFC3339, optional), limit.
func LoadChatHistory(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room_id")
	if roomID == "" {
		writeError(w, http.StatusBadRequest, "room_id is required")
		return
	}

	var before *time.Time
	if v := r.URL.Query().Get("before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid before timestamp")
			return
		}
		before = &t
	}

	var limit int64 = 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			limit = parsed
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	messages, hasMore, err := services.LoadChatMessages(ctx, roomID, before, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load chat history")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    ChatHistoryData{Messages: messages, HasMore: hasMore},
	})
}
