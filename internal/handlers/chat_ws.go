package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/services"
	"github.com/gorilla/websocket"
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// ChatClientMessage represents messages coming from the frontend over WebSocket.
type ChatClientMessage struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text,omitempty"`
}

// ChatWebSocket handles real-time community chat over WebSocket. Each
// connection is bound to a single room via the `room_id` query parameter;
// rooms are public, so there is no membership check. Identity comes from the
// external provider the same way the REST endpoints take it.
func ChatWebSocket(w http.ResponseWriter, r *http.Request) {
	uid := userUID(r)
	if uid == "" {
		// Browser WebSocket clients cannot set headers; fall back to query.
		uid = strings.TrimSpace(r.URL.Query().Get("user_id"))
		if uid == "" {
			writeError(w, http.StatusUnauthorized, "Missing user identity")
			return
		}
	}

	roomID := r.URL.Query().Get("room_id")
	if roomID == "" {
		writeError(w, http.StatusBadRequest, "room_id is required")
		return
	}
	username := r.URL.Query().Get("username")

	conn, err := chatUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Make sure the shared Redis listener for this instance is running.
	services.StartRedisChatSubscriber(context.Background())

	rc, unregister := services.RegisterRoomConnection(uid, roomID, conn)
	defer unregister()

	for {
		var msg ChatClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "ping":
			// Reply through rc so the write is serialized against fan-out.
			_ = rc.Send(services.ChatEvent{Type: "pong"})
		case "message":
			text := strings.TrimSpace(msg.Text)
			if text == "" || len(text) > 2000 {
				continue
			}

			event := services.ChatEvent{
				Type:      "message",
				RoomID:    roomID,
				SenderUID: uid,
				Username:  username,
				Message:   text,
				Timestamp: time.Now().UTC(),
			}

			// Publish to Redis for cross-instance fan-out; persistence is
			// fire-and-forget.
			if err := services.PublishChatEvent(ctx, event); err != nil {
				// Redis down: still deliver locally so the room keeps working.
				services.FanOutChatEvent(event)
			}

			services.SaveChatMessageAsync(services.ChatMessage{
				RoomID:    roomID,
				SenderUID: uid,
				Username:  username,
				Message:   text,
				Timestamp: event.Timestamp,
			})
		}
	}
}
