package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/database"
)

// ChatEvent represents the payload broadcast over Redis and WebSocket.
type ChatEvent struct {
	Type      string    `json:"type"`
	RoomID    string    `json:"room_id,omitempty"`
	SenderUID string    `json:"sender_uid,omitempty"`
	Username  string    `json:"username,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// ChatConn is the minimal interface our WebSocket implementation must satisfy.
type ChatConn interface {
	WriteJSON(v interface{}) error
	ReadJSON(dest interface{}) error
	Close() error
}

// RoomConnection is one WebSocket connection bound to a single room. All
// writes must go through Send: gorilla/websocket allows only one concurrent
// writer per connection, so the mutex serializes fan-out goroutines and the
// read loop's own replies.
type RoomConnection struct {
	SenderUID string
	RoomID    string

	writeMu sync.Mutex
	conn    ChatConn
}

// Send writes one event to the connection, serialized against all other
// writers.
func (rc *RoomConnection) Send(v interface{}) error {
	rc.writeMu.Lock()
	defer rc.writeMu.Unlock()
	return rc.conn.WriteJSON(v)
}

// ChatHub is a registry of connections per community room on this instance.
type ChatHub struct {
	mu          sync.RWMutex
	connections map[*RoomConnection]struct{}
}

var (
	chatHub      = &ChatHub{connections: make(map[*RoomConnection]struct{})}
	redisStarted sync.Once
)

// RegisterRoomConnection adds a connection to the hub. It returns the wrapped
// connection (the only handle callers should write through) and an unregister
// func for the caller to defer.
func RegisterRoomConnection(uid, roomID string, conn ChatConn) (*RoomConnection, func()) {
	rc := &RoomConnection{SenderUID: uid, RoomID: roomID, conn: conn}

	chatHub.mu.Lock()
	chatHub.connections[rc] = struct{}{}
	chatHub.mu.Unlock()

	return rc, func() {
		chatHub.mu.Lock()
		delete(chatHub.connections, rc)
		chatHub.mu.Unlock()
	}
}

// FanOutChatEvent sends an event to all local connections in the room.
func FanOutChatEvent(event ChatEvent) {
	if event.RoomID == "" {
		return
	}

	chatHub.mu.RLock()
	defer chatHub.mu.RUnlock()

	for rc := range chatHub.connections {
		if rc.RoomID != event.RoomID {
			continue
		}

		// Best-effort send; Send serializes writes on the connection.
		go func(c *RoomConnection) {
			if err := c.Send(event); err != nil {
				log.Printf("error writing chat event to websocket: %v", err)
			}
		}(rc)
	}
}

// StartRedisChatSubscriber ensures a single shared Redis listener per instance.
func StartRedisChatSubscriber(ctx context.Context) {
	redisStarted.Do(func() {
		go runRedisSubscriber(ctx)
	})
}

func runRedisSubscriber(ctx context.Context) {
	client := database.RedisClient
	if client == nil {
		log.Println("Redis client not initialized; chat subscriber not started")
		return
	}

	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := client.PSubscribe(ctx, "chat:room:*")
			defer pubsub.Close()

			log.Println("✅ Chat Redis subscriber started (pattern: chat:room:*)")

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					log.Printf("Redis subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var event ChatEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("failed to unmarshal chat event: %v", err)
					continue
				}

				// Fan out to local connections.
				FanOutChatEvent(event)
			}
		}()
	}
}

// PublishChatEvent publishes an event to Redis; called when a message is received over WebSocket.
func PublishChatEvent(ctx context.Context, event ChatEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	channel := "chat:room:" + event.RoomID
	return database.RedisClient.Publish(ctx, channel, data).Err()
}
