package services

import (
	"context"
	"time"

	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChatMessage is a community chat message in the "chat_messages" collection.
type ChatMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoomID    string             `bson:"room_id" json:"room_id"`
	SenderUID string             `bson:"sender_uid" json:"sender_uid"`
	Username  string             `bson:"username,omitempty" json:"username,omitempty"`
	PhotoURL  string             `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	Message   string             `bson:"message" json:"message"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// EnsureChatIndexes configures indexes for the chat_messages collection.
// Called on startup from main after Mongo has connected.
func EnsureChatIndexes(ctx context.Context) error {
	col := database.DB.Collection("chat_messages")

	// Compound index on (room_id, timestamp) to support efficient pagination.
	models := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "room_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("idx_room_timestamp"),
		},
	}

	for _, m := range models {
		if _, err := col.Indexes().CreateOne(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// SaveChatMessageAsync persists a message to MongoDB asynchronously.
// The caller should NOT block on this; fire-and-forget is acceptable.
func SaveChatMessageAsync(msg ChatMessage) {
	go func(m ChatMessage) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if m.Timestamp.IsZero() {
			m.Timestamp = time.Now().UTC()
		}

		col := database.DB.Collection("chat_messages")
		_, _ = col.InsertOne(ctx, m)
	}(msg)
}

// LoadChatMessages returns paginated chat history for a room.
// Pagination is based on timestamp + limit (newest-first scrolling).
func LoadChatMessages(ctx context.Context, roomID string, before *time.Time, limit int64) ([]ChatMessage, bool, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	col := database.DB.Collection("chat_messages")

	filter := bson.M{
		"room_id": roomID,
	}
	if before != nil {
		filter["timestamp"] = bson.M{"$lt": before.UTC()}
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "timestamp", Value: -1}})
	findOptions.SetLimit(limit + 1) // fetch one extra to detect more pages

	cursor, err := col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, false, err
	}
	defer cursor.Close(ctx)

	var messages []ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, false, err
	}

	hasMore := false
	if int64(len(messages)) > limit {
		hasMore = true
		messages = messages[:limit]
	}

	return messages, hasMore, nil
}
