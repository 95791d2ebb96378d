package services

import (
	"context"
	"time"

	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/database"
	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotifyAsync inserts a notification without blocking the caller. Losing a
// notification on a write failure is acceptable; they are advisory only.
func NotifyAsync(userUID, notifType, title, body, relatedID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		n := models.Notification{
			ID:        primitive.NewObjectID(),
			CreatedAt: time.Now().UTC(),
			UserID:    userUID,
			Title:     title,
			Body:      body,
			Type:      notifType,
			RelatedID: relatedID,
		}

		_, _ = database.DB.Collection("notifications").InsertOne(ctx, n)
	}()
}

// ListNotifications returns a user's notifications, newest first.
func ListNotifications(ctx context.Context, userUID string, limit int64) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"created_at": -1})
	findOptions.SetLimit(limit)

	cursor, err := database.DB.Collection("notifications").Find(ctx, bson.M{"user_id": userUID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead flags a single notification as read.
func MarkNotificationRead(ctx context.Context, userUID, notificationID string) error {
	objID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return err
	}

	_, err = database.DB.Collection("notifications").UpdateOne(ctx,
		bson.M{"_id": objID, "user_id": userUID},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}
