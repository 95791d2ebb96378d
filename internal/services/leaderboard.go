package services

import (
	"context"
	"errors"

	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/database"
	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultLeaderboardLimit is how many entries a view fetches by default.
	DefaultLeaderboardLimit = 50
	// MaxLeaderboardLimit caps a single fetch.
	MaxLeaderboardLimit = 100
)

// ErrInvalidSortKey is returned when a leaderboard request names a field we
// don't rank by.
var ErrInvalidSortKey = errors.New("invalid leaderboard sort key")

var leaderboardSortKeys = map[string]bool{
	"eco_points":     true,
	"waste_recycled": true,
	"meals_rescued":  true,
}

// NormalizeSortKey validates a requested sort key, defaulting empty input to
// eco_points.
func NormalizeSortKey(key string) (string, error) {
	if key == "" {
		return "eco_points", nil
	}
	if !leaderboardSortKeys[key] {
		return "", ErrInvalidSortKey
	}
	return key, nil
}

// ClampLeaderboardLimit bounds a requested page size.
func ClampLeaderboardLimit(limit int) int {
	if limit <= 0 {
		return DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		return MaxLeaderboardLimit
	}
	return limit
}

// ProjectLeaderboard returns up to limit users ranked descending by sortKey.
// The result is a snapshot: rank is 1 + position within this query, assigned
// densely even on ties, and nothing is persisted. The _id tiebreak keeps the
// ordering stable when stat values collide.
func ProjectLeaderboard(ctx context.Context, sortKey string, limit int) ([]models.LeaderboardEntry, error) {
	sortKey, err := NormalizeSortKey(sortKey)
	if err != nil {
		return nil, err
	}
	limit = ClampLeaderboardLimit(limit)

	findOptions := options.Find()
	findOptions.SetSort(bson.D{
		{Key: sortKey, Value: -1},
		{Key: "_id", Value: 1},
	})
	findOptions.SetLimit(int64(limit))

	cursor, err := database.DB.Collection("users").Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	return RankUsers(users), nil
}

// RankUsers converts user snapshots (already sorted) into leaderboard entries
// with dense 1-based ranks.
func RankUsers(users []models.User) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, models.LeaderboardEntry{
			UserID:        u.UID,
			DisplayName:   u.DisplayName,
			Email:         u.Email,
			PhotoURL:      u.PhotoURL,
			EcoPoints:     u.EcoPoints,
			WasteRecycled: u.WasteRecycled,
			MealsRescued:  u.MealsRescued,
			Rank:          i + 1,
		})
	}
	return entries
}
