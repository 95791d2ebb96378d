package services

import (
	"context"
	"errors"
	"time"

	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/database"
	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrUserNotFound is returned when an award targets a user without a profile.
// Callers are expected to have created the profile first (EnsureProfile).
var ErrUserNotFound = errors.New("user profile not found")

// Award is the stat delta earned by one accepted submission.
type Award struct {
	EcoPoints  int
	WasteKg    float64 // set for waste pickups
	MealsUnits float64 // set for food donations
}

// statsCollection is the slice of *mongo.Collection the aggregator needs.
// Narrow on purpose so tests can drive ApplyAward against an in-memory fake.
type statsCollection interface {
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// StatsService applies EcoPoints awards to a user's cumulative stats.
type StatsService struct {
	col statsCollection
}

// NewStatsService returns a StatsService over the given users collection.
func NewStatsService(col statsCollection) *StatsService {
	return &StatsService{col: col}
}

// DefaultStatsService uses the global users collection.
func DefaultStatsService() *StatsService {
	return &StatsService{col: database.DB.Collection("users")}
}

// ApplyAward increments the user's cumulative stats by the award in a single
// server-side $inc. The increment happens atomically in MongoDB, so two
// concurrent submissions for the same user both land — there is no
// read-modify-write round trip to lose an update on.
//
// Awards are deliberately not idempotent: applying the same award twice
// doubles the stats, which is why callers invoke this exactly once per
// successfully created request document.
func (s *StatsService) ApplyAward(ctx context.Context, userUID string, award Award) error {
	inc := bson.M{"eco_points": int64(award.EcoPoints)}
	if award.WasteKg > 0 {
		inc["waste_recycled"] = award.WasteKg
	}
	if award.MealsUnits > 0 {
		inc["meals_rescued"] = award.MealsUnits
	}

	now := time.Now().UTC()
	update := bson.M{
		"$inc": inc,
		"$set": bson.M{
			"updated_at":       now,
			"last_activity_at": now,
		},
	}

	res, err := s.col.UpdateOne(ctx, bson.M{"uid": userUID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// EnsureProfile lazily creates an all-zero stats profile for a user on first
// access. Existing profiles are left untouched apart from identity fields the
// provider may have refreshed.
func EnsureProfile(ctx context.Context, uid, email, displayName, photoURL string) error {
	now := time.Now().UTC()
	update := bson.M{
		"$setOnInsert": bson.M{
			"uid":            uid,
			"eco_points":     int64(0),
			"waste_recycled": float64(0),
			"meals_rescued":  float64(0),
			"role":           "user",
			"created_at":     now,
		},
		"$set": bson.M{
			"email":        email,
			"display_name": displayName,
			"photo_url":    photoURL,
			"updated_at":   now,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := database.DB.Collection("users").UpdateOne(ctx, bson.M{"uid": uid}, update, opts)
	return err
}

// GetProfile loads a user's profile document by external uid.
func GetProfile(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := database.DB.Collection("users").FindOne(ctx, bson.M{"uid": uid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
