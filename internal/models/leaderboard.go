package models

// LeaderboardEntry is a read-only projection of a user's identity fields plus
// cumulative stats. It is never persisted; rank is assigned at query time.
type LeaderboardEntry struct {
	UserID        string  `json:"user_id"`
	DisplayName   string  `json:"display_name"`
	Email         string  `json:"email"`
	PhotoURL      string  `json:"photo_url,omitempty"`
	EcoPoints     int64   `json:"eco_points"`
	WasteRecycled float64 `json:"waste_recycled"`
	MealsRescued  float64 `json:"meals_rescued"`
	Rank          int     `json:"rank"`
}
