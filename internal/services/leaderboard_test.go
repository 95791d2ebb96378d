package services

import (
	"testing"

	"github.com/KartikeyaGupta05/ecomart-sustainability-app/internal/models"
)

func TestNormalizeSortKey(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "eco_points"},
		{in: "eco_points", want: "eco_points"},
		{in: "waste_recycled", want: "waste_recycled"},
		{in: "meals_rescued", want: "meals_rescued"},
		{in: "email", wantErr: true},
		{in: "password", wantErr: true},
	}

	for _, tt := range tests {
		got, err := NormalizeSortKey(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("NormalizeSortKey(%q) accepted, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("NormalizeSortKey(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("NormalizeSortKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClampLeaderboardLimit(t *testing.T) {
	if got := ClampLeaderboardLimit(0); got != DefaultLeaderboardLimit {
		t.Fatalf("ClampLeaderboardLimit(0) = %d, want %d", got, DefaultLeaderboardLimit)
	}
	if got := ClampLeaderboardLimit(-5); got != DefaultLeaderboardLimit {
		t.Fatalf("ClampLeaderboardLimit(-5) = %d, want %d", got, DefaultLeaderboardLimit)
	}
	if got := ClampLeaderboardLimit(10); got != 10 {
		t.Fatalf("ClampLeaderboardLimit(10) = %d, want 10", got)
	}
	if got := ClampLeaderboardLimit(5000); got != MaxLeaderboardLimit {
		t.Fatalf("ClampLeaderboardLimit(5000) = %d, want %d", got, MaxLeaderboardLimit)
	}
}

func TestRankUsersAssignsDenseRanks(t *testing.T) {
	users := []models.User{
		{UID: "a", DisplayName: "Asha", EcoPoints: 300},
		{UID: "b", DisplayName: "Bharat", EcoPoints: 150},
		{UID: "c", DisplayName: "Chitra", EcoPoints: 150}, // tie still gets its own rank
		{UID: "d", DisplayName: "Dev", EcoPoints: 0},
	}

	entries := RankUsers(users)
	if len(entries) != len(users) {
		t.Fatalf("got %d entries, want %d", len(entries), len(users))
	}
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Fatalf("entry %d has rank %d, want %d", i, e.Rank, i+1)
		}
		if e.UserID != users[i].UID {
			t.Fatalf("entry %d is %q, want %q (input order must be preserved)", i, e.UserID, users[i].UID)
		}
	}
}

func TestRankUsersEmpty(t *testing.T) {
	entries := RankUsers(nil)
	if len(entries) != 0 {
		t.Fatalf("got %d entries for empty input", len(entries))
	}
}
