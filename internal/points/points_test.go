package points

import (
	"errors"
	"testing"
)

func TestWasteAward(t *testing.T) {
	tests := []struct {
		name     string
		category string
		weight   float64
		want     int
		wantErr  error
	}{
		{name: "metal 3kg", category: "metal", weight: 3.0, want: 60},
		{name: "plastic 2.5kg rounds half away from zero", category: "plastic", weight: 2.5, want: 38},
		{name: "paper 1kg", category: "paper", weight: 1.0, want: 10},
		{name: "glass 0.1kg rounds to nearest", category: "glass", weight: 0.1, want: 1},
		{name: "organic small weight rounds down to zero", category: "organic", weight: 0.05, want: 0},
		{name: "electronic fractional", category: "electronic", weight: 1.9, want: 48},
		{name: "other category", category: "other", weight: 2.0, want: 10},
		{name: "zero weight rejected", category: "metal", weight: 0, wantErr: ErrInvalidQuantity},
		{name: "negative weight rejected", category: "metal", weight: -1.5, wantErr: ErrInvalidQuantity},
		{name: "unknown category rejected", category: "styrofoam", weight: 2.0, wantErr: ErrUnknownCategory},
		{name: "empty category rejected", category: "", weight: 2.0, wantErr: ErrUnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WasteAward(tt.category, tt.weight)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("WasteAward(%q, %v) error = %v, want %v", tt.category, tt.weight, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("WasteAward(%q, %v) unexpected error: %v", tt.category, tt.weight, err)
			}
			if got != tt.want {
				t.Fatalf("WasteAward(%q, %v) = %d, want %d", tt.category, tt.weight, got, tt.want)
			}
		})
	}
}

func TestFoodAward(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		want     int
		wantErr  error
	}{
		{name: "4 units", quantity: 4, want: 20},
		{name: "fractional quantity rounds half away from zero", quantity: 2.5, want: 13},
		{name: "small quantity", quantity: 0.4, want: 2},
		{name: "zero rejected", quantity: 0, wantErr: ErrInvalidQuantity},
		{name: "negative rejected", quantity: -3, wantErr: ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FoodAward(tt.quantity)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("FoodAward(%v) error = %v, want %v", tt.quantity, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FoodAward(%v) unexpected error: %v", tt.quantity, err)
			}
			if got != tt.want {
				t.Fatalf("FoodAward(%v) = %d, want %d", tt.quantity, got, tt.want)
			}
		})
	}
}

// The policy is a pure function: re-evaluating with the same inputs must
// always give the same award.
func TestWasteAwardDeterministic(t *testing.T) {
	first, err := WasteAward("plastic", 7.25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 100; i++ {
		again, err := WasteAward("plastic", 7.25)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again != first {
			t.Fatalf("award changed between evaluations: %d vs %d", first, again)
		}
	}
}

func TestBaseRate(t *testing.T) {
	for _, category := range WasteCategories() {
		if _, ok := BaseRate(category); !ok {
			t.Fatalf("BaseRate(%q) missing for listed category", category)
		}
	}
	if _, ok := BaseRate("unknown"); ok {
		t.Fatal("BaseRate should not resolve unknown categories")
	}
}
