package points

import (
	"errors"
	"math"
)

// Errors returned for malformed award inputs. Handlers surface these as 400s
// before anything touches the database.
var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrUnknownCategory = errors.New("unknown waste category")
)

// basePoints is the per-kg EcoPoints rate for each waste category.
var basePoints = map[string]int{
	"plastic":    15,
	"paper":      10,
	"glass":      12,
	"metal":      20,
	"electronic": 25,
	"organic":    8,
	"other":      5,
}

// foodPointsPerUnit is the flat EcoPoints rate for rescued food.
const foodPointsPerUnit = 5

// WasteAward computes the EcoPoints for recycling weightKg of the given waste
// category: round(basePoints[category] * weightKg), half away from zero.
// Unknown categories are rejected rather than silently defaulted, so a typo
// in a client payload can never mint points at a made-up rate.
func WasteAward(category string, weightKg float64) (int, error) {
	if weightKg <= 0 {
		return 0, ErrInvalidQuantity
	}
	base, ok := basePoints[category]
	if !ok {
		return 0, ErrUnknownCategory
	}
	return int(math.Round(float64(base) * weightKg)), nil
}

// FoodAward computes the EcoPoints for donating the given quantity of food:
// round(5 * quantity), half away from zero.
func FoodAward(quantity float64) (int, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}
	return int(math.Round(foodPointsPerUnit * quantity)), nil
}

// BaseRate returns the per-kg rate for a waste category, for display in the
// submission form.
func BaseRate(category string) (int, bool) {
	base, ok := basePoints[category]
	return base, ok
}

// WasteCategories lists the accepted waste categories.
func WasteCategories() []string {
	return []string{"plastic", "paper", "glass", "metal", "electronic", "organic", "other"}
}
