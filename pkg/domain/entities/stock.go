package entities

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// DisplayQuantity is a mass rendered in the unit staff read it in
type DisplayQuantity struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// String renders the value with FormatAmount followed by the unit
func (q DisplayQuantity) String() string {
	return FormatAmount(q.Value) + " " + string(q.Unit)
}

// FormatAmount renders integral values with no decimals and everything else
// with exactly two.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	d := decimal.NewFromFloat(v)
	if d.IsInteger() {
		return d.StringFixed(0)
	}
	return d.StringFixed(2)
}

// StockLine reports whether stock covers one required ingredient
type StockLine struct {
	IngredientID     IngredientID    `json:"ingredient_id"`
	Name             string          `json:"name,omitempty"`
	RequiredGrams    float64         `json:"required_grams"`
	AvailableGrams   float64         `json:"available_grams"`
	ShortfallGrams   float64         `json:"shortfall_grams"`
	RequiredDisplay  DisplayQuantity `json:"required_display"`
	AvailableDisplay DisplayQuantity `json:"available_display"`
	Sufficient       bool            `json:"sufficient"`
	// Unknown marks a required ingredient missing from the registry
	Unknown bool `json:"unknown,omitempty"`
	// BelowMinimum marks stock that would drop under MinimumStock after use
	BelowMinimum bool `json:"below_minimum,omitempty"`
}
