package entities

import (
	"fmt"
	"strings"
)

// RecipeID identifies a recipe
type RecipeID string

// CalculationSystem selects how ingredient line quantities are read
type CalculationSystem int

const (
	// Absolute lines hold masses in the recipe's bookkeeping unit
	Absolute CalculationSystem = iota
	// Percentage lines hold baker's percentages relative to BaseMassGrams
	Percentage
)

// DefaultBaseMassGrams is the base mass assumed by loaders when a percentage
// recipe does not declare one.
const DefaultBaseMassGrams = 1000.0

// String method for CalculationSystem enum
func (c CalculationSystem) String() string {
	switch c {
	case Absolute:
		return "absolute"
	case Percentage:
		return "percentage"
	default:
		return "unknown"
	}
}

// ParseCalculationSystem parses "absolute" or "percentage"
func ParseCalculationSystem(s string) (CalculationSystem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "absolute":
		return Absolute, nil
	case "percentage":
		return Percentage, nil
	default:
		return Absolute, fmt.Errorf("invalid calculation system: %s (expected absolute or percentage)", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (c CalculationSystem) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *CalculationSystem) UnmarshalText(text []byte) error {
	parsed, err := ParseCalculationSystem(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// IngredientLine is one ingredient entry of a recipe
type IngredientLine struct {
	IngredientID     IngredientID `json:"ingredient_id"`
	Quantity         float64      `json:"quantity"`
	IsBaseIngredient bool         `json:"is_base"`
}

// Recipe is a production formula. Lines keep their declaration order.
type Recipe struct {
	ID                RecipeID          `json:"id"`
	Name              string            `json:"name"`
	YieldUnits        float64           `json:"yield_units"`
	CalculationSystem CalculationSystem `json:"calculation_system"`
	BaseMassGrams     *float64          `json:"base_mass_grams,omitempty"`
	UnitWeightGrams   *float64          `json:"unit_weight_grams,omitempty"`
	Lines             []IngredientLine  `json:"lines"`
}

// NewRecipe creates a validated Recipe
func NewRecipe(id RecipeID, name string, yieldUnits float64, system CalculationSystem, lines []IngredientLine) (*Recipe, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("recipe id cannot be empty")
	}
	if !isFinite(yieldUnits) || yieldUnits <= 0 {
		return nil, fmt.Errorf("yield units must be positive, got %g", yieldUnits)
	}
	for i, line := range lines {
		if string(line.IngredientID) == "" {
			return nil, fmt.Errorf("line %d: ingredient id cannot be empty", i+1)
		}
		if !isFinite(line.Quantity) {
			return nil, fmt.Errorf("line %d: quantity must be finite, got %g", i+1, line.Quantity)
		}
		if line.Quantity < 0 {
			return nil, fmt.Errorf("line %d: quantity cannot be negative, got %g", i+1, line.Quantity)
		}
	}

	return &Recipe{
		ID:                id,
		Name:              name,
		YieldUnits:        yieldUnits,
		CalculationSystem: system,
		Lines:             lines,
	}, nil
}

// WithBaseMass sets the base mass used by the percentage system
func (r *Recipe) WithBaseMass(grams float64) *Recipe {
	r.BaseMassGrams = &grams
	return r
}

// WithUnitWeight sets the declared weight of one produced unit
func (r *Recipe) WithUnitWeight(grams float64) *Recipe {
	r.UnitWeightGrams = &grams
	return r
}

// BaseTotalPercent sums the quantities of the base lines
func (r *Recipe) BaseTotalPercent() float64 {
	total := 0.0
	for _, line := range r.Lines {
		if line.IsBaseIngredient {
			total += line.Quantity
		}
	}
	return total
}

// TotalQuantity sums the quantities of all lines
func (r *Recipe) TotalQuantity() float64 {
	total := 0.0
	for _, line := range r.Lines {
		total += line.Quantity
	}
	return total
}
