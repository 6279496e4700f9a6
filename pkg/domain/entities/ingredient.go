package entities

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// IngredientID identifies an ingredient in the ingredient registry
type IngredientID string

// Unit is the unit an ingredient is stocked in
type Unit string

const (
	Kilogram   Unit = "kg"
	Gram       Unit = "g"
	Liter      Unit = "l"
	Milliliter Unit = "ml"
	Piece      Unit = "unit"
	Package    Unit = "package"
	Box        Unit = "box"
)

// ParseUnit parses a stock unit, case-insensitively
func ParseUnit(s string) (Unit, error) {
	switch u := Unit(strings.ToLower(strings.TrimSpace(s))); u {
	case Kilogram, Gram, Liter, Milliliter, Piece, Package, Box:
		return u, nil
	default:
		return "", fmt.Errorf("invalid unit: %s (expected kg, g, l, ml, unit, package or box)", s)
	}
}

// Ingredient represents a stocked raw material
type Ingredient struct {
	ID           IngredientID    `json:"id"`
	Name         string          `json:"name"`
	Unit         Unit            `json:"unit"`
	CurrentStock float64         `json:"current_stock"`
	MinimumStock float64         `json:"minimum_stock"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

// NewIngredient creates a validated Ingredient
func NewIngredient(id IngredientID, name string, unit Unit, currentStock, minimumStock float64, unitCost decimal.Decimal) (*Ingredient, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("ingredient id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("ingredient name cannot be empty")
	}
	if _, err := ParseUnit(string(unit)); err != nil {
		return nil, err
	}
	if !isFinite(currentStock) {
		return nil, fmt.Errorf("current stock must be finite, got %g", currentStock)
	}
	if !isFinite(minimumStock) {
		return nil, fmt.Errorf("minimum stock must be finite, got %g", minimumStock)
	}
	if currentStock < 0 {
		return nil, fmt.Errorf("current stock cannot be negative, got %g", currentStock)
	}
	if minimumStock < 0 {
		return nil, fmt.Errorf("minimum stock cannot be negative, got %g", minimumStock)
	}
	if unitCost.IsNegative() {
		return nil, fmt.Errorf("unit cost cannot be negative, got %s", unitCost)
	}

	return &Ingredient{
		ID:           id,
		Name:         name,
		Unit:         unit,
		CurrentStock: currentStock,
		MinimumStock: minimumStock,
		UnitCost:     unitCost,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
