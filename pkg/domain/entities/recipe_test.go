package entities

import (
	"encoding/json"
	"math"
	"testing"
)

func TestRecipe_Validation(t *testing.T) {
	lines := []IngredientLine{{IngredientID: "FLOUR", Quantity: 100, IsBaseIngredient: true}}

	recipe, err := NewRecipe("BAGUETTE", "Baguette", 20, Percentage, lines)
	if err != nil {
		t.Fatalf("Expected valid recipe creation to succeed: %v", err)
	}
	recipe.WithBaseMass(1000).WithUnitWeight(250)
	if *recipe.BaseMassGrams != 1000 || *recipe.UnitWeightGrams != 250 {
		t.Errorf("Expected base mass 1000 and unit weight 250, got %v and %v", *recipe.BaseMassGrams, *recipe.UnitWeightGrams)
	}

	testCases := []struct {
		name        string
		id          RecipeID
		yield       float64
		lines       []IngredientLine
		expectError string
	}{
		{"empty id", "", 1, lines, "recipe id cannot be empty"},
		{"zero yield", "R", 0, lines, "yield units must be positive, got 0"},
		{"negative yield", "R", -4, lines, "yield units must be positive, got -4"},
		{"NaN yield", "R", math.NaN(), lines, "yield units must be positive, got NaN"},
		{"infinite yield", "R", math.Inf(1), lines, "yield units must be positive, got +Inf"},
		{"NaN quantity", "R", 1, []IngredientLine{{IngredientID: "A", Quantity: math.NaN()}}, "line 1: quantity must be finite, got NaN"},
		{"infinite quantity", "R", 1, []IngredientLine{{IngredientID: "A", Quantity: math.Inf(1)}}, "line 1: quantity must be finite, got +Inf"},
		{"empty ingredient", "R", 1, []IngredientLine{{Quantity: 1}}, "line 1: ingredient id cannot be empty"},
		{"negative quantity", "R", 1, []IngredientLine{{IngredientID: "A", Quantity: -1}}, "line 1: quantity cannot be negative, got -1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRecipe(tc.id, "x", tc.yield, Absolute, tc.lines)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestRecipe_PercentTotals(t *testing.T) {
	recipe := &Recipe{
		Lines: []IngredientLine{
			{IngredientID: "FLOUR_T65", Quantity: 70, IsBaseIngredient: true},
			{IngredientID: "FLOUR_RYE", Quantity: 30, IsBaseIngredient: true},
			{IngredientID: "SALT", Quantity: 2},
		},
	}
	if got := recipe.BaseTotalPercent(); got != 100 {
		t.Errorf("Expected base total 100, got %v", got)
	}
	if got := recipe.TotalQuantity(); got != 102 {
		t.Errorf("Expected total 102, got %v", got)
	}
}

func TestCalculationSystem_JSON(t *testing.T) {
	var recipe Recipe
	if err := json.Unmarshal([]byte(`{"id":"R","calculation_system":"percentage"}`), &recipe); err != nil {
		t.Fatalf("Failed to decode recipe: %v", err)
	}
	if recipe.CalculationSystem != Percentage {
		t.Errorf("Expected percentage, got %s", recipe.CalculationSystem)
	}

	if err := json.Unmarshal([]byte(`{"calculation_system":"volume"}`), &recipe); err == nil {
		t.Error("Expected unknown calculation system to fail")
	}
}
