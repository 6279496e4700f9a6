package services

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

func TestCheckStock_KilogramShortage(t *testing.T) {
	req := entities.NewRequirements()
	req.Add("FLOUR", 2500)

	ingredients := []*entities.Ingredient{
		{ID: "FLOUR", Name: "Wheat flour", Unit: entities.Kilogram, CurrentStock: 2},
	}

	lines, err := CheckStockSufficiency(req, ingredients)
	if err != nil {
		t.Fatalf("Failed to check stock: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}

	line := lines[0]
	if line.AvailableGrams != 2000 {
		t.Errorf("Expected 2000 g available, got %v", line.AvailableGrams)
	}
	if line.Sufficient {
		t.Error("Expected insufficient stock")
	}
	if line.ShortfallGrams != 500 {
		t.Errorf("Expected shortfall 500, got %v", line.ShortfallGrams)
	}
	if line.RequiredDisplay.String() != "2500 g" || line.AvailableDisplay.String() != "2000 g" {
		t.Errorf("Unexpected display values: %s / %s", line.RequiredDisplay, line.AvailableDisplay)
	}
	if AllSufficient(lines) {
		t.Error("Expected AllSufficient to be false")
	}
}

func TestCheckStock_UnknownIngredient(t *testing.T) {
	req := entities.NewRequirements()
	req.Add("SALT", 10)
	req.Add("SESAME", 40)

	ingredients := []*entities.Ingredient{
		{ID: "SALT", Name: "Salt", Unit: entities.Gram, CurrentStock: 5000},
	}

	lines, err := CheckStockSufficiency(req, ingredients)
	if err != nil {
		t.Fatalf("Failed to check stock: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if !lines[0].Sufficient || lines[0].Unknown {
		t.Errorf("Expected SALT to be known and sufficient, got %+v", lines[0])
	}
	if lines[1].IngredientID != "SESAME" || lines[1].Sufficient || !lines[1].Unknown {
		t.Errorf("Expected SESAME to be unknown and insufficient, got %+v", lines[1])
	}
}

func TestCheckStock_BelowMinimum(t *testing.T) {
	req := entities.NewRequirements()
	req.Add("MILK", 800)

	ingredients := []*entities.Ingredient{
		{ID: "MILK", Name: "Milk", Unit: entities.Liter, CurrentStock: 1, MinimumStock: 0.5},
	}

	lines, err := CheckStockSufficiency(req, ingredients)
	if err != nil {
		t.Fatalf("Failed to check stock: %v", err)
	}
	if !lines[0].Sufficient {
		t.Error("Expected 1 l to cover 800 ml")
	}
	if !lines[0].BelowMinimum {
		t.Error("Expected remaining 200 ml to be below the 500 ml minimum")
	}
	if lines[0].RequiredDisplay.Unit != entities.Milliliter {
		t.Errorf("Expected ml display, got %s", lines[0].RequiredDisplay.Unit)
	}
}

func TestCheckStock_ExactStockIsSufficient(t *testing.T) {
	req := entities.NewRequirements()
	req.Add("EGG", 12)

	lines, err := CheckStockSufficiency(req, []*entities.Ingredient{
		{ID: "EGG", Name: "Egg", Unit: entities.Piece, CurrentStock: 12},
	})
	if err != nil {
		t.Fatalf("Failed to check stock: %v", err)
	}
	if !lines[0].Sufficient || lines[0].ShortfallGrams != 0 {
		t.Errorf("Expected exact stock to be sufficient, got %+v", lines[0])
	}
}

func TestCheckStock_InvalidMasses(t *testing.T) {
	for name, grams := range map[string]float64{
		"NaN":      math.NaN(),
		"infinite": math.Inf(1),
		"negative": -1,
	} {
		t.Run(name, func(t *testing.T) {
			req := entities.NewRequirements()
			req.Add("FLOUR", grams)
			_, err := CheckStockSufficiency(req, nil)
			if !errors.Is(err, entities.ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}

	if _, err := CheckStockSufficiency(nil, nil); !errors.Is(err, entities.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil requirements, got %v", err)
	}
}

func TestCheckStock_NonFiniteStockIsInsufficient(t *testing.T) {
	testCases := []struct {
		name    string
		stock   float64
		minimum float64
	}{
		{"infinite stock", math.Inf(1), 0},
		{"NaN stock", math.NaN(), 0},
		{"negative stock", -3, 0},
		{"NaN minimum", 5, math.NaN()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := entities.NewRequirements()
			req.Add("FLOUR", 1e9)

			lines, err := CheckStockSufficiency(req, []*entities.Ingredient{
				{ID: "FLOUR", Name: "Wheat flour", Unit: entities.Kilogram, CurrentStock: tc.stock, MinimumStock: tc.minimum},
			})
			if err != nil {
				t.Fatalf("Failed to check stock: %v", err)
			}
			line := lines[0]
			if line.Sufficient {
				t.Errorf("Expected 1e9 g to be insufficient, got %+v", line)
			}
			if math.IsNaN(line.ShortfallGrams) || math.IsNaN(line.AvailableGrams) {
				t.Errorf("Expected finite shortfall and available mass, got %v and %v", line.ShortfallGrams, line.AvailableGrams)
			}
			if _, err := json.Marshal(lines); err != nil {
				t.Errorf("Expected stock report to encode as JSON, got %v", err)
			}
		})
	}
}
