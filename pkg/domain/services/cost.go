package services

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

// CostBreakdown is the priced form of a Requirements mapping
type CostBreakdown struct {
	Lines []CostLine      `json:"lines"`
	Total decimal.Decimal `json:"total"`
	// Unpriced lists required ingredients missing from the registry
	Unpriced []entities.IngredientID `json:"unpriced,omitempty"`
}

// CostLine is the cost of one required ingredient
type CostLine struct {
	IngredientID entities.IngredientID `json:"ingredient_id"`
	StockAmount  decimal.Decimal       `json:"stock_amount"`
	Unit         entities.Unit         `json:"unit"`
	Cost         decimal.Decimal       `json:"cost"`
}

// IngredientCost prices a gram mass at the ingredient's per-stock-unit cost
func IngredientCost(massGrams float64, ingredient *entities.Ingredient) decimal.Decimal {
	amount := decimal.NewFromFloat(ConvertGramsToStockUnit(massGrams, ingredient.Unit))
	return amount.Mul(ingredient.UnitCost)
}

// RequirementsCost prices every entry of req. Rounding is left to presentation.
func RequirementsCost(req *entities.Requirements, ingredients []*entities.Ingredient) *CostBreakdown {
	registry := make(map[entities.IngredientID]*entities.Ingredient, len(ingredients))
	for _, ingredient := range ingredients {
		if ingredient != nil {
			registry[ingredient.ID] = ingredient
		}
	}

	breakdown := &CostBreakdown{Total: decimal.Zero}
	for _, entry := range req.Entries() {
		ingredient, ok := registry[entry.IngredientID]
		if !ok {
			breakdown.Unpriced = append(breakdown.Unpriced, entry.IngredientID)
			continue
		}
		cost := IngredientCost(entry.MassGrams, ingredient)
		breakdown.Lines = append(breakdown.Lines, CostLine{
			IngredientID: entry.IngredientID,
			StockAmount:  decimal.NewFromFloat(ConvertGramsToStockUnit(entry.MassGrams, ingredient.Unit)),
			Unit:         ingredient.Unit,
			Cost:         cost,
		})
		breakdown.Total = breakdown.Total.Add(cost)
	}
	return breakdown
}
