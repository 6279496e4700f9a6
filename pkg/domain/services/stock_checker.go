package services

import (
	"fmt"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

// CheckStockSufficiency compares required gram masses with current stock.
// Lines follow the order of required. An ingredient missing from ingredients
// is reported as Unknown and insufficient instead of failing the whole report.
// Non-finite or negative stock is treated as empty and never sufficient.
func CheckStockSufficiency(required *entities.Requirements, ingredients []*entities.Ingredient) ([]entities.StockLine, error) {
	if required == nil {
		return nil, fmt.Errorf("%w: required masses are nil", entities.ErrInvalidInput)
	}
	entries := required.Entries()
	for _, entry := range entries {
		if !isFinite(entry.MassGrams) || entry.MassGrams < 0 {
			return nil, fmt.Errorf("%w: required mass for %s must be a non-negative number, got %g",
				entities.ErrInvalidInput, entry.IngredientID, entry.MassGrams)
		}
	}

	registry := make(map[entities.IngredientID]*entities.Ingredient, len(ingredients))
	for _, ingredient := range ingredients {
		if ingredient != nil {
			registry[ingredient.ID] = ingredient
		}
	}

	lines := make([]entities.StockLine, 0, len(entries))
	for _, entry := range entries {
		ingredient, ok := registry[entry.IngredientID]
		if !ok {
			lines = append(lines, entities.StockLine{
				IngredientID:     entry.IngredientID,
				RequiredGrams:    entry.MassGrams,
				ShortfallGrams:   entry.MassGrams,
				RequiredDisplay:  entities.DisplayQuantity{Value: entry.MassGrams, Unit: entities.Gram},
				AvailableDisplay: entities.DisplayQuantity{Unit: entities.Gram},
				Sufficient:       false,
				Unknown:          true,
			})
			continue
		}

		// Unusable stock figures count as nothing on hand.
		available := StockToGrams(ingredient.CurrentStock, ingredient.Unit)
		usable := isFinite(available) && available >= 0
		if !usable {
			available = 0
		}
		minimum := StockToGrams(ingredient.MinimumStock, ingredient.Unit)
		if !isFinite(minimum) {
			minimum = 0
		}
		shortfall := entry.MassGrams - available
		if shortfall < 0 {
			shortfall = 0
		}

		lines = append(lines, entities.StockLine{
			IngredientID:     entry.IngredientID,
			Name:             ingredient.Name,
			RequiredGrams:    entry.MassGrams,
			AvailableGrams:   available,
			ShortfallGrams:   shortfall,
			RequiredDisplay:  FormatQuantity(entry.MassGrams, ingredient.Unit),
			AvailableDisplay: FormatQuantity(available, ingredient.Unit),
			Sufficient:       usable && available >= entry.MassGrams,
			BelowMinimum:     available-entry.MassGrams < minimum,
		})
	}

	return lines, nil
}

// AllSufficient reports whether every line of a stock report is covered
func AllSufficient(lines []entities.StockLine) bool {
	for _, line := range lines {
		if !line.Sufficient {
			return false
		}
	}
	return true
}
