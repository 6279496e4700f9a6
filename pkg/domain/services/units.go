package services

import "github.com/vsinha/bakeplan/pkg/domain/entities"

// Display and cost conversions differ and must stay apart: display keeps the
// gram value and relabels kg/l, cost rescales to the stock unit.

// FormatQuantity renders a gram mass the way production staff read it.
// Ingredients stocked in kg show grams, liters show milliliters (density 1),
// every other unit keeps its own label. The numeric value is never rescaled.
func FormatQuantity(massGrams float64, unit entities.Unit) entities.DisplayQuantity {
	switch unit {
	case entities.Kilogram:
		return entities.DisplayQuantity{Value: massGrams, Unit: entities.Gram}
	case entities.Liter:
		return entities.DisplayQuantity{Value: massGrams, Unit: entities.Milliliter}
	default:
		return entities.DisplayQuantity{Value: massGrams, Unit: unit}
	}
}

// ConvertGramsToStockUnit expresses a gram mass in the magnitude of the
// ingredient's stock unit, for multiplying with a per-stock-unit cost.
func ConvertGramsToStockUnit(massGrams float64, unit entities.Unit) float64 {
	switch unit {
	case entities.Kilogram, entities.Liter:
		return massGrams / 1000
	default:
		return massGrams
	}
}

// StockToGrams converts a stock level in unit to grams.
func StockToGrams(stock float64, unit entities.Unit) float64 {
	switch unit {
	case entities.Kilogram, entities.Liter:
		return stock * 1000
	default:
		return stock
	}
}
