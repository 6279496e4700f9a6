package services

import (
	"fmt"
	"math"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

// ResolveIngredientMasses converts a recipe's declared line quantities into
// absolute masses for the requested production quantity.
//
// The scale factor productionQuantity/YieldUnits is applied uniformly to every
// line. Absolute lines are taken verbatim; percentage lines are converted
// against BaseMassGrams and then reconciled with the recipe's declared real
// total (UnitWeightGrams * YieldUnits).
func ResolveIngredientMasses(recipe *entities.Recipe, productionQuantity float64) (*entities.Resolution, error) {
	return ResolveInto(nil, recipe, productionQuantity)
}

// ResolveInto resolves recipe and sums its masses into req, which lets callers
// aggregate shared ingredients across the recipes of a production plan. req is
// left untouched when resolution fails and may be nil.
func ResolveInto(req *entities.Requirements, recipe *entities.Recipe, productionQuantity float64) (*entities.Resolution, error) {
	if recipe == nil {
		return nil, fmt.Errorf("%w: recipe is nil", entities.ErrInvalidInput)
	}
	if !isFinite(productionQuantity) || productionQuantity <= 0 {
		return nil, fmt.Errorf("%w: production quantity must be positive, got %g", entities.ErrInvalidInput, productionQuantity)
	}
	if !isFinite(recipe.YieldUnits) || recipe.YieldUnits <= 0 {
		return nil, fmt.Errorf("%w: recipe %s: yield units must be positive, got %g", entities.ErrInvalidInput, recipe.ID, recipe.YieldUnits)
	}
	for i, line := range recipe.Lines {
		if !isFinite(line.Quantity) || line.Quantity < 0 {
			return nil, fmt.Errorf("%w: recipe %s line %d (%s): quantity must be a non-negative number, got %g",
				entities.ErrInvalidInput, recipe.ID, i+1, line.IngredientID, line.Quantity)
		}
	}

	scaleFactor := productionQuantity / recipe.YieldUnits
	resolution := &entities.Resolution{
		RecipeID:         recipe.ID,
		Masses:           entities.NewRequirements(),
		ScaleFactor:      scaleFactor,
		AdjustmentFactor: 1,
	}

	switch recipe.CalculationSystem {
	case entities.Absolute:
		for _, line := range recipe.Lines {
			resolution.Masses.Add(line.IngredientID, line.Quantity*scaleFactor)
		}

	case entities.Percentage:
		if err := resolvePercentage(recipe, resolution); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%w: recipe %s: unknown calculation system %d", entities.ErrInvalidInput, recipe.ID, recipe.CalculationSystem)
	}

	if req != nil {
		req.Merge(resolution.Masses)
	}
	return resolution, nil
}

func resolvePercentage(recipe *entities.Recipe, resolution *entities.Resolution) error {
	if recipe.BaseTotalPercent() == 0 {
		return fmt.Errorf("%w: recipe %s: base ingredient percentages sum to zero", entities.ErrMalformedRecipe, recipe.ID)
	}
	if recipe.BaseMassGrams == nil || !isFinite(*recipe.BaseMassGrams) || *recipe.BaseMassGrams <= 0 {
		return fmt.Errorf("%w: recipe %s: percentage system needs a positive base mass", entities.ErrMalformedRecipe, recipe.ID)
	}
	baseMass := *recipe.BaseMassGrams

	theoreticalTotal := recipe.TotalQuantity() / 100 * baseMass

	switch {
	case recipe.UnitWeightGrams == nil || *recipe.UnitWeightGrams <= 0:
		resolution.Unadjusted = true
	case theoreticalTotal == 0:
		resolution.Underspecified = true
	default:
		declaredRealTotal := *recipe.UnitWeightGrams * recipe.YieldUnits
		resolution.AdjustmentFactor = declaredRealTotal / theoreticalTotal
	}

	for _, line := range recipe.Lines {
		nominal := line.Quantity / 100 * baseMass
		resolution.Masses.Add(line.IngredientID, nominal*resolution.AdjustmentFactor*resolution.ScaleFactor)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
