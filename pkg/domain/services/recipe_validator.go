package services

import (
	"fmt"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

// RecipeValidator checks a recipe catalog against the ingredient registry
type RecipeValidator struct{}

// NewRecipeValidator creates a new recipe validator
func NewRecipeValidator() *RecipeValidator {
	return &RecipeValidator{}
}

// ValidationResult contains the results of catalog validation
type ValidationResult struct {
	MissingIngredients []entities.IngredientID
	DuplicateLines     []DuplicateLine
	Errors             []string
	Warnings           []string
}

// DuplicateLine is an ingredient listed more than once in one recipe
type DuplicateLine struct {
	RecipeID     entities.RecipeID
	IngredientID entities.IngredientID
}

// HasErrors reports whether the catalog cannot be planned against
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ValidateCatalog validates recipes and ingredients together
func (v *RecipeValidator) ValidateCatalog(recipes []*entities.Recipe, ingredients []*entities.Ingredient) *ValidationResult {
	result := &ValidationResult{
		MissingIngredients: make([]entities.IngredientID, 0),
		DuplicateLines:     make([]DuplicateLine, 0),
		Errors:             make([]string, 0),
		Warnings:           make([]string, 0),
	}

	known := make(map[entities.IngredientID]bool, len(ingredients))
	for _, ingredient := range ingredients {
		if known[ingredient.ID] {
			result.Errors = append(result.Errors, fmt.Sprintf("duplicate ingredient id: %s", ingredient.ID))
		}
		known[ingredient.ID] = true
	}

	seenRecipes := make(map[entities.RecipeID]bool, len(recipes))
	missing := make(map[entities.IngredientID]bool)

	for _, recipe := range recipes {
		if seenRecipes[recipe.ID] {
			result.Errors = append(result.Errors, fmt.Sprintf("duplicate recipe id: %s", recipe.ID))
		}
		seenRecipes[recipe.ID] = true

		if recipe.YieldUnits <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("recipe %s: yield units must be positive, got %g", recipe.ID, recipe.YieldUnits))
		}

		seenLines := make(map[entities.IngredientID]bool, len(recipe.Lines))
		for _, line := range recipe.Lines {
			if !known[line.IngredientID] && !missing[line.IngredientID] {
				missing[line.IngredientID] = true
				result.MissingIngredients = append(result.MissingIngredients, line.IngredientID)
				result.Errors = append(result.Errors, fmt.Sprintf("recipe %s references unknown ingredient %s", recipe.ID, line.IngredientID))
			}
			if seenLines[line.IngredientID] {
				result.DuplicateLines = append(result.DuplicateLines, DuplicateLine{RecipeID: recipe.ID, IngredientID: line.IngredientID})
				result.Warnings = append(result.Warnings, fmt.Sprintf("recipe %s lists %s more than once; masses will be summed", recipe.ID, line.IngredientID))
			}
			seenLines[line.IngredientID] = true
		}

		v.validateSystem(recipe, result)
	}

	return result
}

func (v *RecipeValidator) validateSystem(recipe *entities.Recipe, result *ValidationResult) {
	switch recipe.CalculationSystem {
	case entities.Percentage:
		if recipe.BaseTotalPercent() == 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("recipe %s: percentage recipe has no base ingredient percentage", recipe.ID))
		}
		if recipe.BaseMassGrams == nil || *recipe.BaseMassGrams <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("recipe %s: percentage recipe needs a positive base mass", recipe.ID))
		}
		if recipe.UnitWeightGrams == nil || *recipe.UnitWeightGrams <= 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("recipe %s: no unit weight, masses will not be adjusted to yield", recipe.ID))
		}
	case entities.Absolute:
		for _, line := range recipe.Lines {
			if line.IsBaseIngredient {
				result.Warnings = append(result.Warnings, fmt.Sprintf("recipe %s: base flag on %s is ignored by the absolute system", recipe.ID, line.IngredientID))
				break
			}
		}
	}
}
