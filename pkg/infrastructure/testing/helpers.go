package testing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/memory"
)

// BuildBakeryTestData builds a small bakery catalog: a percentage rye bread,
// an absolute cookie and an absolute brioche sharing flour and sugar.
func BuildBakeryTestData() (*memory.RecipeRepository, *memory.IngredientRepository) {
	recipeRepo := memory.NewRecipeRepository(3)
	ingredientRepo := memory.NewIngredientRepository(7)

	ingredients := []*entities.Ingredient{
		{ID: "RYE_FLOUR", Name: "Rye flour", Unit: entities.Kilogram, CurrentStock: 10, MinimumStock: 2, UnitCost: decimal.RequireFromString("1.10")},
		{ID: "WHEAT_FLOUR", Name: "Wheat flour", Unit: entities.Kilogram, CurrentStock: 2, MinimumStock: 1, UnitCost: decimal.RequireFromString("0.90")},
		{ID: "SALT", Name: "Salt", Unit: entities.Gram, CurrentStock: 500, MinimumStock: 100, UnitCost: decimal.RequireFromString("0.002")},
		{ID: "BUTTER", Name: "Butter", Unit: entities.Kilogram, CurrentStock: 1, MinimumStock: 0.5, UnitCost: decimal.RequireFromString("8.50")},
		{ID: "SUGAR", Name: "Sugar", Unit: entities.Kilogram, CurrentStock: 5, MinimumStock: 1, UnitCost: decimal.RequireFromString("1.20")},
		{ID: "EGG", Name: "Egg", Unit: entities.Piece, CurrentStock: 24, MinimumStock: 12, UnitCost: decimal.RequireFromString("0.25")},
		{ID: "MILK", Name: "Milk", Unit: entities.Liter, CurrentStock: 4, MinimumStock: 1, UnitCost: decimal.RequireFromString("1.05")},
	}
	if err := ingredientRepo.LoadIngredients(ingredients); err != nil {
		panic(err)
	}

	baseMass, unitWeight := 1000.0, 50.0
	recipes := []*entities.Recipe{
		{
			ID:                "RYE_BREAD",
			Name:              "Rye bread roll",
			YieldUnits:        20,
			CalculationSystem: entities.Percentage,
			BaseMassGrams:     &baseMass,
			UnitWeightGrams:   &unitWeight,
			Lines: []entities.IngredientLine{
				{IngredientID: "RYE_FLOUR", Quantity: 70, IsBaseIngredient: true},
				{IngredientID: "WHEAT_FLOUR", Quantity: 30, IsBaseIngredient: true},
				{IngredientID: "SALT", Quantity: 2},
			},
		},
		{
			ID:                "COOKIE",
			Name:              "Butter cookie",
			YieldUnits:        12,
			CalculationSystem: entities.Absolute,
			Lines: []entities.IngredientLine{
				{IngredientID: "WHEAT_FLOUR", Quantity: 500},
				{IngredientID: "BUTTER", Quantity: 250},
				{IngredientID: "SUGAR", Quantity: 150},
			},
		},
		{
			ID:                "BRIOCHE",
			Name:              "Brioche",
			YieldUnits:        10,
			CalculationSystem: entities.Absolute,
			Lines: []entities.IngredientLine{
				{IngredientID: "WHEAT_FLOUR", Quantity: 300},
				{IngredientID: "SUGAR", Quantity: 90},
				{IngredientID: "EGG", Quantity: 4},
				{IngredientID: "MILK", Quantity: 120},
			},
		},
	}
	if err := recipeRepo.LoadRecipes(recipes); err != nil {
		panic(err)
	}

	return recipeRepo, ingredientRepo
}
