package memory

import (
	"errors"
	"testing"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

func TestRecipeRepository_SaveAndGetRecipe(t *testing.T) {
	repo := NewRecipeRepository(2)

	base := 1000.0
	recipe := &entities.Recipe{
		ID:                "BAGUETTE",
		Name:              "Baguette",
		YieldUnits:        10,
		CalculationSystem: entities.Percentage,
		BaseMassGrams:     &base,
		Lines: []entities.IngredientLine{
			{IngredientID: "FLOUR", Quantity: 100, IsBaseIngredient: true},
			{IngredientID: "WATER", Quantity: 68},
		},
	}

	if err := repo.SaveRecipe(recipe); err != nil {
		t.Fatalf("Failed to save recipe: %v", err)
	}

	retrieved, err := repo.GetRecipe("BAGUETTE")
	if err != nil {
		t.Fatalf("Failed to get recipe: %v", err)
	}
	if retrieved.Name != recipe.Name {
		t.Errorf("Expected name %s, got %s", recipe.Name, retrieved.Name)
	}
	if len(retrieved.Lines) != 2 || retrieved.Lines[1].IngredientID != "WATER" {
		t.Errorf("Expected lines in declaration order, got %+v", retrieved.Lines)
	}

	// Mutating the returned copy must not change the stored recipe
	retrieved.Lines[0].Quantity = 1
	*retrieved.BaseMassGrams = 5
	again, _ := repo.GetRecipe("BAGUETTE")
	if again.Lines[0].Quantity != 100 || *again.BaseMassGrams != 1000 {
		t.Errorf("Expected stored recipe to be unchanged, got %+v", again)
	}
}

func TestRecipeRepository_ReplaceAndNotFound(t *testing.T) {
	repo := NewRecipeRepository(0)
	_ = repo.LoadRecipes([]*entities.Recipe{
		{ID: "A", YieldUnits: 1},
		{ID: "B", YieldUnits: 2},
		{ID: "A", YieldUnits: 3},
	})

	all, err := repo.GetAllRecipes()
	if err != nil {
		t.Fatalf("Failed to get recipes: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 recipes, got %d", len(all))
	}
	if all[0].ID != "A" || all[0].YieldUnits != 3 {
		t.Errorf("Expected A replaced in place with yield 3, got %+v", all[0])
	}

	_, err = repo.GetRecipe("MISSING")
	if !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
