package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_RecipeRoundTrip(t *testing.T) {
	store := openTestStore(t)

	base, unitWeight := 1000.0, 50.0
	recipe := &entities.Recipe{
		ID:                "RYE",
		Name:              "Rye bread",
		YieldUnits:        20,
		CalculationSystem: entities.Percentage,
		BaseMassGrams:     &base,
		UnitWeightGrams:   &unitWeight,
		Lines: []entities.IngredientLine{
			{IngredientID: "RYE_FLOUR", Quantity: 70, IsBaseIngredient: true},
			{IngredientID: "WHEAT_FLOUR", Quantity: 30, IsBaseIngredient: true},
			{IngredientID: "SALT", Quantity: 2},
		},
	}
	if err := store.LoadRecipes([]*entities.Recipe{recipe}); err != nil {
		t.Fatalf("Failed to save recipe: %v", err)
	}

	got, err := store.GetRecipe("RYE")
	if err != nil {
		t.Fatalf("Failed to get recipe: %v", err)
	}
	if got.CalculationSystem != entities.Percentage {
		t.Errorf("Expected percentage system, got %s", got.CalculationSystem)
	}
	if got.BaseMassGrams == nil || *got.BaseMassGrams != 1000 {
		t.Errorf("Expected base mass 1000, got %v", got.BaseMassGrams)
	}
	if got.UnitWeightGrams == nil || *got.UnitWeightGrams != 50 {
		t.Errorf("Expected unit weight 50, got %v", got.UnitWeightGrams)
	}
	if len(got.Lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d", len(got.Lines))
	}
	for i, want := range recipe.Lines {
		if got.Lines[i] != want {
			t.Errorf("Line %d: expected %+v, got %+v", i, want, got.Lines[i])
		}
	}
}

func TestStore_SaveRecipeReplacesLines(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	recipe := &entities.Recipe{
		ID:                "COOKIE",
		Name:              "Cookie",
		YieldUnits:        12,
		CalculationSystem: entities.Absolute,
		Lines: []entities.IngredientLine{
			{IngredientID: "FLOUR", Quantity: 300},
			{IngredientID: "BUTTER", Quantity: 200},
		},
	}
	if err := store.SaveRecipeContext(ctx, recipe); err != nil {
		t.Fatalf("Failed to save recipe: %v", err)
	}

	recipe.Lines = []entities.IngredientLine{{IngredientID: "SUGAR", Quantity: 150}}
	if err := store.SaveRecipeContext(ctx, recipe); err != nil {
		t.Fatalf("Failed to resave recipe: %v", err)
	}

	all, err := store.GetAllRecipes()
	if err != nil {
		t.Fatalf("Failed to list recipes: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected 1 recipe, got %d", len(all))
	}
	if len(all[0].Lines) != 1 || all[0].Lines[0].IngredientID != "SUGAR" {
		t.Errorf("Expected only the SUGAR line, got %+v", all[0].Lines)
	}
	if all[0].BaseMassGrams != nil || all[0].UnitWeightGrams != nil {
		t.Errorf("Expected nil optional masses, got %v / %v", all[0].BaseMassGrams, all[0].UnitWeightGrams)
	}
}

func TestStore_Ingredients(t *testing.T) {
	store := openTestStore(t)

	err := store.LoadIngredients([]*entities.Ingredient{
		{ID: "FLOUR", Name: "Flour", Unit: entities.Kilogram, CurrentStock: 25, MinimumStock: 5, UnitCost: decimal.RequireFromString("1.20")},
		{ID: "EGG", Name: "Egg", Unit: entities.Piece, CurrentStock: 60, UnitCost: decimal.RequireFromString("0.25")},
	})
	if err != nil {
		t.Fatalf("Failed to save ingredients: %v", err)
	}

	flour, err := store.GetIngredient("FLOUR")
	if err != nil {
		t.Fatalf("Failed to get ingredient: %v", err)
	}
	if flour.Unit != entities.Kilogram || flour.CurrentStock != 25 || flour.MinimumStock != 5 {
		t.Errorf("Unexpected flour row: %+v", flour)
	}
	if !flour.UnitCost.Equal(decimal.RequireFromString("1.2")) {
		t.Errorf("Expected unit cost 1.2, got %s", flour.UnitCost)
	}

	subset, err := store.GetIngredients([]entities.IngredientID{"EGG", "MISSING", "FLOUR"})
	if err != nil {
		t.Fatalf("Failed to get ingredients: %v", err)
	}
	if len(subset) != 2 || subset[0].ID != "EGG" || subset[1].ID != "FLOUR" {
		t.Errorf("Expected [EGG FLOUR], got %+v", subset)
	}

	flour.CurrentStock = 3
	if err := store.SaveIngredientContext(context.Background(), flour); err != nil {
		t.Fatalf("Failed to update ingredient: %v", err)
	}
	updated, _ := store.GetIngredient("FLOUR")
	if updated.CurrentStock != 3 {
		t.Errorf("Expected updated stock 3, got %g", updated.CurrentStock)
	}
}

func TestStore_NotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.GetRecipe("NOPE"); !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for recipe, got %v", err)
	}
	if _, err := store.GetIngredient("NOPE"); !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for ingredient, got %v", err)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := Open(context.Background(), "mysql", "x"); err == nil {
		t.Error("Expected error for unsupported driver")
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: DriverPostgres}
	got := pg.rebind("INSERT INTO t VALUES (?, ?, ?)")
	if got != "INSERT INTO t VALUES ($1, $2, $3)" {
		t.Errorf("Expected $n placeholders, got %q", got)
	}

	lite := &Store{driver: DriverSQLite}
	if q := lite.rebind("WHERE id = ?"); q != "WHERE id = ?" {
		t.Errorf("Expected sqlite query unchanged, got %q", q)
	}
}

func TestStore_PercentageRecipeDefaultsBaseMass(t *testing.T) {
	store := openTestStore(t)

	recipe := &entities.Recipe{
		ID:                "FOCACCIA",
		Name:              "Focaccia",
		YieldUnits:        4,
		CalculationSystem: entities.Percentage,
		Lines: []entities.IngredientLine{
			{IngredientID: "WHEAT_FLOUR", Quantity: 100, IsBaseIngredient: true},
			{IngredientID: "SALT", Quantity: 2},
		},
	}
	if err := store.LoadRecipes([]*entities.Recipe{recipe}); err != nil {
		t.Fatalf("Failed to save recipe: %v", err)
	}

	got, err := store.GetRecipe("FOCACCIA")
	if err != nil {
		t.Fatalf("Failed to get recipe: %v", err)
	}
	if got.BaseMassGrams == nil || *got.BaseMassGrams != entities.DefaultBaseMassGrams {
		t.Errorf("Expected default base mass %v, got %v", entities.DefaultBaseMassGrams, got.BaseMassGrams)
	}
	if got.UnitWeightGrams != nil {
		t.Errorf("Expected no unit weight, got %v", *got.UnitWeightGrams)
	}
}

func TestStore_SaveEachUsesFreshTimeout(t *testing.T) {
	store := openTestStore(t)
	store.queryTimeout = 200 * time.Millisecond

	calls := 0
	err := store.saveEach(3, func(ctx context.Context, i int) error {
		time.Sleep(100 * time.Millisecond)
		calls++
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Expected every item to get its own timeout, got %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got %d", calls)
	}

	failing := errors.New("disk full")
	calls = 0
	err = store.saveEach(3, func(context.Context, int) error {
		calls++
		return failing
	})
	if !errors.Is(err, failing) || calls != 1 {
		t.Errorf("Expected to stop at the first error, got %v after %d calls", err, calls)
	}
}

func TestStore_LargeImport(t *testing.T) {
	store := openTestStore(t)

	recipes := make([]*entities.Recipe, 0, 200)
	for i := 0; i < 200; i++ {
		recipes = append(recipes, &entities.Recipe{
			ID:                entities.RecipeID(fmt.Sprintf("R%03d", i)),
			Name:              "Recipe",
			YieldUnits:        1,
			CalculationSystem: entities.Absolute,
			Lines:             []entities.IngredientLine{{IngredientID: "FLOUR", Quantity: float64(i)}},
		})
	}
	if err := store.LoadRecipes(recipes); err != nil {
		t.Fatalf("Failed to import recipes: %v", err)
	}

	all, err := store.GetAllRecipes()
	if err != nil {
		t.Fatalf("Failed to list recipes: %v", err)
	}
	if len(all) != 200 {
		t.Errorf("Expected 200 recipes, got %d", len(all))
	}
}
