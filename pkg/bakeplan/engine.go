// Package bakeplan is the embeddable entry point: load a catalog, then plan
// production against it without wiring repositories by hand.
package bakeplan

import (
	"context"

	"go.uber.org/zap"

	"github.com/vsinha/bakeplan/pkg/application/dto"
	"github.com/vsinha/bakeplan/pkg/application/services"
	"github.com/vsinha/bakeplan/pkg/domain/entities"
	domain "github.com/vsinha/bakeplan/pkg/domain/services"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/yamlcat"
)

type (
	Recipe         = entities.Recipe
	IngredientLine = entities.IngredientLine
	Ingredient     = entities.Ingredient
	PlanItem       = entities.PlanItem
	Resolution     = entities.Resolution
	PlanResult     = dto.PlanResult
)

// Engine plans production against an in-memory catalog. It is safe for
// concurrent use.
type Engine struct {
	recipes     *memory.RecipeRepository
	ingredients *memory.IngredientRepository
	planner     *services.PlanningService
}

// NewEngine creates an engine with an empty catalog
func NewEngine(logger *zap.Logger) *Engine {
	recipes := memory.NewRecipeRepository(0)
	ingredients := memory.NewIngredientRepository(0)
	return &Engine{
		recipes:     recipes,
		ingredients: ingredients,
		planner:     services.NewPlanningService(recipes, ingredients, services.WithLogger(logger)),
	}
}

// NewEngineFromCatalog creates an engine seeded from a YAML catalog file
func NewEngineFromCatalog(path string, logger *zap.Logger) (*Engine, error) {
	catalog, err := yamlcat.Load(path)
	if err != nil {
		return nil, err
	}
	e := NewEngine(logger)
	if err := e.recipes.LoadRecipes(catalog.Recipes); err != nil {
		return nil, err
	}
	if err := e.ingredients.LoadIngredients(catalog.Ingredients); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) AddRecipe(recipe *Recipe) error {
	return e.recipes.SaveRecipe(recipe)
}

func (e *Engine) AddIngredient(ingredient *Ingredient) error {
	return e.ingredients.SaveIngredient(ingredient)
}

// Plan resolves the items against the catalog and checks stock
func (e *Engine) Plan(ctx context.Context, items ...*PlanItem) (*PlanResult, error) {
	return e.planner.PlanProduction(ctx, items)
}

// Resolve scales a single recipe without touching the catalog
func Resolve(recipe *Recipe, productionQuantity float64) (*Resolution, error) {
	return domain.ResolveIngredientMasses(recipe, productionQuantity)
}
