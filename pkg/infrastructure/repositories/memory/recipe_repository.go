package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
)

// RecipeRepository provides in-memory recipe storage
type RecipeRepository struct {
	mu         sync.RWMutex
	recipes    []entities.Recipe
	recipesMap map[entities.RecipeID]int
}

// NewRecipeRepository creates a new in-memory recipe repository
func NewRecipeRepository(expectedRecipes int) *RecipeRepository {
	return &RecipeRepository{
		recipes:    make([]entities.Recipe, 0, expectedRecipes),
		recipesMap: make(map[entities.RecipeID]int, expectedRecipes),
	}
}

// Verify interface compliance
var _ repositories.RecipeRepository = (*RecipeRepository)(nil)

// LoadRecipes loads recipes into the repository
func (r *RecipeRepository) LoadRecipes(recipes []*entities.Recipe) error {
	for _, recipe := range recipes {
		if err := r.SaveRecipe(recipe); err != nil {
			return err
		}
	}
	return nil
}

// SaveRecipe inserts or replaces a recipe
func (r *RecipeRepository) SaveRecipe(recipe *entities.Recipe) error {
	if recipe == nil || recipe.ID == "" {
		return fmt.Errorf("recipe id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneRecipe(recipe)
	if index, exists := r.recipesMap[recipe.ID]; exists {
		r.recipes[index] = *stored
		return nil
	}
	r.recipesMap[recipe.ID] = len(r.recipes)
	r.recipes = append(r.recipes, *stored)
	return nil
}

// GetRecipe returns a copy of the recipe with the given ID
func (r *RecipeRepository) GetRecipe(id entities.RecipeID) (*entities.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.recipesMap[id]
	if !exists {
		return nil, fmt.Errorf("recipe %s: %w", id, entities.ErrNotFound)
	}
	return cloneRecipe(&r.recipes[index]), nil
}

// GetAllRecipes returns copies of all recipes in insertion order
func (r *RecipeRepository) GetAllRecipes() ([]*entities.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipes := make([]*entities.Recipe, 0, len(r.recipes))
	for i := range r.recipes {
		recipes = append(recipes, cloneRecipe(&r.recipes[i]))
	}
	return recipes, nil
}

func cloneRecipe(recipe *entities.Recipe) *entities.Recipe {
	clone := *recipe
	clone.Lines = make([]entities.IngredientLine, len(recipe.Lines))
	copy(clone.Lines, recipe.Lines)
	if recipe.BaseMassGrams != nil {
		v := *recipe.BaseMassGrams
		clone.BaseMassGrams = &v
	}
	if recipe.UnitWeightGrams != nil {
		v := *recipe.UnitWeightGrams
		clone.UnitWeightGrams = &v
	}
	return &clone
}
