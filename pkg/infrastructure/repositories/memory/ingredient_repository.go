package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
)

// IngredientRepository provides in-memory ingredient and stock storage
type IngredientRepository struct {
	mu             sync.RWMutex
	ingredients    []entities.Ingredient
	ingredientsMap map[entities.IngredientID]int
}

// NewIngredientRepository creates a new in-memory ingredient repository
func NewIngredientRepository(expectedIngredients int) *IngredientRepository {
	return &IngredientRepository{
		ingredients:    make([]entities.Ingredient, 0, expectedIngredients),
		ingredientsMap: make(map[entities.IngredientID]int, expectedIngredients),
	}
}

// Verify interface compliance
var _ repositories.IngredientRepository = (*IngredientRepository)(nil)

// LoadIngredients loads ingredients into the repository
func (r *IngredientRepository) LoadIngredients(ingredients []*entities.Ingredient) error {
	for _, ingredient := range ingredients {
		if err := r.SaveIngredient(ingredient); err != nil {
			return err
		}
	}
	return nil
}

// SaveIngredient inserts or replaces an ingredient
func (r *IngredientRepository) SaveIngredient(ingredient *entities.Ingredient) error {
	if ingredient == nil || ingredient.ID == "" {
		return fmt.Errorf("ingredient id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if index, exists := r.ingredientsMap[ingredient.ID]; exists {
		r.ingredients[index] = *ingredient
		return nil
	}
	r.ingredientsMap[ingredient.ID] = len(r.ingredients)
	r.ingredients = append(r.ingredients, *ingredient)
	return nil
}

// GetIngredient returns a copy of the ingredient with the given ID
func (r *IngredientRepository) GetIngredient(id entities.IngredientID) (*entities.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.ingredientsMap[id]
	if !exists {
		return nil, fmt.Errorf("ingredient %s: %w", id, entities.ErrNotFound)
	}
	ingredient := r.ingredients[index]
	return &ingredient, nil
}

// GetIngredients returns the known ingredients among ids. Unknown IDs are
// skipped so the stock check can report them.
func (r *IngredientRepository) GetIngredients(ids []entities.IngredientID) ([]*entities.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ingredients := make([]*entities.Ingredient, 0, len(ids))
	for _, id := range ids {
		if index, exists := r.ingredientsMap[id]; exists {
			ingredient := r.ingredients[index]
			ingredients = append(ingredients, &ingredient)
		}
	}
	return ingredients, nil
}

// GetAllIngredients returns copies of all ingredients in insertion order
func (r *IngredientRepository) GetAllIngredients() ([]*entities.Ingredient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ingredients := make([]*entities.Ingredient, 0, len(r.ingredients))
	for i := range r.ingredients {
		ingredient := r.ingredients[i]
		ingredients = append(ingredients, &ingredient)
	}
	return ingredients, nil
}
