package repositories

import "github.com/vsinha/bakeplan/pkg/domain/entities"

// RecipeRepository provides access to recipe master data
type RecipeRepository interface {
	GetRecipe(id entities.RecipeID) (*entities.Recipe, error)
	GetAllRecipes() ([]*entities.Recipe, error)
	LoadRecipes(recipes []*entities.Recipe) error
}
