package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/sqlstore"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/yamlcat"
)

// Scenario directory file names
const (
	IngredientsFile = "ingredients.csv"
	RecipesFile     = "recipes.csv"
	RecipeLinesFile = "recipe_lines.csv"
	PlanFile        = "plan.csv"
	CatalogFile     = "catalog.yaml"
)

// Source selects where the catalog and the production plan are read from.
// Exactly one of ScenarioDir, CatalogFile or DSN provides the catalog.
type Source struct {
	ScenarioDir string
	CatalogFile string
	PlanFile    string
	StoreDriver string
	DSN         string
}

// loadedCatalog holds the repositories plus the plan items found in the source
type loadedCatalog struct {
	recipes     repositories.RecipeRepository
	ingredients repositories.IngredientRepository
	plan        repositories.PlanRepository
	files       map[string]string
	close       func() error
}

func (s Source) validate() error {
	set := 0
	for _, v := range []string{s.ScenarioDir, s.CatalogFile, s.DSN} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("must specify exactly one of --scenario, --catalog or --dsn")
	}
	if s.DSN != "" && s.PlanFile == "" {
		return fmt.Errorf("--plan is required when reading the catalog from --dsn")
	}
	return nil
}

// resolveInputFiles determines the actual file paths to use
func (s Source) resolveInputFiles() (map[string]string, error) {
	files := make(map[string]string)

	switch {
	case s.ScenarioDir != "":
		if _, err := os.Stat(filepath.Join(s.ScenarioDir, CatalogFile)); err == nil {
			files["Catalog"] = filepath.Join(s.ScenarioDir, CatalogFile)
		} else {
			files["Ingredients"] = filepath.Join(s.ScenarioDir, IngredientsFile)
			files["Recipes"] = filepath.Join(s.ScenarioDir, RecipesFile)
			files["RecipeLines"] = filepath.Join(s.ScenarioDir, RecipeLinesFile)
		}
		if s.PlanFile != "" {
			files["Plan"] = s.PlanFile
		} else if _, err := os.Stat(filepath.Join(s.ScenarioDir, PlanFile)); err == nil {
			files["Plan"] = filepath.Join(s.ScenarioDir, PlanFile)
		}
	case s.CatalogFile != "":
		files["Catalog"] = s.CatalogFile
		if s.PlanFile != "" {
			files["Plan"] = s.PlanFile
		}
	default:
		files["Plan"] = s.PlanFile
	}

	for name, path := range files {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}
	return files, nil
}

func (s Source) load(ctx context.Context) (*loadedCatalog, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	files, err := s.resolveInputFiles()
	if err != nil {
		return nil, err
	}

	out := &loadedCatalog{files: files, close: func() error { return nil }}

	var (
		recipes     []*entities.Recipe
		ingredients []*entities.Ingredient
		plan        []*entities.PlanItem
	)
	if s.DSN != "" {
		store, err := sqlstore.Open(ctx, s.StoreDriver, s.DSN)
		if err != nil {
			return nil, err
		}
		out.recipes, out.ingredients, out.close = store, store, store.Close
	} else {
		if recipes, ingredients, plan, err = readCatalog(files); err != nil {
			return nil, err
		}
	}

	if out.recipes == nil {
		recipeRepo := memory.NewRecipeRepository(len(recipes))
		if err := recipeRepo.LoadRecipes(recipes); err != nil {
			return nil, fmt.Errorf("failed to load recipes into repository: %w", err)
		}
		ingredientRepo := memory.NewIngredientRepository(len(ingredients))
		if err := ingredientRepo.LoadIngredients(ingredients); err != nil {
			return nil, fmt.Errorf("failed to load ingredients into repository: %w", err)
		}
		out.recipes, out.ingredients = recipeRepo, ingredientRepo
	}

	if files["Plan"] != "" {
		if plan, err = csv.NewLoader().LoadPlan(files["Plan"]); err != nil {
			_ = out.close()
			return nil, fmt.Errorf("error loading plan: %w", err)
		}
	}
	if len(plan) == 0 {
		_ = out.close()
		return nil, fmt.Errorf("no production plan found: provide --plan or a plan section in the catalog")
	}

	planRepo := memory.NewPlanRepository()
	if err := planRepo.LoadPlanItems(plan); err != nil {
		_ = out.close()
		return nil, fmt.Errorf("failed to load plan into repository: %w", err)
	}
	out.plan = planRepo
	return out, nil
}

// readCatalog reads recipes and ingredients from a YAML catalog or from the
// scenario CSV files. The plan is only returned for YAML catalogs.
func readCatalog(files map[string]string) ([]*entities.Recipe, []*entities.Ingredient, []*entities.PlanItem, error) {
	if files["Catalog"] != "" {
		catalog, err := yamlcat.Load(files["Catalog"])
		if err != nil {
			return nil, nil, nil, fmt.Errorf("error loading catalog: %w", err)
		}
		return catalog.Recipes, catalog.Ingredients, catalog.Plan, nil
	}

	loader := csv.NewLoader()
	ingredients, err := loader.LoadIngredients(files["Ingredients"])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error loading ingredients: %w", err)
	}
	recipes, err := loader.LoadRecipes(files["Recipes"], files["RecipeLines"])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error loading recipes: %w", err)
	}
	return recipes, ingredients, nil, nil
}
