// Package yamlcat reads and writes recipe catalogs as YAML documents: the
// ingredient registry, the recipes and an optional production plan in one file.
package yamlcat

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

// Catalog is a decoded catalog file
type Catalog struct {
	Ingredients []*entities.Ingredient
	Recipes     []*entities.Recipe
	Plan        []*entities.PlanItem
}

type document struct {
	Ingredients []ingredientDoc `yaml:"ingredients"`
	Recipes     []recipeDoc     `yaml:"recipes"`
	Plan        []planDoc       `yaml:"plan,omitempty"`
}

type ingredientDoc struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Unit         string  `yaml:"unit"`
	CurrentStock float64 `yaml:"current_stock"`
	MinimumStock float64 `yaml:"minimum_stock"`
	UnitCost     string  `yaml:"unit_cost,omitempty"`
}

type recipeDoc struct {
	ID                string    `yaml:"id"`
	Name              string    `yaml:"name"`
	YieldUnits        float64   `yaml:"yield_units"`
	CalculationSystem string    `yaml:"calculation_system"`
	BaseMassGrams     *float64  `yaml:"base_mass_grams,omitempty"`
	UnitWeightGrams   *float64  `yaml:"unit_weight_grams,omitempty"`
	Lines             []lineDoc `yaml:"lines"`
}

type lineDoc struct {
	Ingredient string  `yaml:"ingredient"`
	Quantity   float64 `yaml:"quantity"`
	Base       bool    `yaml:"base,omitempty"`
}

type planDoc struct {
	Recipe   string  `yaml:"recipe"`
	Quantity float64 `yaml:"quantity"`
}

// Load reads a catalog file
func Load(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer file.Close()

	catalog, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return catalog, nil
}

// Decode reads a catalog document. Percentage recipes without a base mass get
// entities.DefaultBaseMassGrams.
func Decode(r io.Reader) (*Catalog, error) {
	var doc document
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return &Catalog{}, nil
		}
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	catalog := &Catalog{}
	for i, d := range doc.Ingredients {
		ingredient, err := d.toEntity()
		if err != nil {
			return nil, fmt.Errorf("ingredient %d (%s): %w", i+1, d.ID, err)
		}
		catalog.Ingredients = append(catalog.Ingredients, ingredient)
	}

	for i, d := range doc.Recipes {
		recipe, err := d.toEntity()
		if err != nil {
			return nil, fmt.Errorf("recipe %d (%s): %w", i+1, d.ID, err)
		}
		catalog.Recipes = append(catalog.Recipes, recipe)
	}

	for i, d := range doc.Plan {
		item, err := entities.NewPlanItem(entities.RecipeID(d.Recipe), d.Quantity)
		if err != nil {
			return nil, fmt.Errorf("plan item %d: %w", i+1, err)
		}
		catalog.Plan = append(catalog.Plan, item)
	}

	return catalog, nil
}

// Encode writes a catalog document
func Encode(w io.Writer, catalog *Catalog) error {
	doc := document{}
	for _, ingredient := range catalog.Ingredients {
		d := ingredientDoc{
			ID:           string(ingredient.ID),
			Name:         ingredient.Name,
			Unit:         string(ingredient.Unit),
			CurrentStock: ingredient.CurrentStock,
			MinimumStock: ingredient.MinimumStock,
		}
		if !ingredient.UnitCost.IsZero() {
			d.UnitCost = ingredient.UnitCost.String()
		}
		doc.Ingredients = append(doc.Ingredients, d)
	}

	for _, recipe := range catalog.Recipes {
		d := recipeDoc{
			ID:                string(recipe.ID),
			Name:              recipe.Name,
			YieldUnits:        recipe.YieldUnits,
			CalculationSystem: recipe.CalculationSystem.String(),
			BaseMassGrams:     recipe.BaseMassGrams,
			UnitWeightGrams:   recipe.UnitWeightGrams,
		}
		for _, line := range recipe.Lines {
			d.Lines = append(d.Lines, lineDoc{
				Ingredient: string(line.IngredientID),
				Quantity:   line.Quantity,
				Base:       line.IsBaseIngredient,
			})
		}
		doc.Recipes = append(doc.Recipes, d)
	}

	for _, item := range catalog.Plan {
		doc.Plan = append(doc.Plan, planDoc{Recipe: string(item.RecipeID), Quantity: item.Quantity})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return encoder.Close()
}

func (d ingredientDoc) toEntity() (*entities.Ingredient, error) {
	unit, err := entities.ParseUnit(d.Unit)
	if err != nil {
		return nil, err
	}
	cost := decimal.Zero
	if d.UnitCost != "" {
		cost, err = decimal.NewFromString(d.UnitCost)
		if err != nil {
			return nil, fmt.Errorf("invalid unit_cost: %s", d.UnitCost)
		}
	}
	return entities.NewIngredient(entities.IngredientID(d.ID), d.Name, unit, d.CurrentStock, d.MinimumStock, cost)
}

func (d recipeDoc) toEntity() (*entities.Recipe, error) {
	system, err := entities.ParseCalculationSystem(d.CalculationSystem)
	if err != nil {
		return nil, err
	}

	lines := make([]entities.IngredientLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		lines = append(lines, entities.IngredientLine{
			IngredientID:     entities.IngredientID(l.Ingredient),
			Quantity:         l.Quantity,
			IsBaseIngredient: l.Base,
		})
	}

	recipe, err := entities.NewRecipe(entities.RecipeID(d.ID), d.Name, d.YieldUnits, system, lines)
	if err != nil {
		return nil, err
	}
	recipe.BaseMassGrams = d.BaseMassGrams
	if recipe.BaseMassGrams == nil && system == entities.Percentage {
		recipe.WithBaseMass(entities.DefaultBaseMassGrams)
	}
	recipe.UnitWeightGrams = d.UnitWeightGrams
	return recipe, nil
}
