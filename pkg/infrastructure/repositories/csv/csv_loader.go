package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

// Loader handles loading recipe catalogs and production plans from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

var (
	ingredientsHeader = []string{"id", "name", "unit", "current_stock", "minimum_stock", "unit_cost"}
	recipesHeader     = []string{"id", "name", "yield_units", "calculation_system", "base_mass_grams", "unit_weight_grams"}
	recipeLinesHeader = []string{"recipe_id", "ingredient_id", "quantity", "is_base"}
	planHeader        = []string{"recipe_id", "quantity"}
)

// LoadIngredients loads the ingredient registry from a CSV file
func (l *Loader) LoadIngredients(filename string) ([]*entities.Ingredient, error) {
	records, err := readRecords(filename, "ingredients", ingredientsHeader)
	if err != nil {
		return nil, err
	}

	var ingredients []*entities.Ingredient
	for i, record := range records {
		ingredient, err := parseIngredient(record)
		if err != nil {
			return nil, fmt.Errorf("ingredients CSV row %d: %w", i+2, err)
		}
		ingredients = append(ingredients, ingredient)
	}

	return ingredients, nil
}

// LoadRecipes loads recipes and joins their ingredient lines. Lines keep the
// order they appear in the lines file.
func (l *Loader) LoadRecipes(recipesFile, linesFile string) ([]*entities.Recipe, error) {
	records, err := readRecords(recipesFile, "recipes", recipesHeader)
	if err != nil {
		return nil, err
	}

	var recipes []*entities.Recipe
	byID := make(map[entities.RecipeID]*entities.Recipe, len(records))
	for i, record := range records {
		recipe, err := parseRecipe(record)
		if err != nil {
			return nil, fmt.Errorf("recipes CSV row %d: %w", i+2, err)
		}
		if _, exists := byID[recipe.ID]; exists {
			return nil, fmt.Errorf("recipes CSV row %d: duplicate recipe id %s", i+2, recipe.ID)
		}
		byID[recipe.ID] = recipe
		recipes = append(recipes, recipe)
	}

	lineRecords, err := readRecords(linesFile, "recipe lines", recipeLinesHeader)
	if err != nil {
		return nil, err
	}

	for i, record := range lineRecords {
		recipeID := entities.RecipeID(strings.TrimSpace(record[0]))
		recipe, exists := byID[recipeID]
		if !exists {
			return nil, fmt.Errorf("recipe lines CSV row %d: unknown recipe %s", i+2, recipeID)
		}
		line, err := parseRecipeLine(record)
		if err != nil {
			return nil, fmt.Errorf("recipe lines CSV row %d: %w", i+2, err)
		}
		recipe.Lines = append(recipe.Lines, line)
	}

	return recipes, nil
}

// LoadPlan loads production plan items from a CSV file
func (l *Loader) LoadPlan(filename string) ([]*entities.PlanItem, error) {
	records, err := readRecords(filename, "plan", planHeader)
	if err != nil {
		return nil, err
	}

	var items []*entities.PlanItem
	for i, record := range records {
		quantity, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("plan CSV row %d: invalid quantity: %s", i+2, record[1])
		}
		item, err := entities.NewPlanItem(entities.RecipeID(strings.TrimSpace(record[0])), quantity)
		if err != nil {
			return nil, fmt.Errorf("plan CSV row %d: %w", i+2, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// readRecords opens a CSV file, validates its header and returns the data rows
func readRecords(filename, name string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", name, filename, err)
	}
	defer file.Close()

	return parseRecords(file, name, expectedHeader)
}

func parseRecords(r io.Reader, name string, expectedHeader []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(expectedHeader)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", name, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", name)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", name, expectedHeader, header)
	}

	return records[1:], nil
}

// Helper functions for parsing CSV records

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseIngredient(record []string) (*entities.Ingredient, error) {
	unit, err := entities.ParseUnit(record[2])
	if err != nil {
		return nil, err
	}

	currentStock, err := parseFloat(record[3], "current_stock")
	if err != nil {
		return nil, err
	}

	minimumStock, err := parseFloat(record[4], "minimum_stock")
	if err != nil {
		return nil, err
	}

	unitCost := decimal.Zero
	if s := strings.TrimSpace(record[5]); s != "" {
		unitCost, err = decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid unit_cost: %s", record[5])
		}
	}

	return entities.NewIngredient(
		entities.IngredientID(strings.TrimSpace(record[0])),
		strings.TrimSpace(record[1]),
		unit,
		currentStock,
		minimumStock,
		unitCost,
	)
}

func parseRecipe(record []string) (*entities.Recipe, error) {
	yieldUnits, err := parseFloat(record[2], "yield_units")
	if err != nil {
		return nil, err
	}

	system, err := entities.ParseCalculationSystem(record[3])
	if err != nil {
		return nil, err
	}

	recipe, err := entities.NewRecipe(
		entities.RecipeID(strings.TrimSpace(record[0])),
		strings.TrimSpace(record[1]),
		yieldUnits,
		system,
		nil,
	)
	if err != nil {
		return nil, err
	}

	baseMass, err := parseOptionalFloat(record[4], "base_mass_grams")
	if err != nil {
		return nil, err
	}
	if baseMass == nil && system == entities.Percentage {
		recipe.WithBaseMass(entities.DefaultBaseMassGrams)
	} else {
		recipe.BaseMassGrams = baseMass
	}

	recipe.UnitWeightGrams, err = parseOptionalFloat(record[5], "unit_weight_grams")
	if err != nil {
		return nil, err
	}

	return recipe, nil
}

func parseRecipeLine(record []string) (entities.IngredientLine, error) {
	quantity, err := parseFloat(record[2], "quantity")
	if err != nil {
		return entities.IngredientLine{}, err
	}
	if quantity < 0 {
		return entities.IngredientLine{}, fmt.Errorf("quantity cannot be negative, got %g", quantity)
	}

	isBase, err := parseBool(record[3])
	if err != nil {
		return entities.IngredientLine{}, err
	}

	return entities.IngredientLine{
		IngredientID:     entities.IngredientID(strings.TrimSpace(record[1])),
		Quantity:         quantity,
		IsBaseIngredient: isBase,
	}, nil
}

func parseFloat(s, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s: %s", field, s)
	}
	return v, nil
}

func parseOptionalFloat(s, field string) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := parseFloat(s, field)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1", "base":
		return true, nil
	case "false", "no", "0", "":
		return false, nil
	default:
		return false, fmt.Errorf("invalid is_base: %s (expected true or false)", s)
	}
}
