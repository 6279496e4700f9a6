package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

const selectRecipe = `SELECT id, name, yield_units, calculation_system, base_mass_grams, unit_weight_grams FROM recipes`

// SaveRecipeContext inserts or replaces a recipe together with its lines
func (s *Store) SaveRecipeContext(ctx context.Context, recipe *entities.Recipe) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, s.rebind(`INSERT INTO recipes (id, name, yield_units, calculation_system, base_mass_grams, unit_weight_grams)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			yield_units = excluded.yield_units,
			calculation_system = excluded.calculation_system,
			base_mass_grams = excluded.base_mass_grams,
			unit_weight_grams = excluded.unit_weight_grams`),
		string(recipe.ID), recipe.Name, recipe.YieldUnits, recipe.CalculationSystem.String(),
		nullFloat(recipe.BaseMassGrams), nullFloat(recipe.UnitWeightGrams))
	if err != nil {
		return fmt.Errorf("save recipe %s: %w", recipe.ID, err)
	}

	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM recipe_lines WHERE recipe_id = ?`), string(recipe.ID)); err != nil {
		return fmt.Errorf("clear lines of %s: %w", recipe.ID, err)
	}
	for i, line := range recipe.Lines {
		_, err := tx.ExecContext(ctx, s.rebind(`INSERT INTO recipe_lines (recipe_id, position, ingredient_id, quantity, is_base)
			VALUES (?, ?, ?, ?, ?)`),
			string(recipe.ID), i, string(line.IngredientID), line.Quantity, line.IsBaseIngredient)
		if err != nil {
			return fmt.Errorf("save line %d of %s: %w", i+1, recipe.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit recipe %s: %w", recipe.ID, err)
	}
	return nil
}

// LoadRecipes saves every recipe, each within its own query timeout
func (s *Store) LoadRecipes(recipes []*entities.Recipe) error {
	return s.saveEach(len(recipes), func(ctx context.Context, i int) error {
		return s.SaveRecipeContext(ctx, recipes[i])
	})
}

// GetRecipe returns the recipe with the given ID and its lines in order
func (s *Store) GetRecipe(id entities.RecipeID) (*entities.Recipe, error) {
	ctx, cancel := s.context()
	defer cancel()

	row := s.db.QueryRowContext(ctx, s.rebind(selectRecipe+` WHERE id = ?`), string(id))
	recipe, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recipe %s: %w", id, entities.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe %s: %w", id, err)
	}

	if err := s.loadLines(ctx, []*entities.Recipe{recipe}); err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetAllRecipes returns all recipes ordered by ID
func (s *Store) GetAllRecipes() ([]*entities.Recipe, error) {
	ctx, cancel := s.context()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, selectRecipe+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	var recipes []*entities.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	if err := s.loadLines(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *Store) loadLines(ctx context.Context, recipes []*entities.Recipe) error {
	for _, recipe := range recipes {
		rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT ingredient_id, quantity, is_base FROM recipe_lines
			WHERE recipe_id = ? ORDER BY position`), string(recipe.ID))
		if err != nil {
			return fmt.Errorf("lines of %s: %w", recipe.ID, err)
		}
		for rows.Next() {
			var (
				line         entities.IngredientLine
				ingredientID string
			)
			if err := rows.Scan(&ingredientID, &line.Quantity, &line.IsBaseIngredient); err != nil {
				_ = rows.Close()
				return fmt.Errorf("scan line of %s: %w", recipe.ID, err)
			}
			line.IngredientID = entities.IngredientID(ingredientID)
			recipe.Lines = append(recipe.Lines, line)
		}
		err = rows.Err()
		_ = rows.Close()
		if err != nil {
			return fmt.Errorf("lines of %s: %w", recipe.ID, err)
		}
	}
	return nil
}

func scanRecipe(row scanner) (*entities.Recipe, error) {
	var (
		recipe             entities.Recipe
		id, system         string
		baseMass, unitMass sql.NullFloat64
	)
	if err := row.Scan(&id, &recipe.Name, &recipe.YieldUnits, &system, &baseMass, &unitMass); err != nil {
		return nil, err
	}
	calc, err := entities.ParseCalculationSystem(system)
	if err != nil {
		return nil, fmt.Errorf("recipe %s: %w", id, err)
	}
	recipe.ID = entities.RecipeID(id)
	recipe.CalculationSystem = calc
	if baseMass.Valid {
		recipe.BaseMassGrams = &baseMass.Float64
	} else if calc == entities.Percentage {
		recipe.WithBaseMass(entities.DefaultBaseMassGrams)
	}
	if unitMass.Valid {
		recipe.UnitWeightGrams = &unitMass.Float64
	}
	recipe.Lines = []entities.IngredientLine{}
	return &recipe, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
