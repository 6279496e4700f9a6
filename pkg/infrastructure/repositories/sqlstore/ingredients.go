package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/bakeplan/pkg/domain/entities"
)

const selectIngredient = `SELECT id, name, unit, current_stock, minimum_stock, unit_cost FROM ingredients`

// SaveIngredientContext inserts or replaces an ingredient
func (s *Store) SaveIngredientContext(ctx context.Context, ingredient *entities.Ingredient) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`INSERT INTO ingredients (id, name, unit, current_stock, minimum_stock, unit_cost)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			unit = excluded.unit,
			current_stock = excluded.current_stock,
			minimum_stock = excluded.minimum_stock,
			unit_cost = excluded.unit_cost`),
		string(ingredient.ID), ingredient.Name, string(ingredient.Unit),
		ingredient.CurrentStock, ingredient.MinimumStock, ingredient.UnitCost.String())
	if err != nil {
		return fmt.Errorf("save ingredient %s: %w", ingredient.ID, err)
	}
	return nil
}

// LoadIngredients saves every ingredient, each within its own query timeout
func (s *Store) LoadIngredients(ingredients []*entities.Ingredient) error {
	return s.saveEach(len(ingredients), func(ctx context.Context, i int) error {
		return s.SaveIngredientContext(ctx, ingredients[i])
	})
}

// GetIngredient returns the ingredient with the given ID
func (s *Store) GetIngredient(id entities.IngredientID) (*entities.Ingredient, error) {
	ctx, cancel := s.context()
	defer cancel()

	row := s.db.QueryRowContext(ctx, s.rebind(selectIngredient+` WHERE id = ?`), string(id))
	ingredient, err := scanIngredient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ingredient %s: %w", id, entities.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get ingredient %s: %w", id, err)
	}
	return ingredient, nil
}

// GetIngredients returns the known ingredients among ids, in request order
func (s *Store) GetIngredients(ids []entities.IngredientID) ([]*entities.Ingredient, error) {
	all, err := s.GetAllIngredients()
	if err != nil {
		return nil, err
	}
	byID := make(map[entities.IngredientID]*entities.Ingredient, len(all))
	for _, ingredient := range all {
		byID[ingredient.ID] = ingredient
	}

	ingredients := make([]*entities.Ingredient, 0, len(ids))
	for _, id := range ids {
		if ingredient, ok := byID[id]; ok {
			ingredients = append(ingredients, ingredient)
		}
	}
	return ingredients, nil
}

// GetAllIngredients returns all ingredients ordered by ID
func (s *Store) GetAllIngredients() ([]*entities.Ingredient, error) {
	ctx, cancel := s.context()
	defer cancel()

	rows, err := s.db.QueryContext(ctx, selectIngredient+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ingredients []*entities.Ingredient
	for rows.Next() {
		ingredient, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIngredient(row scanner) (*entities.Ingredient, error) {
	var (
		ingredient entities.Ingredient
		id, unit   string
		cost       string
	)
	if err := row.Scan(&id, &ingredient.Name, &unit, &ingredient.CurrentStock, &ingredient.MinimumStock, &cost); err != nil {
		return nil, err
	}
	ingredient.ID = entities.IngredientID(id)
	ingredient.Unit = entities.Unit(unit)
	unitCost, err := decimal.NewFromString(cost)
	if err != nil {
		return nil, fmt.Errorf("ingredient %s: invalid unit cost %q: %w", id, cost, err)
	}
	ingredient.UnitCost = unitCost
	return &ingredient, nil
}
