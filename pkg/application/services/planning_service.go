package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/bakeplan/pkg/application/dto"
	"github.com/vsinha/bakeplan/pkg/domain/entities"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
	domain "github.com/vsinha/bakeplan/pkg/domain/services"
	"github.com/vsinha/bakeplan/pkg/infrastructure/events"
	"github.com/vsinha/bakeplan/pkg/infrastructure/metrics"
)

// PlanningService turns a list of production items into aggregated ingredient
// requirements, a stock report and a cost estimate.
type PlanningService struct {
	recipes     repositories.RecipeRepository
	ingredients repositories.IngredientRepository
	eventStore  events.EventStore
	metrics     *metrics.Recorder
	logger      *zap.Logger
	now         func() time.Time
}

// Option customizes a PlanningService
type Option func(*PlanningService)

func WithEventStore(store events.EventStore) Option {
	return func(s *PlanningService) { s.eventStore = store }
}

func WithMetrics(recorder *metrics.Recorder) Option {
	return func(s *PlanningService) { s.metrics = recorder }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *PlanningService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for GeneratedAt
func WithClock(now func() time.Time) Option {
	return func(s *PlanningService) { s.now = now }
}

func NewPlanningService(
	recipes repositories.RecipeRepository,
	ingredients repositories.IngredientRepository,
	opts ...Option,
) *PlanningService {
	s := &PlanningService{
		recipes:     recipes,
		ingredients: ingredients,
		logger:      zap.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlanProduction resolves every item, sums shared ingredients and checks the
// totals against current stock.
func (s *PlanningService) PlanProduction(ctx context.Context, items []*entities.PlanItem) (result *dto.PlanResult, err error) {
	start := time.Now()
	defer func() {
		s.metrics.ObservePlan(time.Since(start), err)
	}()

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: production plan has no items", entities.ErrInvalidInput)
	}

	planID := uuid.NewString()
	logger := s.logger.With(zap.String("plan_id", planID))
	logger.Info("planning production", zap.Int("items", len(items)))

	result = &dto.PlanResult{
		PlanID:       planID,
		Items:        make([]entities.PlanItem, 0, len(items)),
		Resolutions:  make([]*entities.Resolution, 0, len(items)),
		Requirements: entities.NewRequirements(),
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("%w: nil plan item", entities.ErrInvalidInput)
		}

		recipe, err := s.recipes.GetRecipe(item.RecipeID)
		if err != nil {
			return nil, fmt.Errorf("failed to load recipe: %w", err)
		}

		resolution, err := domain.ResolveInto(result.Requirements, recipe, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", item.RecipeID, err)
		}
		s.metrics.RecipeResolved(recipe.CalculationSystem.String())

		logger.Debug("recipe resolved",
			zap.String("recipe_id", string(recipe.ID)),
			zap.Float64("quantity", item.Quantity),
			zap.Float64("scale_factor", resolution.ScaleFactor),
			zap.Float64("adjustment_factor", resolution.AdjustmentFactor))

		if resolution.Unadjusted {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("recipe %s has no unit weight; percentage masses are unadjusted", recipe.ID))
		}
		if resolution.Underspecified {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("recipe %s has a zero theoretical total; adjustment skipped", recipe.ID))
		}

		result.Items = append(result.Items, *item)
		result.Resolutions = append(result.Resolutions, resolution)
	}

	ingredients, err := s.ingredients.GetIngredients(result.Requirements.IDs())
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}

	result.StockReport, err = domain.CheckStockSufficiency(result.Requirements, ingredients)
	if err != nil {
		return nil, fmt.Errorf("failed to check stock: %w", err)
	}
	result.Sufficient = domain.AllSufficient(result.StockReport)
	result.Cost = domain.RequirementsCost(result.Requirements, ingredients)

	for _, line := range result.StockReport {
		switch {
		case line.Unknown:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("ingredient %s is not in the catalog", line.IngredientID))
		case line.BelowMinimum && line.Sufficient:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("ingredient %s drops below minimum stock", line.IngredientID))
		}
	}

	result.GeneratedAt = s.now().UTC()
	result.Elapsed = time.Since(start)

	shortages := result.Shortages()
	s.metrics.Shortages(len(shortages))
	s.publish(logger, result, shortages)

	logger.Info("production planned",
		zap.Int("ingredients", result.Requirements.Len()),
		zap.Int("shortages", len(shortages)),
		zap.String("total_cost", result.Cost.Total.StringFixed(2)),
		zap.Duration("elapsed", result.Elapsed))

	return result, nil
}

func (s *PlanningService) publish(logger *zap.Logger, result *dto.PlanResult, shortages []entities.StockLine) {
	if s.eventStore == nil {
		return
	}

	var batch []events.Event
	batch = append(batch, events.NewPlanResolvedEvent(result.PlanID, result.Items, result.Requirements, result.Sufficient))
	for _, resolution := range result.Resolutions {
		if resolution.Unadjusted || resolution.Underspecified {
			batch = append(batch, events.NewRecipeUnderspecifiedEvent(result.PlanID, resolution))
		}
	}
	for _, line := range shortages {
		batch = append(batch, events.NewStockShortageEvent(result.PlanID, line))
	}

	for _, event := range batch {
		if err := s.eventStore.AppendEvent(event.StreamID(), event); err != nil {
			logger.Warn("failed to publish event", zap.String("event_type", event.Type()), zap.Error(err))
		}
	}
}
