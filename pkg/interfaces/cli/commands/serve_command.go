package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/bakeplan/pkg/application/services"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
	"github.com/vsinha/bakeplan/pkg/infrastructure/config"
	"github.com/vsinha/bakeplan/pkg/infrastructure/metrics"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/sqlstore"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/yamlcat"
	"github.com/vsinha/bakeplan/pkg/interfaces/api"
)

// serveEventCapacity bounds the events a long-running server keeps in memory
const serveEventCapacity = 1024

// ServeCommand runs the HTTP API until its context is cancelled
type ServeCommand struct {
	config *config.Config
	logger *zap.Logger
}

func NewServeCommand(cfg *config.Config, logger *zap.Logger) *ServeCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ServeCommand{config: cfg, logger: logger}
}

// Execute runs the serve command
func (c *ServeCommand) Execute(ctx context.Context) error {
	recipes, ingredients, closeStore, err := c.openRepositories(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	recorder := metrics.NewRecorder()
	planner := services.NewPlanningService(recipes, ingredients,
		services.WithEventStore(newEventStore(c.logger, serveEventCapacity)),
		services.WithMetrics(recorder),
		services.WithLogger(c.logger),
	)

	server := api.NewServer(api.Options{
		Planner:        planner,
		Recipes:        recipes,
		Ingredients:    ingredients,
		Metrics:        recorder,
		Logger:         c.logger,
		AllowedOrigins: c.config.HTTP.AllowedOrigins,
	})
	return server.Run(ctx, c.config.HTTP.Addr, c.config.HTTP.ShutdownTimeout)
}

func (c *ServeCommand) openRepositories(ctx context.Context) (repositories.RecipeRepository, repositories.IngredientRepository, func() error, error) {
	store := c.config.Store
	switch store.Driver {
	case config.StoreSQLite, config.StorePostgres:
		db, err := sqlstore.Open(ctx, store.Driver, store.DSN)
		if err != nil {
			return nil, nil, nil, err
		}
		c.logger.Info("using sql store", zap.String("driver", db.Driver()))
		return db, db, db.Close, nil

	default:
		recipeRepo := memory.NewRecipeRepository(0)
		ingredientRepo := memory.NewIngredientRepository(0)
		if store.Catalog != "" {
			catalog, err := yamlcat.Load(store.Catalog)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("error loading catalog: %w", err)
			}
			if err := recipeRepo.LoadRecipes(catalog.Recipes); err != nil {
				return nil, nil, nil, err
			}
			if err := ingredientRepo.LoadIngredients(catalog.Ingredients); err != nil {
				return nil, nil, nil, err
			}
			c.logger.Info("catalog loaded",
				zap.String("path", store.Catalog),
				zap.Int("recipes", len(catalog.Recipes)),
				zap.Int("ingredients", len(catalog.Ingredients)))
		}
		return recipeRepo, ingredientRepo, func() error { return nil }, nil
	}
}
