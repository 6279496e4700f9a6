package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/vsinha/bakeplan/pkg/application/dto"
	"github.com/vsinha/bakeplan/pkg/application/services"
	domain "github.com/vsinha/bakeplan/pkg/domain/services"
	"github.com/vsinha/bakeplan/pkg/infrastructure/events"
	"github.com/vsinha/bakeplan/pkg/interfaces/cli/output"
)

// Config holds configuration for the plan and check commands
type Config struct {
	Source
	OutputDir string
	Format    string
	Verbose   bool
}

// PlanCommand computes a production plan and renders it
type PlanCommand struct {
	config Config
	logger *zap.Logger
	out    io.Writer
}

// NewPlanCommand creates a new plan command with the given configuration
func NewPlanCommand(config Config, logger *zap.Logger, out io.Writer) *PlanCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanCommand{config: config, logger: logger, out: out}
}

// Execute runs the plan command
func (c *PlanCommand) Execute(ctx context.Context) error {
	result, err := c.plan(ctx)
	if err != nil {
		return err
	}

	err = output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
		Writer:    c.out,
	})
	if err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}
	return nil
}

func (c *PlanCommand) plan(ctx context.Context) (*dto.PlanResult, error) {
	catalog, err := c.config.Source.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inputs: %w", err)
	}
	defer func() { _ = catalog.close() }()

	if c.config.Verbose {
		c.printHeader(catalog.files)
	}

	if err := c.validateCatalog(catalog); err != nil {
		return nil, err
	}

	items, err := catalog.plan.GetPlanItems()
	if err != nil {
		return nil, fmt.Errorf("failed to read plan: %w", err)
	}

	eventStore := newEventStore(c.logger, 0)
	planner := services.NewPlanningService(
		catalog.recipes,
		catalog.ingredients,
		services.WithEventStore(eventStore),
		services.WithLogger(c.logger),
	)

	result, err := planner.PlanProduction(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("error planning production: %w", err)
	}
	return result, nil
}

// newEventStore creates an event store that logs stock shortages. A positive
// capacity bounds how many events it retains.
func newEventStore(logger *zap.Logger, capacity int) *events.InMemoryEventStore {
	store := events.NewInMemoryEventStore(logger, events.WithCapacity(capacity))
	_ = store.Subscribe([]string{events.StockShortageEvent}, &events.HandlerFunc{
		Types: []string{events.StockShortageEvent},
		Fn: func(e events.Event) error {
			shortage, ok := e.Data().(events.StockShortage)
			if !ok {
				return fmt.Errorf("unexpected %s payload %T", e.Type(), e.Data())
			}
			logger.Warn("stock shortage",
				zap.String("plan_id", shortage.PlanID),
				zap.String("ingredient_id", string(shortage.Line.IngredientID)),
				zap.Float64("shortfall_grams", shortage.Line.ShortfallGrams))
			return nil
		},
	})
	return store
}

// validateCatalog refuses to plan against a catalog with structural errors
func (c *PlanCommand) validateCatalog(catalog *loadedCatalog) error {
	recipes, err := catalog.recipes.GetAllRecipes()
	if err != nil {
		return fmt.Errorf("failed to list recipes: %w", err)
	}
	ingredients, err := catalog.ingredients.GetAllIngredients()
	if err != nil {
		return fmt.Errorf("failed to list ingredients: %w", err)
	}

	validation := domain.NewRecipeValidator().ValidateCatalog(recipes, ingredients)
	if validation.HasErrors() {
		return fmt.Errorf("catalog validation failed: %s", strings.Join(validation.Errors, "; "))
	}
	for _, w := range validation.Warnings {
		c.logger.Warn("catalog warning", zap.String("warning", w))
		if c.config.Verbose {
			fmt.Fprintf(c.out, "warning: %s\n", w)
		}
	}
	return nil
}

// printHeader prints the command header information
func (c *PlanCommand) printHeader(files map[string]string) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(c.out, "Bakery production planner\n")
	fmt.Fprintf(c.out, "Input files:\n")
	for _, name := range names {
		fmt.Fprintf(c.out, "  %s: %s\n", name, files[name])
	}
	if c.config.DSN != "" {
		fmt.Fprintf(c.out, "  Store: %s\n", c.config.StoreDriver)
	}
	fmt.Fprintf(c.out, "Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Fprintf(c.out, "Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Fprintln(c.out)
}

// ExitError carries a process exit code for outcomes that are not failures
// of the tool itself, such as insufficient stock.
type ExitError struct {
	Code int
	Msg  string
}

func (e *ExitError) Error() string {
	return e.Msg
}

// CheckCommand prints only the stock report and signals shortages via ExitError
type CheckCommand struct {
	plan *PlanCommand
}

func NewCheckCommand(config Config, logger *zap.Logger, out io.Writer) *CheckCommand {
	return &CheckCommand{plan: NewPlanCommand(config, logger, out)}
}

// Execute runs the check command
func (c *CheckCommand) Execute(ctx context.Context) error {
	result, err := c.plan.plan(ctx)
	if err != nil {
		return err
	}

	if err := output.WriteStockReport(c.plan.out, result.StockReport); err != nil {
		return err
	}

	if !result.Sufficient {
		short := result.Shortages()
		ids := make([]string, len(short))
		for i, line := range short {
			ids[i] = string(line.IngredientID)
		}
		return &ExitError{Code: 2, Msg: fmt.Sprintf("insufficient stock for %s", strings.Join(ids, ", "))}
	}
	return nil
}
