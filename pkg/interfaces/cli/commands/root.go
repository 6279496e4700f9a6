package commands

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/bakeplan/pkg/infrastructure/config"
	"github.com/vsinha/bakeplan/pkg/infrastructure/logging"
	"github.com/vsinha/bakeplan/pkg/infrastructure/repositories/sqlstore"
	"github.com/vsinha/bakeplan/pkg/interfaces/cli/output"
)

// NewRootCommand builds the bakeplan command tree writing to out
func NewRootCommand(out io.Writer) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "bakeplan",
		Short: "Bakery production planner",
		Long: `bakeplan scales recipes to a production plan, sums the ingredient
masses shared between recipes and checks them against current stock.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&logLevel, "log-level", "off", "Log level: off, info, debug")

	newLogger := func() (*zap.Logger, error) {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return nil, err
		}
		return logging.New(level)
	}

	root.AddCommand(
		newPlanCmd(out, newLogger),
		newCheckCmd(out, newLogger),
		newImportCmd(out, newLogger),
		newServeCmd(),
	)
	return root
}

func bindSourceFlags(cmd *cobra.Command, cfg *Config) {
	f := cmd.Flags()
	f.StringVar(&cfg.ScenarioDir, "scenario", "", "Scenario directory with catalog.yaml or ingredients.csv, recipes.csv, recipe_lines.csv and plan.csv")
	f.StringVar(&cfg.CatalogFile, "catalog", "", "YAML catalog file")
	f.StringVar(&cfg.PlanFile, "plan", "", "Production plan CSV (recipe_id,quantity)")
	f.StringVar(&cfg.StoreDriver, "driver", sqlstore.DriverSQLite, "SQL store driver used with --dsn: sqlite or postgres")
	f.StringVar(&cfg.DSN, "dsn", "", "Read the catalog from a SQL store")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")
}

func newPlanCmd(out io.Writer, newLogger func() (*zap.Logger, error)) *cobra.Command {
	var cfg Config
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute ingredient requirements, stock report and cost for a production plan",
		Example: `  bakeplan plan --scenario examples/bakery
  bakeplan plan --catalog examples/bakery/catalog.yaml --plan examples/bakery/plan.csv --format json
  bakeplan plan --scenario examples/bakery --format csv --output results/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return NewPlanCommand(cfg, logger, out).Execute(cmd.Context())
		},
	}
	bindSourceFlags(cmd, &cfg)
	cmd.Flags().StringVar(&cfg.Format, "format", output.FormatText, "Output format: text, json, csv")
	cmd.Flags().StringVar(&cfg.OutputDir, "output", "", "Output directory for results (required for csv)")
	return cmd
}

func newCheckCmd(out io.Writer, newLogger func() (*zap.Logger, error)) *cobra.Command {
	var cfg Config
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Print the stock report; exits with status 2 when stock is insufficient",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return NewCheckCommand(cfg, logger, out).Execute(cmd.Context())
		},
	}
	bindSourceFlags(cmd, &cfg)
	return cmd
}

func newImportCmd(out io.Writer, newLogger func() (*zap.Logger, error)) *cobra.Command {
	var cfg ImportConfig
	cmd := &cobra.Command{
		Use:     "import",
		Short:   "Load a YAML or CSV catalog into a SQL store",
		Example: `  bakeplan import --catalog examples/bakery/catalog.yaml --dsn data/bakeplan.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return NewImportCommand(cfg, logger, out).Execute(cmd.Context())
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.ScenarioDir, "scenario", "", "Scenario directory to import")
	f.StringVar(&cfg.CatalogFile, "catalog", "", "YAML catalog file to import")
	f.StringVar(&cfg.StoreDriver, "driver", sqlstore.DriverSQLite, "SQL store driver: sqlite or postgres")
	f.StringVar(&cfg.DSN, "dsn", "", "Store DSN (sqlite file path or postgres URL)")
	return cmd
}

func newServeCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			level := cfg.LogLevel
			if cmd.Flags().Changed("log-level") {
				level = cmd.Flag("log-level").Value.String()
			}
			parsed, err := logging.ParseLevel(level)
			if err != nil {
				return err
			}
			logger, err := logging.New(parsed)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return NewServeCommand(cfg, logger).Execute(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file (BAKEPLAN_* variables override it)")
	return cmd
}
