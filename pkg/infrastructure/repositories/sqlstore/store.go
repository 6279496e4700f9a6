// Package sqlstore persists the recipe catalog and ingredient stock in SQL.
// The same schema runs on SQLite (modernc.org/sqlite, pure Go) for single-site
// installs and on Postgres through the pgx database/sql driver.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	"github.com/vsinha/bakeplan/pkg/domain/repositories"
)

// Driver names accepted by Open
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const defaultQueryTimeout = 5 * time.Second

// Store is a SQL-backed recipe and ingredient repository
type Store struct {
	db           *sql.DB
	driver       string
	queryTimeout time.Duration
}

// Verify interface compliance
var _ repositories.RecipeRepository = (*Store)(nil)
var _ repositories.IngredientRepository = (*Store)(nil)

// Open connects to the store and applies the schema. For SQLite the DSN is a
// file path; an empty path means "bakeplan.db".
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	var sqlDriver string
	switch driver {
	case DriverSQLite, "":
		driver, sqlDriver = DriverSQLite, "sqlite"
		if dsn == "" {
			dsn = "bakeplan.db"
		}
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
				return nil, fmt.Errorf("create dirs: %w", err)
			}
		}
	case DriverPostgres, "pgx":
		driver, sqlDriver = DriverPostgres, "pgx"
		if dsn == "" {
			return nil, fmt.Errorf("postgres store needs a DSN")
		}
	default:
		return nil, fmt.Errorf("unsupported store driver: %s (expected sqlite or postgres)", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// one connection keeps writers serialized
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	s := &Store{db: db, driver: driver, queryTimeout: defaultQueryTimeout}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// Driver returns the normalized driver name
func (s *Store) Driver() string {
	return s.driver
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ingredients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		unit TEXT NOT NULL,
		current_stock DOUBLE PRECISION NOT NULL DEFAULT 0,
		minimum_stock DOUBLE PRECISION NOT NULL DEFAULT 0,
		unit_cost TEXT NOT NULL DEFAULT '0'
	)`,
	`CREATE TABLE IF NOT EXISTS recipes (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		yield_units DOUBLE PRECISION NOT NULL,
		calculation_system TEXT NOT NULL,
		base_mass_grams DOUBLE PRECISION,
		unit_weight_grams DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS recipe_lines (
		recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		ingredient_id TEXT NOT NULL,
		quantity DOUBLE PRECISION NOT NULL,
		is_base BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (recipe_id, position)
	)`,
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// rebind rewrites ? placeholders to $n for Postgres
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *Store) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.queryTimeout)
}

// saveEach runs save for indexes 0..n-1 with a fresh timeout per call
func (s *Store) saveEach(n int, save func(ctx context.Context, i int) error) error {
	for i := 0; i < n; i++ {
		ctx, cancel := s.context()
		err := save(ctx, i)
		cancel()
		if err != nil {
			return err
		}
	}
	return nil
}
