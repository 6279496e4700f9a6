// Package api serves the planning engine over HTTP with gin.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vsinha/bakeplan/pkg/application/services"
	"github.com/vsinha/bakeplan/pkg/domain/repositories"
	"github.com/vsinha/bakeplan/pkg/infrastructure/metrics"
)

// Options wires the server's collaborators
type Options struct {
	Planner        *services.PlanningService
	Recipes        repositories.RecipeRepository
	Ingredients    repositories.IngredientRepository
	Metrics        *metrics.Recorder
	Logger         *zap.Logger
	AllowedOrigins []string
}

// Server owns the gin engine and the listening http.Server
type Server struct {
	engine *gin.Engine
	opts   Options
	logger *zap.Logger
}

func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger), requestMetrics(opts.Metrics))
	if len(opts.AllowedOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins: opts.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	s := &Server{engine: engine, opts: opts, logger: logger}
	s.routes()
	return s
}

func (s *Server) routes() {
	h := &handlers{planner: s.opts.Planner, recipes: s.opts.Recipes, ingredients: s.opts.Ingredients}

	s.engine.GET("/health", h.health)
	if s.opts.Metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.opts.Metrics.Handler()))
	}

	v1 := s.engine.Group("/v1")
	{
		v1.POST("/resolve", h.resolve)
		v1.POST("/stock-check", h.stockCheck)
		v1.POST("/plans", h.plan)
		v1.GET("/recipes", h.listRecipes)
		v1.GET("/recipes/:id", h.getRecipe)
		v1.GET("/ingredients", h.listIngredients)
	}
}

// Handler exposes the router, mainly for httptest
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then drains within shutdownTimeout
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
