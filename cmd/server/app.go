package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phrazzld/nutrisnap/internal/api"
	"github.com/phrazzld/nutrisnap/internal/config"
	"github.com/phrazzld/nutrisnap/internal/events"
	"github.com/phrazzld/nutrisnap/internal/nutrition"
	"github.com/phrazzld/nutrisnap/internal/platform/gemini"
	"github.com/phrazzld/nutrisnap/internal/platform/openai"
	"github.com/phrazzld/nutrisnap/internal/platform/sqlitekv"
	"github.com/phrazzld/nutrisnap/internal/recognition"
	"github.com/phrazzld/nutrisnap/internal/service"
	"github.com/phrazzld/nutrisnap/internal/store"
)

// application holds the assembled dependency graph.
type application struct {
	config *config.Config
	logger *slog.Logger

	kv       *sqlitekv.Store
	meals    *service.MealService
	weights  *service.WeightService
	profiles *service.ProfileService
}

// newApplication wires the application from configuration: storage, then
// repositories, then services, then the recognition client. Each repository
// is constructed once and handed to the single service that owns its entity.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	kv, err := sqlitekv.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	analyzer, err := buildAnalyzer(ctx, cfg.Recognition, logger)
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("failed to build recognition client: %w", err)
	}

	emitter := events.NewInMemoryEmitter(logger)

	meals, err := service.NewMealService(store.NewMealRepository(kv), analyzer, emitter, logger)
	if err != nil {
		kv.Close()
		return nil, err
	}
	weights, err := service.NewWeightService(store.NewWeightRepository(kv), logger)
	if err != nil {
		kv.Close()
		return nil, err
	}
	profiles, err := service.NewProfileService(store.NewProfileRepository(kv), store.NewGoalRepository(kv), logger)
	if err != nil {
		kv.Close()
		return nil, err
	}

	app := &application{
		config:   cfg,
		logger:   logger,
		kv:       kv,
		meals:    meals,
		weights:  weights,
		profiles: profiles,
	}

	if err := app.loadState(ctx); err != nil {
		kv.Close()
		return nil, err
	}
	return app, nil
}

// buildAnalyzer selects the recognition backend from configuration.
func buildAnalyzer(ctx context.Context, cfg config.RecognitionConfig, logger *slog.Logger) (recognition.Analyzer, error) {
	switch cfg.Provider {
	case "openai":
		model := cfg.Model
		if model == "" {
			model = "gpt-4o"
		}
		return openai.NewAnalyzer(openai.Config{
			APIKey:  cfg.APIKey,
			Model:   model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}, logger)
	case "gemini":
		model := cfg.Model
		if model == "" {
			model = "gemini-2.0-flash"
		}
		return gemini.NewAnalyzer(ctx, gemini.Config{
			APIKey: cfg.APIKey,
			Model:  model,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown recognition provider %q", cfg.Provider)
	}
}

// loadState restores the persisted snapshots before serving traffic.
func (app *application) loadState(ctx context.Context) error {
	if err := app.meals.Load(ctx); err != nil {
		return fmt.Errorf("failed to load meal entries: %w", err)
	}
	if err := app.weights.Load(ctx); err != nil {
		return fmt.Errorf("failed to load weight ledger: %w", err)
	}
	if err := app.profiles.Load(ctx); err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	return nil
}

// router builds the HTTP surface over the application's services.
func (app *application) router() http.Handler {
	return api.NewRouter(api.RouterDeps{
		Meals:     app.meals,
		Weights:   app.weights,
		Profiles:  app.profiles,
		Nutrition: nutrition.NewAggregator(app.meals),
	})
}

// run starts the HTTP server and blocks until shutdown completes.
func (app *application) run(ctx context.Context) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: app.router(),
	}

	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		app.logger.Info("Starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.logger.Error("Server failed", "error", err)
			cancelServer()
		}
	}()

	select {
	case <-shutdownCh:
		app.logger.Info("Shutting down server...")
	case <-serverCtx.Done():
		app.logger.Info("Server context canceled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("Server shutdown failed", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.cleanup()
	app.logger.Info("Server shutdown completed")
	return nil
}

// cleanup drains in-flight analyses and closes storage.
func (app *application) cleanup() {
	app.meals.Close()
	if err := app.kv.Close(); err != nil {
		app.logger.Error("failed to close storage", "error", err)
	}
}
