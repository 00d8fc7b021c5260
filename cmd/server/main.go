package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/plaugmann/family-meal-planner/internal/api"
	"github.com/plaugmann/family-meal-planner/internal/assist"
	"github.com/plaugmann/family-meal-planner/internal/config"
	"github.com/plaugmann/family-meal-planner/internal/core"
	"github.com/plaugmann/family-meal-planner/internal/httpx"
	"github.com/plaugmann/family-meal-planner/internal/noads"
	"github.com/plaugmann/family-meal-planner/internal/recipe"
	"github.com/plaugmann/family-meal-planner/internal/scrape"
	"github.com/plaugmann/family-meal-planner/internal/sitesearch"
	"github.com/plaugmann/family-meal-planner/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.NewFromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	dbStore, err := store.NewStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to store", "error", err)
		os.Exit(1)
	}
	defer dbStore.Close()

	// Run schema migrations to ensure tables and new columns exist
	workDir, _ := os.Getwd()
	schemaPath := filepath.Join(workDir, "internal", "store", "schema.sql")
	if err := dbStore.RunMigrations(schemaPath); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var source recipe.Source
	switch cfg.RecipeBackend {
	case config.BackendScrape:
		var opts []httpx.PoliteOption
		if cfg.NoAdsInsecureTLS {
			opts = append(opts, httpx.WithInsecureTLS())
		}
		source = scrape.NewDirect(httpx.NewPoliteClient(cfg.UserAgent, opts...))
	default:
		var opts []noads.Option
		if cfg.NoAdsBaseURL != "" {
			opts = append(opts, noads.WithBaseURL(cfg.NoAdsBaseURL))
		}
		if cfg.NoAdsInsecureTLS {
			opts = append(opts, noads.WithInsecureTLS())
		}
		source = noads.NewClient(opts...)
	}
	slog.Info("recipe backend selected", "backend", cfg.RecipeBackend)

	importer := core.NewImportService(dbStore, source)
	shopping := core.NewShoppingListService(dbStore)
	searcher := sitesearch.NewSearcher(httpx.NewCollyFetcher(cfg.UserAgent), sitesearch.DefaultSites())
	assistant := assist.NewClient(ctx, cfg.GeminiAPIKey)

	// Start expired session cleanup loop
	scheduler := core.NewSchedulerService(dbStore)
	scheduler.Start(ctx)

	srv := api.NewServer(dbStore, importer, shopping, searcher, assistant, api.Options{
		SingleTenant: cfg.SingleTenant,
		DefaultPin:   cfg.DefaultPin,
		SecureCookie: cfg.SecureCookie,
		SessionTTL:   cfg.SessionTTL,
	})

	slog.Info("starting server", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
