package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"sneaker-dashboard/internal/charts"
	"sneaker-dashboard/internal/config"
	"sneaker-dashboard/internal/dataset"
	"sneaker-dashboard/internal/middleware"
	"sneaker-dashboard/internal/models"
	"sneaker-dashboard/internal/observability"
	"sneaker-dashboard/internal/query"
	"sneaker-dashboard/internal/server"
	"sneaker-dashboard/internal/ui/templates"
)

const (
	version        = "1.0.0"
	renderTimeout  = 10 * time.Second
	datasetTimeout = 2 * time.Minute
)

// dashboardHandler renders the page with the default selection already
// computed, so the first paint needs no SSE round trip.
func dashboardHandler(engine *query.Engine, defaultBrand string, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
		defer cancel()

		ds := engine.Dataset()
		res := engine.Run(ctx, engine.DefaultFilter(defaultBrand))

		page := templates.Dashboard(templates.DashboardData{
			Regions:      ds.Regions(),
			Brands:       ds.Brands(),
			Sizes:        ds.Sizes(),
			DefaultBrand: defaultBrand,
			MinDate:      ds.MinDate().Format(models.DateLayout),
			MaxDate:      ds.MaxDate().Format(models.DateLayout),
			Figures:      charts.Build(res),
			Summary:      res.Summary,
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		if err := page.Render(ctx, w); err != nil {
			logger.ErrorContext(ctx, "render dashboard", "error", err)
			http.Error(w, "render error", http.StatusInternalServerError)
		}
	}
}

func newHandler(cfg *config.Config, engine *query.Engine, metrics *observability.Metrics, logger *slog.Logger) http.Handler {
	templateHandlers := &server.TemplateHandlers{
		Dashboard: dashboardHandler(engine, cfg.Dataset.DefaultBrand, logger),
	}

	srv := server.NewServer(engine, cfg.Dataset.DefaultBrand, metrics, logger, templateHandlers)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Tracing(),
		middleware.Logger(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
		middleware.Metrics(metrics),
	)

	return middlewareChain(srv)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", version,
		"config", cfg,
	)

	shutdownTracing, err := observability.SetupTracing(context.Background(), cfg.Telemetry)
	if err != nil {
		logger.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), datasetTimeout)
	ds, err := dataset.NewLoader(logger).Load(ctx, cfg.Dataset)
	cancel()
	if err != nil {
		logger.Error("failed to load dataset", "source", cfg.Dataset.Source, "error", err)
		os.Exit(1)
	}

	if !ds.HasBrand(cfg.Dataset.DefaultBrand) {
		logger.Warn("default brand not present in dataset; charts start empty",
			"brand", cfg.Dataset.DefaultBrand,
			"brands", ds.Brands(),
		)
	}

	metrics := observability.NewMetrics()
	engine := query.NewEngine(ds, query.WithMetrics(metrics))

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      newHandler(cfg, engine, metrics, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg.Server)
	gracefulServer.RegisterShutdownHook("tracing", shutdownTracing)

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
