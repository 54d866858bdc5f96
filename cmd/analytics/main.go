// Command analytics consumes analysis events from Kafka, aggregates them in
// memory and serves the totals at GET /api/v1/analytics. With PostgreSQL
// enabled it also snapshots the totals periodically and serves the history
// at GET /api/v1/analytics/snapshots.
//
// Usage:
//
//	go run ./cmd/analytics [-config configs/development.yaml]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/ParticlesofMind/english-language-analysis/internal/analytics"
	"github.com/ParticlesofMind/english-language-analysis/internal/analytics/store"
	"github.com/ParticlesofMind/english-language-analysis/pkg/config"
	"github.com/ParticlesofMind/english-language-analysis/pkg/health"
	"github.com/ParticlesofMind/english-language-analysis/pkg/kafka"
	"github.com/ParticlesofMind/english-language-analysis/pkg/logger"
	"github.com/ParticlesofMind/english-language-analysis/pkg/metrics"
	"github.com/ParticlesofMind/english-language-analysis/pkg/middleware"
	"github.com/ParticlesofMind/english-language-analysis/pkg/postgres"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if !cfg.Kafka.Enabled {
		fmt.Fprintln(os.Stderr, "analytics service requires kafka.enabled")
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting analytics service", "port", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(prometheus.DefaultRegisterer)
	if cfg.Metrics.Enabled {
		shutdownMetrics := metrics.StartServer(cfg.Metrics.Port, prometheus.DefaultGatherer)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownMetrics(shutdownCtx)
		}()
	}

	aggregator := analytics.NewAggregator(m)
	consumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.Topics.AnalysisEvents, analytics.HandleEvent(aggregator))

	checker := health.NewChecker()
	checker.Register("kafka", health.Ping(func(ctx context.Context) error {
		return kafka.Ping(ctx, cfg.Kafka.Brokers)
	}))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.Start(gctx)
	})

	var snapshots analytics.SnapshotLister
	if cfg.Postgres.Enabled {
		db, err := postgres.New(ctx, cfg.Postgres)
		if err != nil {
			slog.Error("postgres unavailable", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		st := store.New(db)
		if err := st.Migrate(ctx); err != nil {
			slog.Error("migrating snapshot table", "error", err)
			os.Exit(1)
		}
		snapshots = st
		checker.Register("postgres", health.Ping(db.Ping))
		g.Go(func() error {
			st.Run(gctx, aggregator, cfg.Analytics.SnapshotInterval)
			return nil
		})
	}
	slog.Info("analytics aggregator started", "topic", cfg.Kafka.Topics.AnalysisEvents)

	analyticsHandler := analytics.NewHandler(aggregator, snapshots)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/analytics", analyticsHandler.Stats)
	mux.HandleFunc("GET /api/v1/analytics/snapshots", analyticsHandler.Snapshots)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      middleware.Chain(mux, middleware.RequestID, middleware.CORS(cfg.CORS), middleware.Metrics(m)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	slog.Info("analytics service listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		stop()
	}
	if err := g.Wait(); err != nil {
		slog.Error("analytics service error", "error", err)
	}

	slog.Info("analytics service stopped")
}
