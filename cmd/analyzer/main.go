// Command analyzer serves the text analysis API.
//
// It precomputes the reference samples, then exposes POST /api/v1/analyze,
// POST /api/v1/compare and GET /api/v1/samples. Redis result caching and
// Kafka analysis events are enabled from the config file.
//
// Usage:
//
//	go run ./cmd/analyzer [-config configs/development.yaml]
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

	"github.com/ParticlesofMind/english-language-analysis/internal/analytics"
	"github.com/ParticlesofMind/english-language-analysis/internal/analyzer/validator"
	"github.com/ParticlesofMind/english-language-analysis/internal/api/cache"
	"github.com/ParticlesofMind/english-language-analysis/internal/api/handler"
	"github.com/ParticlesofMind/english-language-analysis/internal/samples"
	"github.com/ParticlesofMind/english-language-analysis/pkg/config"
	"github.com/ParticlesofMind/english-language-analysis/pkg/health"
	"github.com/ParticlesofMind/english-language-analysis/pkg/kafka"
	"github.com/ParticlesofMind/english-language-analysis/pkg/logger"
	"github.com/ParticlesofMind/english-language-analysis/pkg/metrics"
	"github.com/ParticlesofMind/english-language-analysis/pkg/middleware"
	"github.com/ParticlesofMind/english-language-analysis/pkg/ratelimit"
	pkgredis "github.com/ParticlesofMind/english-language-analysis/pkg/redis"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting analyzer service", "port", cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	corpus, err := samples.Load(ctx, cfg.Analysis.SampleWindow, cfg.Analysis.ExcerptLength)
	if err != nil {
		slog.Error("failed to load reference samples", "error", err)
		os.Exit(1)
	}
	slog.Info("reference samples loaded", "count", corpus.Len(), "window", cfg.Analysis.SampleWindow)

	m := metrics.New(prometheus.DefaultRegisterer)
	if cfg.Metrics.Enabled {
		shutdownMetrics := metrics.StartServer(cfg.Metrics.Port, prometheus.DefaultGatherer)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownMetrics(shutdownCtx)
		}()
	}

	checker := health.NewChecker()
	checker.Register("samples", func(ctx context.Context) health.ComponentHealth {
		if corpus.Len() == 0 {
			return health.ComponentHealth{Status: health.StatusDown, Message: "no samples loaded"}
		}
		return health.ComponentHealth{Status: health.StatusUp, Message: fmt.Sprintf("%d samples", corpus.Len())}
	})

	var resultCache *cache.ResultCache
	if cfg.Redis.Enabled {
		redisClient, err := pkgredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, result caching disabled", "error", err)
			checker.Register("redis", health.Static(health.StatusDegraded, "unavailable at startup"))
		} else {
			defer redisClient.Close()
			resultCache = cache.New(redisClient, cfg.Redis.CacheTTL, m)
			checker.Register("redis", health.Ping(redisClient.Ping))
			slog.Info("result cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
		}
	}

	var tracker handler.Tracker
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.AnalysisEvents)
		collector := analytics.NewCollector(producer, cfg.Analytics.BufferSize)
		collector.Start(ctx)
		defer func() {
			collector.Close()
			if err := producer.Close(); err != nil {
				slog.Error("closing kafka producer", "error", err)
			}
		}()
		tracker = collector
		checker.Register("kafka", health.Ping(func(ctx context.Context) error {
			return kafka.Ping(ctx, cfg.Kafka.Brokers)
		}))
		slog.Info("analysis events enabled", "topic", cfg.Kafka.Topics.AnalysisEvents)
	}

	h := handler.New(handler.Options{
		Corpus:  corpus,
		Cache:   resultCache,
		Tracker: tracker,
		Policy:  validator.PolicyFromConfig(cfg.Analysis),
		Metrics: m,
	})

	mux := http.NewServeMux()
	h.Routes(mux)
	mux.HandleFunc("GET /health/live", checker.LiveHandler())
	mux.HandleFunc("GET /health/ready", checker.ReadyHandler())

	middlewares := []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.Trace(cfg.Server.SlowRequestThreshold),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(m),
	}
	if cfg.RateLimit.Enabled {
		limiter := ratelimit.New(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		limiter.StartSweeper(time.Minute, 10*time.Minute, ctx.Done())
		middlewares = append(middlewares, middleware.RateLimit(limiter, m))
	}
	middlewares = append(middlewares, middleware.Timeout(cfg.Server.RequestTimeout))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      middleware.Chain(mux, middlewares...),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		slog.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("analyzer service listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	// In-flight handlers still Track events until Shutdown returns; the
	// deferred collector and client closes must run after that.
	<-shutdownDone

	slog.Info("analyzer service stopped")
}
