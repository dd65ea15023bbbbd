package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/NathanielBerney/boiledegg/internal/config"
	"github.com/NathanielBerney/boiledegg/internal/db"
	dbRedis "github.com/NathanielBerney/boiledegg/internal/db/redis"
	"github.com/NathanielBerney/boiledegg/internal/domain"
	logpkg "github.com/NathanielBerney/boiledegg/internal/logger"
	"github.com/NathanielBerney/boiledegg/internal/metrics"
	"github.com/NathanielBerney/boiledegg/internal/repository/desccache"
	chiTransport "github.com/NathanielBerney/boiledegg/internal/transport/chi"
	"github.com/NathanielBerney/boiledegg/internal/transport/rdkit"
	batchuc "github.com/NathanielBerney/boiledegg/internal/usecase/batch"
	classifyuc "github.com/NathanielBerney/boiledegg/internal/usecase/classify"
	healthuc "github.com/NathanielBerney/boiledegg/internal/usecase/health"
	"github.com/NathanielBerney/boiledegg/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting boiledegg API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("descriptor_base_url", cfg.Descriptor.BaseURL),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// Register classifier metrics explicitly (no init())
	metrics.RegisterClassifierMetrics()

	// Optional descriptor cache store
	ctx := context.Background()
	var store db.Store
	if cfg.Cache.Enabled {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to cache store", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Build descriptor source chain — composition root
	source := buildDescriptorSource(cfg, store, logger)

	// Create use case services
	classifySvc := classifyuc.New(source, logger)
	batchSvc := batchuc.New(classifySvc, logger).WithWorkers(cfg.Classify.BatchWorkers)

	// Health service. The cache check only runs when caching is enabled.
	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(newSourceHealthChecker(source), cachePinger)

	// Create chi server
	server := chiTransport.NewServer(classifySvc, batchSvc, healthSvc, cfg.Classify.MaxBatchSize, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildDescriptorSource assembles the source chain: RDKit sidecar -> Cached.
func buildDescriptorSource(cfg config.Config, store db.Store, logger *zap.Logger) domain.DescriptorSource {
	base := rdkit.NewClient(&rdkit.Config{
		BaseURL:      cfg.Descriptor.BaseURL,
		Timeout:      time.Duration(cfg.Descriptor.TimeoutSec) * time.Second,
		IncludeSandP: *cfg.Descriptor.IncludeSandP,
		Logger:       logger,
	})

	if store == nil {
		return base
	}

	ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
	return desccache.New(base, store, ttl, metrics.DescriptorCacheTotal, logger)
}

// sourceHealthChecker wraps domain.DescriptorSource to implement health.DescriptorChecker.
type sourceHealthChecker struct {
	source domain.DescriptorSource
}

func newSourceHealthChecker(source domain.DescriptorSource) *sourceHealthChecker {
	return &sourceHealthChecker{source: source}
}

func (h *sourceHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.source.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("descriptor health check: %w", err)
		}
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
