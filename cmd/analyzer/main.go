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

	"github.com/lost-boy7/Fake-News-Analyzer/internal/artifact"
	filestore "github.com/lost-boy7/Fake-News-Analyzer/internal/artifact/file"
	redisstore "github.com/lost-boy7/Fake-News-Analyzer/internal/artifact/redis"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/config"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/corpus"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/fetch"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/forest"
	logpkg "github.com/lost-boy7/Fake-News-Analyzer/internal/logger"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/metrics"
	modelrepo "github.com/lost-boy7/Fake-News-Analyzer/internal/repository/model"
	chiTransport "github.com/lost-boy7/Fake-News-Analyzer/internal/transport/chi"
	healthuc "github.com/lost-boy7/Fake-News-Analyzer/internal/usecase/health"
	pipelineuc "github.com/lost-boy7/Fake-News-Analyzer/internal/usecase/pipeline"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/vectorize"
	"github.com/lost-boy7/Fake-News-Analyzer/internal/version"
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

	logger.Info("Starting analyzer API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
	)

	// Create artifact store based on driver
	var store artifact.Store
	switch cfg.Storage.Driver {
	case "file":
		store, err = filestore.NewStore(filestore.Config{
			Dir: cfg.Storage.Dir,
		})
	case "redis":
		store, err = redisstore.NewStore(redisstore.Config{
			Addrs:     cfg.Storage.Addrs,
			Username:  cfg.Storage.Username,
			Password:  cfg.Storage.Password,
			DB:        cfg.Storage.DB,
			KeyPrefix: cfg.Storage.KeyPrefix,
		})
	default:
		logger.Fatal("Unknown storage driver", zap.String("driver", cfg.Storage.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create artifact store", zap.Error(err))
	}
	defer store.Close()

	// Wait for the store to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Storage.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Artifact store not ready", zap.Error(err))
	}
	logger.Info("Artifact store ready")

	// Register classifier metrics explicitly (no init())
	metrics.RegisterClassifierMetrics()

	// Build the classification pipeline
	loader := corpus.NewLoader(corpus.Config{
		FabricatedPath:      cfg.Corpus.FabricatedCSV,
		AuthenticPath:       cfg.Corpus.AuthenticCSV,
		AllowSampleFallback: cfg.Corpus.AllowSampleFallback,
	}, logger)

	modelRepo := modelrepo.New(store, logger)

	pipeSvc := pipelineuc.New(pipelineuc.Config{
		Vectorizer: vectorize.Config{
			MaxFeatures: cfg.Model.MaxFeatures,
			NGramMin:    cfg.Model.NGramMin,
			NGramMax:    cfg.Model.NGramMax,
			MinDocFreq:  cfg.Model.MinDocFreq,
			MaxDocRatio: cfg.Model.MaxDocRatio,
		},
		Classifier: forest.Config{
			NumTrees:        cfg.Model.Trees,
			MaxDepth:        cfg.Model.MaxDepth,
			MinSamplesSplit: cfg.Model.MinSamplesSplit,
			MinSamplesLeaf:  cfg.Model.MinSamplesLeaf,
			Seed:            cfg.Model.Seed,
		},
		TrainRatio: cfg.Model.TrainRatio,
		SplitSeed:  cfg.Model.Seed,
	}, loader, modelRepo, logger)

	// Health service
	healthSvc := healthuc.New(store, pipeSvc)

	// Article scraper for url inputs (nil -> default http client)
	scraper := fetch.NewScraper(nil)

	// Restore a persisted model before taking traffic. A failed restore is
	// not fatal: the server answers 503 on predictions until trained.
	restored, err := pipeSvc.LoadPersisted(ctx)
	if err != nil {
		logger.Warn("Failed to restore persisted model", zap.Error(err))
	}
	if restored {
		logger.Info("Restored persisted model from storage")
	} else if cfg.Model.TrainOnStart {
		logger.Info("No persisted model found, training on startup")
		if acc, err := pipeSvc.Train(ctx); err != nil {
			logger.Warn("Startup training failed, serving untrained", zap.Error(err))
		} else {
			logger.Info("Startup training complete", zap.Float64("accuracy", acc))
		}
	}

	// Create chi server
	server := chiTransport.NewServer(pipeSvc, healthSvc, scraper, chiTransport.Config{
		CORSOrigins:      cfg.HTTP.CORSOrigins,
		GlobalPerHour:    cfg.RateLimit.GlobalPerHour,
		AnalyzePerMinute: cfg.RateLimit.AnalyzePerMinute,
		BatchPerMinute:   cfg.RateLimit.BatchPerMinute,
		MinTextChars:     cfg.Limits.MinTextChars,
		MaxTextChars:     cfg.Limits.MaxTextChars,
		MaxBatchItems:    cfg.Limits.MaxBatchItems,
		MaxFeatures:      cfg.Model.MaxFeatures,
		NGramMin:         cfg.Model.NGramMin,
		NGramMax:         cfg.Model.NGramMax,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.APIKeyMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Mount(r)

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
						"error": "Internal server error",
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

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
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
