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

	"github.com/cardwise/cardwise/internal/config"
	logpkg "github.com/cardwise/cardwise/internal/logger"
	"github.com/cardwise/cardwise/internal/metrics"
	datasetrepo "github.com/cardwise/cardwise/internal/repository/dataset"
	sessionrepo "github.com/cardwise/cardwise/internal/repository/session"
	chiTransport "github.com/cardwise/cardwise/internal/transport/chi"
	openaiLLM "github.com/cardwise/cardwise/internal/transport/openai"
	"github.com/cardwise/cardwise/internal/transport/tavily"
	"github.com/cardwise/cardwise/internal/usecase/advisor"
	retrievaluc "github.com/cardwise/cardwise/internal/usecase/retrieval"
	sessionuc "github.com/cardwise/cardwise/internal/usecase/session"
	"github.com/cardwise/cardwise/internal/version"
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

	logger.Info("Starting cardwise API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("dataset_path", cfg.Dataset.Path),
		zap.String("session_store", cfg.Sessions.Store),
	)

	// Session store
	var store sessionuc.Store
	switch cfg.Sessions.Store {
	case "redis":
		redisStore, err := sessionrepo.NewRedisStore(sessionrepo.RedisConfig{
			Addrs:     cfg.Sessions.Addrs,
			Username:  cfg.Sessions.Username,
			Password:  cfg.Sessions.Password,
			DB:        cfg.Sessions.DB,
			KeyPrefix: cfg.Sessions.KeyPrefix,
			TTL:       time.Duration(cfg.Sessions.TTLSec) * time.Second,
		})
		if err != nil {
			logger.Fatal("Failed to create session store", zap.Error(err))
		}
		defer redisStore.Close()
		if err := redisStore.Ping(context.Background()); err != nil {
			logger.Fatal("Session store not ready", zap.Error(err))
		}
		store = redisStore
		logger.Info("Connected to Redis session store", zap.Strings("addrs", cfg.Sessions.Addrs))
	case "memory":
		store = sessionrepo.NewMemoryStore()
	default:
		logger.Fatal("Unknown session store", zap.String("store", cfg.Sessions.Store))
	}

	// Register retrieval metrics explicitly (no init())
	metrics.RegisterRetrievalMetrics()

	// Dataset and ranking
	dataset := datasetrepo.New(cfg.Dataset.Path)
	cache := retrievaluc.NewCache().
		WithMetrics(metrics.IndexCacheTotal, metrics.IndexBuildsTotal)
	retrieval := retrievaluc.New(dataset, cache).
		WithMetrics(metrics.SearchDuration, metrics.SearchResultsCount)

	if rows, err := retrieval.Rows(context.Background()); err != nil {
		logger.Warn("Dataset not indexed at startup", zap.Error(err))
	} else {
		logger.Info("Dataset indexed", zap.Int("rows", rows))
	}

	// External providers — both optional
	llm := openaiLLM.NewCompleter(&openaiLLM.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Logger:  logger,
	})
	web := tavily.NewClient(&tavily.Config{
		APIKey:     cfg.WebSearch.APIKey,
		MaxResults: cfg.WebSearch.MaxResults,
		Timeout:    time.Duration(cfg.WebSearch.TimeoutSec) * time.Second,
		Logger:     logger,
	})
	logger.Info("Providers configured",
		zap.Bool("llm", llm.Enabled()),
		zap.Bool("web_search", web.Enabled()),
	)

	// Use case services
	sessions := sessionuc.NewService(store)
	advisorSvc := advisor.New(retrieval, llm, web, cfg.Retrieval.TopK)

	// Create chi server
	server := chiTransport.NewServer(
		advisorSvc, sessions, retrieval, dataset, llm, web, cfg.Dataset.UploadsDir, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
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

			// Set X-Request-ID in response header
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
