package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/itemsearch/internal/config"
	dbRedis "github.com/kailas-cloud/itemsearch/internal/db/redis"
	"github.com/kailas-cloud/itemsearch/internal/domain/match"
	logpkg "github.com/kailas-cloud/itemsearch/internal/logger"
	"github.com/kailas-cloud/itemsearch/internal/metrics"
	itemrepo "github.com/kailas-cloud/itemsearch/internal/repository/item"
	synonymrepo "github.com/kailas-cloud/itemsearch/internal/repository/synonym"
	chiTransport "github.com/kailas-cloud/itemsearch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/itemsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/itemsearch/internal/usecase/search"
	synonymuc "github.com/kailas-cloud/itemsearch/internal/usecase/synonym"
	"github.com/kailas-cloud/itemsearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level, zap.String("service", "itemsearch"))
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting itemsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterSearchMetrics()

	// Repositories
	items := itemrepo.New(store, itemrepo.Config{
		KeyPrefix:     cfg.Storage.KeyPrefix,
		PageSize:      cfg.Storage.PageSize,
		MaxCandidates: cfg.Storage.MaxCandidates,
	})
	if err := items.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure item index", zap.Error(err))
	}
	synonymStore := synonymrepo.New(store, cfg.Storage.KeyPrefix)

	// Synonym index: initial load, then periodic refresh
	synonyms := synonymuc.New(synonymStore, logger)
	if err := synonyms.Refresh(ctx); err != nil {
		// served with an empty index until the refresher succeeds; health reports degraded
		logger.Error("Initial synonym load failed", zap.Error(err))
	}
	go synonyms.Run(ctx, time.Duration(cfg.Synonyms.RefreshIntervalSec)*time.Second)

	// Search orchestration
	matcher := match.NewMatcher(matchConfig(cfg.Search))
	searchSvc := searchuc.New(items, items, synonyms, matcher, searchConfig(cfg.Search))

	healthSvc := healthuc.New(store, map[string]healthuc.Checker{
		"synonyms":    synonyms,
		"items_index": items,
	})

	server := chiTransport.NewServer(searchSvc, synonyms, synonymStore, healthSvc, logger).
		WithSearchDefaults(chiTransport.SearchDefaults{
			Limit:          cfg.Search.DefaultLimit,
			MaxLimit:       cfg.Search.MaxLimit,
			FuzzyThreshold: *cfg.Search.FuzzyThreshold,
		})

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware("/metrics"))
	chiTransport.HandlerWithOptions(server, chiTransport.ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
				Code:    chiTransport.ErrorCodeBadRequest,
				Message: err.Error(),
			})
		},
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func matchConfig(s config.SearchConfig) match.Config {
	return match.Config{
		Tolerance: match.Tolerance{
			ExactMaxLen:    s.Tolerance.ExactMaxLen,
			OneEditMaxLen:  s.Tolerance.OneEditMaxLen,
			TwoEditsMaxLen: s.Tolerance.TwoEditsMaxLen,
			LongTokenEdits: s.Tolerance.LongTokenEdits,
		},
		SubstringBonus:       s.SubstringBonus,
		SubstringMinLen:      s.SubstringMinLen,
		DefaultMinSimilarity: s.MinSimilarity,
		DefaultLimit:         s.FuzzyLimit,
	}
}

func searchConfig(s config.SearchConfig) searchuc.Config {
	cfg := searchuc.DefaultConfig()
	cfg.MinSimilarity = s.MinSimilarity
	cfg.FuzzyLimit = s.FuzzyLimit
	cfg.SuggestBelow = s.SuggestBelow
	cfg.MaxSuggestions = s.MaxSuggestions
	cfg.Suggester = match.Suggester{
		MinSimilarity: s.SuggestMinSimilarity,
		MaxDistance:   s.SuggestMaxDistance,
	}
	return cfg
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
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

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.Query().Get("q")),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
