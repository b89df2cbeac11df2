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

	"github.com/opencatalogue/catalogd/internal/auth"
	"github.com/opencatalogue/catalogd/internal/bus"
	"github.com/opencatalogue/catalogd/internal/cache"
	"github.com/opencatalogue/catalogd/internal/config"
	dbRedis "github.com/opencatalogue/catalogd/internal/db/redis"
	"github.com/opencatalogue/catalogd/internal/domain"
	logpkg "github.com/opencatalogue/catalogd/internal/logger"
	"github.com/opencatalogue/catalogd/internal/metrics"
	accountrepo "github.com/opencatalogue/catalogd/internal/repository/account"
	catalogrepo "github.com/opencatalogue/catalogd/internal/repository/catalog"
	dataformatrepo "github.com/opencatalogue/catalogd/internal/repository/dataformat"
	datasetrepo "github.com/opencatalogue/catalogd/internal/repository/dataset"
	organizationrepo "github.com/opencatalogue/catalogd/internal/repository/organization"
	tagrepo "github.com/opencatalogue/catalogd/internal/repository/tag"
	chiTransport "github.com/opencatalogue/catalogd/internal/transport/chi"
	authuc "github.com/opencatalogue/catalogd/internal/usecase/auth"
	cataloguc "github.com/opencatalogue/catalogd/internal/usecase/catalog"
	dataformatuc "github.com/opencatalogue/catalogd/internal/usecase/dataformat"
	datasetuc "github.com/opencatalogue/catalogd/internal/usecase/dataset"
	extrafielduc "github.com/opencatalogue/catalogd/internal/usecase/extrafield"
	organizationuc "github.com/opencatalogue/catalogd/internal/usecase/organization"
	taguc "github.com/opencatalogue/catalogd/internal/usecase/tag"
	"github.com/opencatalogue/catalogd/internal/version"
)

func main() {
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

	logger.Info("Starting catalogd API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Key prefix is set once, before any repository touches the store.
	domain.KeyPrefix = cfg.Storage.KeyPrefix

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Repositories
	orgRepo := organizationrepo.New(store)
	catRepo := catalogrepo.New(store, orgRepo)
	dsRepo := datasetrepo.New(store)
	tagRepo := tagrepo.New(store)
	formatRepo := dataformatrepo.New(store)
	acctRepo := accountrepo.New(store)

	// Use case services
	orgSvc := organizationuc.New(orgRepo)
	catSvc := cataloguc.New(catRepo, orgRepo, dsRepo)
	dsSvc := datasetuc.New(dsRepo, catRepo, tagRepo, formatRepo, time.Now)
	tagSvc := taguc.New(tagRepo)
	formatSvc := dataformatuc.New(formatRepo)
	fieldSvc := extrafielduc.New(catRepo)
	authSvc := authuc.New(acctRepo, auth.NewPasswordEncoder(), auth.GenerateToken)

	b, err := bus.New(
		organizationuc.NewModule(orgSvc),
		cataloguc.NewModule(catSvc),
		datasetuc.NewModule(dsSvc),
		taguc.NewModule(tagSvc),
		dataformatuc.NewModule(formatSvc),
		extrafielduc.NewModule(fieldSvc),
		authuc.NewModule(authSvc),
	)
	if err != nil {
		logger.Fatal("Failed to assemble bus", zap.Error(err))
	}

	exportCache := cache.NewExport(time.Duration(cfg.Cache.ExportMaxAgeSec)*time.Second, nil)

	server := chiTransport.NewServer(b, exportCache, chiTransport.Pagination{
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		MaxPageSize:     cfg.Pagination.MaxPageSize,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(b))
	r.Use(metrics.Middleware())
	server.RegisterRoutes(r)

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

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

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
