//	@title			ImageDrop Ingestion API
//	@version		1.0
//	@description	Authenticated image ingestion gateway over blob and metadata stores.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				Shared API secret.

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/imagedrop/service/internal/asset"
	"github.com/imagedrop/service/internal/auth"
	"github.com/imagedrop/service/internal/blobstore"
	"github.com/imagedrop/service/internal/config"
	"github.com/imagedrop/service/internal/db"
	"github.com/imagedrop/service/internal/janitor"
	"github.com/imagedrop/service/internal/metrics"
	appMiddleware "github.com/imagedrop/service/internal/middleware"

	_ "github.com/imagedrop/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	metrics.Init()

	blobs, err := newBlobStore(cfg)
	if err != nil {
		logger.Fatal("blob store init failed", zap.Error(err))
	}

	meta, closeMeta, err := newMetadataStore(cfg)
	if err != nil {
		logger.Fatal("metadata store init failed", zap.Error(err))
	}
	defer closeMeta()

	svc := asset.NewService(blobs, meta, cfg.MaxPayloadBytes, cfg.AllowedContentTypes, logger.Named("asset"))
	tokens := auth.NewTokenIssuer(cfg.APIKey, cfg.ContentTokenTTL)
	assetHandler := asset.NewHandler(svc, tokens, cfg.APIKey, cfg.MaxPayloadBytes, cfg.RequestTimeout)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(logger.Named("http")))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Prometheus scrape endpoint
	r.Handle("/metrics", metrics.Handler())

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/images", func(r chi.Router) {
		// Content accepts either the shared secret or a signed token; it does
		// its own credential check so the web UI can embed tokenized URLs.
		r.Get("/{id}/content", assetHandler.Content)

		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireAPIKey(cfg.APIKey))
			r.Post("/", assetHandler.Upload)
			r.Get("/", assetHandler.List)
			r.Get("/{id}", assetHandler.Get)
		})
	})

	// Background janitor for FAILED tombstones
	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	jan := janitor.New(meta, blobs, cfg.JanitorInterval, cfg.JanitorBatch, logger.Named("janitor"))
	go jan.Run(janitorCtx)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.AppEnv),
			zap.String("blobBackend", cfg.BlobBackend),
			zap.String("metaBackend", cfg.MetaBackend))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down gracefully")
	stopJanitor()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newBlobStore(cfg *config.Config) (blobstore.BlobStore, error) {
	switch cfg.BlobBackend {
	case "minio":
		return blobstore.NewMinioStore(
			cfg.StorageEndpoint,
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			cfg.StorageBucket,
			cfg.StorageUseSSL,
		)
	case "fs":
		return blobstore.NewFSStore(cfg.FSRoot)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}

func newMetadataStore(cfg *config.Config) (asset.MetadataStore, func(), error) {
	switch cfg.MetaBackend {
	case "postgres":
		pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("database migration failed: %w", err)
		}
		return asset.NewPostgresStore(pool), pool.Close, nil
	case "badger":
		store, err := asset.NewBadgerStore(cfg.BadgerPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown metadata backend %q", cfg.MetaBackend)
	}
}
