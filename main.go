package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/phanto-shop/storefront/cart"
	"github.com/phanto-shop/storefront/catalog"
	"github.com/phanto-shop/storefront/config"
	"github.com/phanto-shop/storefront/controllers"
	"github.com/phanto-shop/storefront/pkg/apperrors"
	"github.com/phanto-shop/storefront/pkg/logger"
	"github.com/phanto-shop/storefront/routes"
	"github.com/phanto-shop/storefront/session"
	"github.com/phanto-shop/storefront/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	logger.Initialize(cfg.Environment)
	defer logger.Log.Sync()

	store, err := newStorage(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize storage", zap.Error(err))
	}

	sessionStore := session.NewStore(store, session.NewLocalAuthenticator(), logger.Log)
	cartStore := cart.NewStore(store, logger.Log)

	// Rehydrate both stores before the router starts serving, so no request
	// ever observes pre-initialization state.
	ctx := context.Background()
	if err := sessionStore.Initialize(ctx); err != nil {
		logger.Log.Fatal("Failed to initialize session store", zap.Error(err))
	}
	if err := cartStore.Initialize(ctx); err != nil {
		logger.Log.Fatal("Failed to initialize cart store", zap.Error(err))
	}

	source, resolver, err := newCatalog(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize catalog source", zap.Error(err))
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), logger.RequestLogger(), apperrors.ErrorMiddleware())

	routes.Register(router, routes.Deps{
		Session:  sessionStore,
		Cart:     cartStore,
		Catalog:  source,
		Resolver: resolver,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("Storefront is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal("Shutdown error", zap.Error(err))
	}
	logger.Log.Info("Server shutdown complete")
}

// newStorage picks the persistence backend: Redis when REDIS_URL is set,
// otherwise one JSON file per record in the data directory.
func newStorage(cfg config.Config) (storage.Store, error) {
	if cfg.RedisURL != "" {
		client, err := storage.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		logger.Log.Info("Using redis storage", zap.String("url", cfg.RedisURL))
		return storage.NewRedisStore(client, cfg.SessionTTL), nil
	}

	logger.Log.Info("Using file storage", zap.String("dir", cfg.DataDir))
	return storage.NewFileStore(cfg.DataDir)
}

// newCatalog picks the catalog source: a local seed file when configured,
// otherwise the remote catalog API.
func newCatalog(cfg config.Config) (catalog.Source, controllers.ImageResolver, error) {
	if cfg.CatalogSeedPath != "" {
		logger.Log.Info("Using static catalog", zap.String("path", cfg.CatalogSeedPath))
		src, err := catalog.NewStaticSource(cfg.CatalogSeedPath)
		return src, nil, err
	}

	client := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout)
	return client, client, nil
}
