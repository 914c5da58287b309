package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/auth"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/events"
	"storefront/internal/handlers"
	"storefront/internal/logger"
	"storefront/internal/repository"
	"storefront/internal/routes"
	"storefront/internal/storage"
)

func main() {
	cfg := config.LoadConfig()

	appLogger, err := logger.NewZapLogger(logger.ZapLoggerConfig{
		IsDevelopment: cfg.IsDevelopment(),
		Encoding:      cfg.Logger.Encoding,
		Level:         cfg.Logger.Level,
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer appLogger.Sync()

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("invalid configuration", zap.String("app_env", cfg.Server.AppEnv), zap.Error(err))
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Timeout)
	if err != nil {
		appLogger.Fatal("could not connect to mongodb", zap.Error(err))
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			appLogger.Warn("mongodb disconnect", zap.Error(err))
		}
	}()
	db := client.Database(cfg.Mongo.Database)
	appLogger.Info("connected to mongodb", zap.String("db", cfg.Mongo.Database))

	products := repository.NewProductRepository(db.Collection(database.ProductsCollection))
	users := repository.NewUserRepository(db.Collection(database.UsersCollection))
	if err := products.EnsureIndexes(ctx); err != nil {
		appLogger.Fatal("ensure product indexes", zap.Error(err))
	}
	if err := users.EnsureIndexes(ctx); err != nil {
		appLogger.Fatal("ensure user indexes", zap.Error(err))
	}

	store, staticDir, err := storage.NewStore(ctx, cfg.Uploads, cfg.S3)
	if err != nil {
		appLogger.Fatal("init upload store", zap.Error(err))
	}
	uploader := storage.NewUploader(store, cfg.Uploads.MaxBytes)
	appLogger.Info("upload backend ready", zap.String("backend", cfg.Uploads.Backend))

	var publisher events.Publisher = events.Nop{}
	if cfg.Events.AMQPURL != "" {
		p, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Queue)
		if err != nil {
			appLogger.Warn("rabbitmq unavailable, events disabled", zap.Error(err))
		} else {
			publisher = p
			appLogger.Info("publishing events", zap.String("queue", cfg.Events.Queue))
		}
	}
	defer publisher.Close()

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	limits := catalog.Limits{Default: cfg.Catalog.DefaultLimit, Max: cfg.Catalog.MaxLimit}

	router := routes.NewRouter(appLogger)
	routes.RegisterRoutes(router, routes.Handlers{
		Products: handlers.NewProductHandler(products, catalog.NewService(products, appLogger), uploader, publisher, limits, appLogger),
		Auth:     handlers.NewAuthHandler(users, issuer, uploader, publisher, cfg.Auth.BcryptCost, appLogger),
		Users:    handlers.NewUserHandler(users, cfg.Auth.BcryptCost, appLogger),
		Health:   handlers.NewHealthHandler(database.Pinger{Client: client}, appLogger),
	}, issuer, staticDir)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("🚀 server running", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	appLogger.Info("server stopped")
}
