package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logger"
	"storefront/internal/repository"
	"storefront/internal/seed"
)

func main() {
	var (
		catalogName = flag.String("catalog", "perfume", "product catalog to seed: perfume or merch")
		withUsers   = flag.Bool("users", false, "seed users")
		noProducts  = flag.Bool("skip-products", false, "do not touch the products collection")
		count       = flag.Int("count", seed.DefaultCount, "number of documents per collection")
		randSeed    = flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed for prices and reviews")
	)
	flag.Parse()

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

	ctx := context.Background()
	client, err := database.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Timeout)
	if err != nil {
		appLogger.Fatal("could not connect to mongodb", zap.Error(err))
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.Mongo.Database)
	appLogger.Info("connected to mongodb ✅", zap.String("db", cfg.Mongo.Database))

	if !*noProducts {
		cat, ok := seed.Catalogs(*catalogName)
		if !ok {
			appLogger.Fatal("unknown catalog", zap.String("catalog", *catalogName))
		}

		products := repository.NewProductRepository(db.Collection(database.ProductsCollection))
		batch := seed.Products(cat, *count, rand.New(rand.NewPCG(*randSeed, *randSeed>>1)))
		if err := products.ReplaceAll(ctx, batch); err != nil {
			appLogger.Fatal("seed products", zap.Error(err))
		}
		if err := products.EnsureIndexes(ctx); err != nil {
			appLogger.Fatal("ensure product indexes", zap.Error(err))
		}
		appLogger.Info("✅ seeded products", zap.String("catalog", cat.Name), zap.Int("count", len(batch)))
	}

	if *withUsers {
		hash, err := auth.HashPassword(seed.DefaultPassword, cfg.Auth.BcryptCost)
		if err != nil {
			appLogger.Fatal("hash seed password", zap.Error(err))
		}

		users := repository.NewUserRepository(db.Collection(database.UsersCollection))
		batch := seed.Users(seed.CharacterNames, *count, hash)
		if err := users.ReplaceAll(ctx, batch); err != nil {
			appLogger.Fatal("seed users", zap.Error(err))
		}
		if err := users.EnsureIndexes(ctx); err != nil {
			appLogger.Fatal("ensure user indexes", zap.Error(err))
		}
		appLogger.Info("✅ seeded users", zap.Int("count", len(batch)))
	}
}
