package main

import (
	"context"
	"flag"
	"time"

	"github.com/fekuna/tagro-storefront-service/config"
	dealerRepoPkg "github.com/fekuna/tagro-storefront-service/internal/dealer/repository"
	prodRepoPkg "github.com/fekuna/tagro-storefront-service/internal/product/repository"
	"github.com/fekuna/tagro-storefront-service/internal/seed"
	"github.com/fekuna/tagro-storefront-service/internal/user"
	userRepoPkg "github.com/fekuna/tagro-storefront-service/internal/user/repository"
	"github.com/fekuna/tagro-storefront-service/pkg/database/mongodb"
	"github.com/fekuna/tagro-storefront-service/pkg/database/postgres"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// seed loads the product and dealer catalog into Postgres and makes sure an
// admin account exists. Rows already present are left untouched.
func main() {
	file := flag.String("file", "", "catalog YAML file (defaults to the bundled catalog)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.LoadEnv()

	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment: true,
		Encoding:      "console",
		Level:         "info",
	})
	defer appLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	catalog, err := seed.Load(*file)
	if err != nil {
		appLogger.Fatal("Could not load catalog", zap.Error(err))
	}

	db, err := postgres.NewPostgres(&postgres.Config{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		DBName:   cfg.Postgres.DBName,
		SSLMode:  cfg.Postgres.SSLMode,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		appLogger.Fatal("Could not migrate database", zap.Error(err))
	}

	var users user.Repository = userRepoPkg.NewPGRepository(db)
	if cfg.Storage.UserStore == "mongo" {
		client, err := mongodb.Connect(ctx, &mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			appLogger.Fatal("Could not connect to MongoDB", zap.Error(err))
		}
		defer client.Disconnect(context.Background())
		mongoUsers, err := userRepoPkg.NewMongoRepository(ctx, client.Database(cfg.Mongo.Database))
		if err != nil {
			appLogger.Fatal("Could not prepare user collection", zap.Error(err))
		}
		users = mongoUsers
	}

	res, err := seed.Apply(ctx, catalog, prodRepoPkg.NewPGRepository(db), dealerRepoPkg.NewPGRepository(db), appLogger)
	if err != nil {
		appLogger.Fatal("Seeding failed", zap.Error(err))
	}
	created, err := seed.EnsureAdmin(ctx, users, seed.Admin{
		ID:       cfg.Admin.ID,
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Phone:    cfg.Admin.Phone,
		Password: cfg.Admin.Password,
	}, appLogger)
	if err != nil {
		appLogger.Fatal("Could not create admin user", zap.Error(err))
	}

	appLogger.Info("Seed complete",
		zap.Int("products", res.Products),
		zap.Int("dealers", res.Dealers),
		zap.Bool("admin_created", created),
	)
}
