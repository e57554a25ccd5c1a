package main

import (
	"context"
	"time"

	"github.com/fekuna/tagro-storefront-service/config"
	"github.com/fekuna/tagro-storefront-service/internal/cart"
	cartRepoPkg "github.com/fekuna/tagro-storefront-service/internal/cart/repository"
	"github.com/fekuna/tagro-storefront-service/internal/dealer"
	dealerRepoPkg "github.com/fekuna/tagro-storefront-service/internal/dealer/repository"
	"github.com/fekuna/tagro-storefront-service/internal/inventory"
	invRepoPkg "github.com/fekuna/tagro-storefront-service/internal/inventory/repository"
	"github.com/fekuna/tagro-storefront-service/internal/product"
	prodRepoPkg "github.com/fekuna/tagro-storefront-service/internal/product/repository"
	"github.com/fekuna/tagro-storefront-service/internal/server"
	"github.com/fekuna/tagro-storefront-service/internal/settings"
	settingsRepoPkg "github.com/fekuna/tagro-storefront-service/internal/settings/repository"
	"github.com/fekuna/tagro-storefront-service/internal/user"
	userRepoPkg "github.com/fekuna/tagro-storefront-service/internal/user/repository"
	"github.com/fekuna/tagro-storefront-service/pkg/broker"
	"github.com/fekuna/tagro-storefront-service/pkg/cache"
	"github.com/fekuna/tagro-storefront-service/pkg/database/mongodb"
	"github.com/fekuna/tagro-storefront-service/pkg/database/postgres"
	"github.com/fekuna/tagro-storefront-service/pkg/logger"
	"github.com/fekuna/tagro-storefront-service/pkg/search"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// stores holds every repository plus the infrastructure clients behind them.
type stores struct {
	products  product.Repository
	inventory inventory.Repository
	dealers   dealer.Repository
	settings  settings.Repository
	users     user.Repository
	otps      user.OTPStore
	carts     cart.Repository
	locker    cache.Locker

	redis     *cache.RedisClient
	es        *search.Client
	publisher broker.Publisher
	consumer  *broker.KafkaConsumer

	checks  map[string]server.HealthCheck
	closers []func() error
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i]()
	}
}

// newMemoryStores keeps everything in process. Nothing is shared between
// instances and no events are published.
func newMemoryStores() *stores {
	products := prodRepoPkg.NewMemoryRepository()
	return &stores{
		products:  products,
		inventory: invRepoPkg.NewMemoryRepository(products),
		dealers:   dealerRepoPkg.NewMemoryRepository(),
		settings:  settingsRepoPkg.NewMemoryRepository(),
		users:     userRepoPkg.NewMemoryRepository(),
		otps:      userRepoPkg.NewMemoryOTPStore(),
		carts:     cartRepoPkg.NewMemoryRepository(),
		locker:    cache.NewNoopLocker(),
		checks:    map[string]server.HealthCheck{},
	}
}

func newInfraStores(ctx context.Context, cfg *config.Config, log logger.ZapLogger) (*stores, error) {
	s := &stores{checks: map[string]server.HealthCheck{}}

	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, db.Close)
	if err := postgres.Migrate(ctx, db); err != nil {
		s.Close()
		return nil, err
	}
	s.checks["postgres"] = db.PingContext
	log.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	s.products = prodRepoPkg.NewPGRepository(db)
	s.inventory = invRepoPkg.NewPGRepository(db)
	s.dealers = dealerRepoPkg.NewPGRepository(db)
	s.settings = settingsRepoPkg.NewPGRepository(db)

	switch cfg.Storage.UserStore {
	case "mongo":
		client, err := mongodb.Connect(ctx, &mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, func() error { return client.Disconnect(context.Background()) })
		s.checks["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }

		users, err := userRepoPkg.NewMongoRepository(ctx, client.Database(cfg.Mongo.Database))
		if err != nil {
			s.Close()
			return nil, err
		}
		s.users = users
		log.Info("Using MongoDB user store", zap.String("db_name", cfg.Mongo.Database))
	default:
		s.users = userRepoPkg.NewPGRepository(db)
	}

	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		s.Close()
		return nil, errors.Wrap(err, "connect redis")
	}
	s.closers = append(s.closers, redisClient.Close)
	s.checks["redis"] = func(ctx context.Context) error { return redisClient.Client.Ping(ctx).Err() }
	s.redis = redisClient
	s.carts = cartRepoPkg.NewRedisRepository(redisClient)
	s.otps = userRepoPkg.NewRedisOTPStore(redisClient)
	s.locker = cache.NewRedisLocker(redisClient)
	log.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	kafkaCfg := &broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	}
	producer := broker.NewProducer(kafkaCfg)
	s.closers = append(s.closers, producer.Close)
	s.publisher = producer
	s.consumer = broker.NewConsumer(kafkaCfg)
	s.closers = append(s.closers, s.consumer.Close)
	log.Info("Kafka configured", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		// search falls back to the database
		log.Warn("Could not connect to Elasticsearch", zap.Error(err))
	} else {
		s.es = esClient
		log.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	return s, nil
}
