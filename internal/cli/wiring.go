package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"invoice_dashboard/internal/application/revalidate"
	"invoice_dashboard/internal/config"
	"invoice_dashboard/internal/domain/repository"
	"invoice_dashboard/internal/infrastructure/cache"
	kafkainfra "invoice_dashboard/internal/infrastructure/messaging/kafka"
	"invoice_dashboard/internal/infrastructure/persistence/postgres"
	"invoice_dashboard/internal/infrastructure/persistence/sqlite"
	"invoice_dashboard/pkg/logger"
)

type invoiceStore interface {
	repository.InvoiceRepository
	Migrate(ctx context.Context) error
}

func loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config failed: %w", err)
	}

	log, err := logger.NewZapLogger(logger.Options{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init logger failed: %w", err)
	}
	return cfg, log.WithFields(logger.String("app", cfg.App.Name)), nil
}

// openStore returns the repository for the configured driver and the func that releases it.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (invoiceStore, func(), error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		repo, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connection failed: %w", err)
		}
		return postgres.NewInvoiceRepository(pool), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
}

// openRouteCache prefers Redis so every API node shares one cache.
func openRouteCache(ctx context.Context, cfg config.RedisConfig, log logger.Logger) (revalidate.RouteCache, func(), error) {
	if cfg.Addr == "" {
		log.Info("route cache: in process")
		return cache.NewMemoryRouteCache(cfg.TTL), func() {}, nil
	}

	rdb := cache.NewRedisClient(cfg)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis connection failed: %w", err)
	}
	log.Info("route cache: redis", logger.String("addr", cfg.Addr))
	return cache.NewRedisRouteCache(rdb, cfg.TTL), func() { _ = rdb.Close() }, nil
}

// followInvalidations applies invalidations broadcast by other nodes to this
// node's in-process route cache. The returned func stops the consumer and waits for it.
func followInvalidations(ctx context.Context, cfg config.KafkaConfig, pages revalidate.Target, log logger.Logger) (func(), error) {
	group := nodeConsumerGroup(cfg.ConsumerGroup)
	consumer, err := kafkainfra.NewInvalidationConsumer(cfg, group, pages, log)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := consumer.Start(ctx); err != nil {
			log.Error("invalidation consumer stopped", logger.Error(err))
		}
	}()

	log.Info("following route invalidations",
		logger.String("topic", cfg.InvalidationTopic),
		logger.String("group", group),
	)
	return func() {
		cancel()
		<-done
		consumer.Close()
	}, nil
}

// nodeConsumerGroup gives each process its own group so every node sees every event.
func nodeConsumerGroup(base string) string {
	return fmt.Sprintf("%s-%s", base, uuid.NewString())
}
