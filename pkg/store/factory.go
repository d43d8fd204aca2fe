package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/taskd/pkg/logger"
)

// New connects the backend selected by cfg.Driver.
// Postgres migrations run here when PG_AUTO_MIGRATE is set.
func New(ctx context.Context, cfg Config, log *slog.Logger) (Backend, error) {
	if log == nil {
		log = logger.NewNop()
	}
	log = log.With(logger.Component("store"), logger.Driver(cfg.Driver))

	switch cfg.Driver {
	case DriverMemory, "":
		log.Warn("using in-memory store, payloads are lost on restart")
		return NewMemoryStore(), nil

	case DriverPostgres:
		pool, err := ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.AutoMigrate {
			if err := MigratePostgres(ctx, pool, cfg.Postgres, log); err != nil {
				pool.Close()
				return nil, err
			}
		}
		log.Info("store connected")
		return NewPostgresStore(pool), nil

	case DriverRedis:
		client, err := ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Info("store connected", slog.String("key", cfg.Redis.Key))
		return NewRedisStore(client, cfg.Redis.Key), nil

	case DriverMongo:
		client, err := ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		log.Info("store connected",
			slog.String("database", cfg.Mongo.Database),
			slog.String("collection", cfg.Mongo.Collection))
		return NewMongoStore(client, coll), nil

	case DriverOpenSearch:
		client, err := ConnectOpenSearch(ctx, cfg.OpenSearch)
		if err != nil {
			return nil, err
		}
		log.Info("store connected", slog.String("index", cfg.OpenSearch.Index))
		return NewOpenSearchStore(client, cfg.OpenSearch.Index), nil

	case DriverS3:
		client, err := NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		log.Info("store configured",
			slog.String("bucket", cfg.S3.Bucket),
			slog.String("prefix", cfg.S3.Prefix))
		return NewS3Store(client, cfg.S3.Bucket, cfg.S3.Prefix), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
