package store

import (
	"context"
	"encoding/json"
)

// Backend is a queue.Store that can report readiness and release its resources.
type Backend interface {
	Store(ctx context.Context, payload json.RawMessage) error
	Healthcheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// Supported drivers
const (
	DriverMemory     = "memory"
	DriverPostgres   = "postgres"
	DriverRedis      = "redis"
	DriverMongo      = "mongo"
	DriverOpenSearch = "opensearch"
	DriverS3         = "s3"
)

var (
	_ Backend = (*MemoryStore)(nil)
	_ Backend = (*PostgresStore)(nil)
	_ Backend = (*RedisStore)(nil)
	_ Backend = (*MongoStore)(nil)
	_ Backend = (*OpenSearchStore)(nil)
	_ Backend = (*S3Store)(nil)
)
