// Package store provides the persistence backends behind queue.Store.
//
// Every backend implements Backend: Store persists one task payload,
// Healthcheck backs the readiness probe and Close releases connections.
//
//	memory      in-process slice, lost on restart
//	postgres    INSERT INTO tasks (data) VALUES ($1), schema from embedded goose migrations
//	redis       RPUSH <REDIS_KEY> <payload>
//	mongo       InsertOne {data, created_at}
//	opensearch  index {data, created_at} into OPENSEARCH_INDEX
//	s3          PutObject <S3_PREFIX>/<YYYY-MM-DD>/<uuid>.json
//
// New picks the backend from Config.Driver (STORE_DRIVER). Connection attempts
// are retried with a constant backoff from github.com/sethvargo/go-retry.
//
// Backends are built on narrow client interfaces (PgxPool, RedisClient,
// MongoCollection, S3Client) so tests can substitute mocks.
//
// Store errors are joined with ErrStoreFailed. The scheduler treats any
// error the same way, so callers rarely need to look further.
package store
