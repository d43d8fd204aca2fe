package store

import "time"

// Config selects a driver and carries the settings of every backend.
// Only the section of the selected driver is validated.
type Config struct {
	Driver string `env:"STORE_DRIVER" envDefault:"memory"`

	Postgres   PostgresConfig
	Redis      RedisConfig
	Mongo      MongoConfig
	OpenSearch OpenSearchConfig
	S3         S3Config
}

type PostgresConfig struct {
	ConnectionString  string        `env:"PG_CONN_URL"`
	MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"2"`
	HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
	RetryAttempts     int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval     time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
	AutoMigrate       bool          `env:"PG_AUTO_MIGRATE" envDefault:"true"`
	MigrationsTable   string        `env:"PG_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
}

type RedisConfig struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	Key            string        `env:"REDIS_KEY" envDefault:"taskd:payloads"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

type MongoConfig struct {
	ConnectionURL   string        `env:"MONGODB_URL"`
	Database        string        `env:"MONGODB_DATABASE" envDefault:"taskd"`
	Collection      string        `env:"MONGODB_COLLECTION" envDefault:"tasks"`
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"`
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}

type OpenSearchConfig struct {
	Addresses     []string      `env:"OPENSEARCH_ADDRESSES" envSeparator:","`
	Username      string        `env:"OPENSEARCH_USERNAME"`
	Password      string        `env:"OPENSEARCH_PASSWORD"`
	Index         string        `env:"OPENSEARCH_INDEX" envDefault:"tasks"`
	MaxRetries    int           `env:"OPENSEARCH_MAX_RETRIES" envDefault:"3"`
	DisableRetry  bool          `env:"OPENSEARCH_DISABLE_RETRY" envDefault:"false"`
	RetryAttempts int           `env:"OPENSEARCH_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"OPENSEARCH_RETRY_INTERVAL" envDefault:"5s"`
}

type S3Config struct {
	Bucket         string `env:"S3_BUCKET"`
	Region         string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_ACCESS_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"`
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
	Prefix         string `env:"S3_PREFIX" envDefault:"tasks"`
}
