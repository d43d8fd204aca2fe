// Package config loads typed configuration from the environment.
//
// It wraps github.com/joho/godotenv for .env files and
// github.com/caarlos0/env/v11 for parsing struct tags. Each config type is
// parsed once per process and cached; Reload and Reset exist for tests.
//
// taskd keeps one struct per concern next to the code that uses it
// (queue.Config, store.Config, httpserver.Config) and embeds them into the
// application config in cmd/taskd:
//
//	type AppConfig struct {
//	    Name     string `env:"APP_NAME" envDefault:"taskd"`
//	    Env      string `env:"APP_ENV" envDefault:"development"`
//	    LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
//	    LogDir   string `env:"LOG_DIR"`
//
//	    Queue queue.Config
//	    Store store.Config
//	    HTTP  httpserver.Config
//	}
//
//	var cfg AppConfig
//	config.MustLoad(&cfg)
//
// Errors can be compared with errors.Is against ErrParsingConfig,
// ErrInvalidConfigType, ErrNilPointer and ErrLoadingEnvFile.
package config
