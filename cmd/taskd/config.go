package main

import (
	"github.com/dmitrymomot/taskd/pkg/httpserver"
	"github.com/dmitrymomot/taskd/pkg/queue"
	"github.com/dmitrymomot/taskd/pkg/ratelimiter"
	"github.com/dmitrymomot/taskd/pkg/store"
)

// AppConfig is the full process configuration, read from the environment.
type AppConfig struct {
	Name     string `env:"APP_NAME" envDefault:"taskd"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`
	LogDir   string `env:"LOG_DIR"`

	Queue     queue.Config
	Store     store.Config
	HTTP      httpserver.Config
	RateLimit ratelimiter.Config
}
