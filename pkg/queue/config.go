package queue

import "time"

// Config holds the configuration for the scheduler
type Config struct {
	IdleInterval           time.Duration `env:"QUEUE_IDLE_INTERVAL" envDefault:"1s"`
	SlowThreshold          uint8         `env:"QUEUE_SLOW_THRESHOLD" envDefault:"100"`
	MaxRetries             uint8         `env:"QUEUE_MAX_RETRIES" envDefault:"3"`
	SlowDelay              time.Duration `env:"QUEUE_SLOW_DELAY" envDefault:"5s"`
	FastTimeout            time.Duration `env:"QUEUE_FAST_TIMEOUT" envDefault:"30s"`
	MaxConcurrentSlowTasks int           `env:"QUEUE_MAX_CONCURRENT_SLOW_TASKS" envDefault:"16"`
	ShutdownTimeout        time.Duration `env:"QUEUE_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// Options converts the config into scheduler options.
// Zero values are skipped so package defaults apply.
func (c Config) Options() []SchedulerOption {
	opts := []SchedulerOption{
		WithSlowThreshold(Priority(c.SlowThreshold)),
		WithMaxRetries(c.MaxRetries),
	}
	if c.IdleInterval > 0 {
		opts = append(opts, WithIdleInterval(c.IdleInterval))
	}
	if c.SlowDelay > 0 {
		opts = append(opts, WithSlowHandler(NewSlowHandler(c.SlowDelay)))
	}
	if c.FastTimeout > 0 {
		opts = append(opts, WithFastTimeout(c.FastTimeout))
	}
	if c.MaxConcurrentSlowTasks > 0 {
		opts = append(opts, WithMaxConcurrentSlowTasks(c.MaxConcurrentSlowTasks))
	}
	if c.ShutdownTimeout > 0 {
		opts = append(opts, WithShutdownTimeout(c.ShutdownTimeout))
	}
	return opts
}
