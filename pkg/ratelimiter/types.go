package ratelimiter

import "time"

// Config defines a token bucket: Capacity is the burst size, RefillRate
// tokens are added every RefillInterval, and buckets idle for StaleAfter are
// dropped. A zero Capacity disables limiting.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"0"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"10"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1s"`
	StaleAfter     time.Duration `env:"RATE_LIMIT_STALE_AFTER" envDefault:"1h"`
}

// Enabled reports whether the config describes an active limit.
func (c Config) Enabled() bool {
	return c.Capacity > 0
}

// Result is the outcome of a single Allow call.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns how long a denied caller should wait. It is 0 when allowed.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed || !r.ResetAt.After(now) {
		return 0
	}
	return r.ResetAt.Sub(now)
}
