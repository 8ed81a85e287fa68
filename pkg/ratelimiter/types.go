package ratelimiter

import "time"

// Result is the outcome of a rate limit check.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // negative when denied
	ResetAt   time.Time // next refill
}

// Allowed reports whether the request may proceed.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before the next request, 0 if allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

// Config defines the token bucket. A zero Capacity disables limiting.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"20"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"20"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1m"`
	Backend        string        `env:"RATE_LIMIT_BACKEND" envDefault:"memory"` // memory|redis
	RedisPrefix    string        `env:"RATE_LIMIT_REDIS_PREFIX" envDefault:"ripple:ratelimit:"`
}

// Enabled reports whether the config asks for limiting at all.
func (c Config) Enabled() bool {
	return c.Capacity > 0
}
