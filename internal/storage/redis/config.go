package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`

	// Pool settings
	PoolSize     int `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`

	// GuestPlayerTTL bounds how long anonymous players are kept.
	// Stories, titles, and comments are kept without expiry.
	GuestPlayerTTL time.Duration `env:"REDIS_GUEST_PLAYER_TTL" envDefault:"24h"`
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		PoolSize:       10,
		MinIdleConns:   2,
		GuestPlayerTTL: 24 * time.Hour,
	}
}
