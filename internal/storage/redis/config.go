package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string `env:"URL" envDefault:"redis://localhost:6379"`

	// KeyPrefix namespaces every key, so several sessions can share a server
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"compete"`

	// Pool settings
	PoolSize     int `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int `env:"MIN_IDLE_CONNS" envDefault:"2"`

	// SessionTTL expires players and matches after inactivity (0 keeps them forever)
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"0s"`
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		KeyPrefix:    "compete",
		PoolSize:     10,
		MinIdleConns: 2,
		SessionTTL:   0,
	}
}
