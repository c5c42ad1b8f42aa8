package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// Sessions and results are transient; every key expires
	GameTTL   time.Duration
	ResultTTL time.Duration

	// MaxResults caps the recent results index
	MaxResults int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		GameTTL:      2 * time.Hour,
		ResultTTL:    24 * time.Hour,
		MaxResults:   100,
	}
}
