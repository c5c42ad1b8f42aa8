package cli

import (
	"os"
	"time"
)

// EnvServer overrides the default server URL
const EnvServer = "QUEENSRUSH_SERVER"

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault(EnvServer, "http://localhost:8080"),
		Output:    "text",
		Verbose:   false,
	}
}

// DefaultBotDelay is how long "play" waits before the bot moves
const DefaultBotDelay = time.Second

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
