package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/queensrush/internal/api"
	"github.com/mcoot/queensrush/internal/model"
	"github.com/mcoot/queensrush/internal/storage"
	redisstorage "github.com/mcoot/queensrush/internal/storage/redis"
)

// Environment variables read by Load
const (
	EnvConfigPath  = "QUEENSRUSH_CONFIG"
	EnvHost        = "QUEENSRUSH_HOST"
	EnvPort        = "QUEENSRUSH_PORT"
	EnvLogLevel    = "QUEENSRUSH_LOG_LEVEL"
	EnvLogFormat   = "QUEENSRUSH_LOG_FORMAT"
	EnvBotSeed     = "QUEENSRUSH_BOT_SEED"
	EnvHintTTL     = "QUEENSRUSH_HINT_TTL"
	EnvStorageType = "STORAGE_TYPE"
	EnvRedisURL    = "REDIS_URL"
)

// Config is the server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Game    GameConfig    `yaml:"game"`
	Bot     BotConfig     `yaml:"bot"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	Type  string      `yaml:"type"`
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis settings used when Type is redis
type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	GameTTL      time.Duration `yaml:"game_ttl"`
	ResultTTL    time.Duration `yaml:"result_ttl"`
	MaxResults   int           `yaml:"max_results"`
}

// GameConfig holds defaults for new games
type GameConfig struct {
	GridSize      int           `yaml:"grid_size"`
	TurnTimeLimit time.Duration `yaml:"turn_time_limit"`
	TimeoutPolicy string        `yaml:"timeout_policy"`
	// HintTTL is how long clients should show hints before hiding them
	HintTTL time.Duration `yaml:"hint_ttl"`
}

// BotConfig configures the bot player
type BotConfig struct {
	Strategy string `yaml:"strategy"`
	// Seed makes bot moves reproducible when set
	Seed *uint64 `yaml:"seed"`
}

// LogConfig configures the slog handler
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or text
}

// Default returns the built-in configuration
func Default() Config {
	redisCfg := redisstorage.DefaultConfig()
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Type: storage.TypeMemory,
			Redis: RedisConfig{
				URL:          redisCfg.URL,
				PoolSize:     redisCfg.PoolSize,
				MinIdleConns: redisCfg.MinIdleConns,
				GameTTL:      redisCfg.GameTTL,
				ResultTTL:    redisCfg.ResultTTL,
				MaxResults:   redisCfg.MaxResults,
			},
		},
		Game: GameConfig{
			GridSize:      model.GridSizeSmall,
			TurnTimeLimit: model.DefaultTurnTimeLimit,
			TimeoutPolicy: string(model.TimeoutEndGame),
			HintTTL:       3 * time.Second,
		},
		Bot: BotConfig{
			Strategy: model.DefaultBotStrategy,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the optional YAML file at path, then applies environment overrides
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.Getenv)
}

// LoadWithEnv is Load with an injectable environment lookup
func LoadWithEnv(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvHost); v != "" {
		cfg.Server.Host = v
	}
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		cfg.Server.Port = port
	}
	if v := getenv(EnvStorageType); v != "" {
		cfg.Storage.Type = strings.ToLower(v)
	}
	if v := getenv(EnvRedisURL); v != "" {
		cfg.Storage.Redis.URL = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
	if v := getenv(EnvBotSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBotSeed, err)
		}
		cfg.Bot.Seed = &seed
	}
	if v := getenv(EnvHintTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHintTTL, err)
		}
		cfg.Game.HintTTL = ttl
	}
	return nil
}

// Validate checks the configuration for values the server cannot start with
func (c Config) Validate() error {
	var errs []error

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	switch c.Storage.Type {
	case storage.TypeMemory:
	case storage.TypeRedis:
		if c.Storage.Redis.URL == "" {
			errs = append(errs, errors.New("storage.redis.url required when storage.type is redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.type %q: must be 'memory' or 'redis'", c.Storage.Type))
	}
	if !model.IsValidGridSize(c.Game.GridSize) {
		errs = append(errs, fmt.Errorf("game.grid_size: %w", model.ErrInvalidGridSize))
	}
	if err := model.ValidateTurnTimeLimit(c.Game.TurnTimeLimit); err != nil {
		errs = append(errs, fmt.Errorf("game.turn_time_limit %s: %w", c.Game.TurnTimeLimit, err))
	}
	if _, err := model.ParseTimeoutPolicy(c.Game.TimeoutPolicy); err != nil {
		errs = append(errs, fmt.Errorf("game.timeout_policy: %w", err))
	}
	if !model.IsValidBotStrategy(c.Bot.Strategy) {
		errs = append(errs, fmt.Errorf("bot.strategy %q: %w", c.Bot.Strategy, model.ErrUnknownBotStrategy))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// SlogLevel parses the configured log level
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// NewLogger builds the slog logger described by the configuration
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, _ := l.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// APIConfig converts the server section to the api package's config
func (s ServerConfig) APIConfig() api.ServerConfig {
	return api.ServerConfig{
		Host:            s.Host,
		Port:            s.Port,
		ReadTimeout:     s.ReadTimeout,
		WriteTimeout:    s.WriteTimeout,
		ShutdownTimeout: s.ShutdownTimeout,
	}
}

// RedisStorageConfig converts the Redis section to the storage package's config
func (s StorageConfig) RedisStorageConfig() redisstorage.Config {
	return redisstorage.Config{
		URL:          s.Redis.URL,
		PoolSize:     s.Redis.PoolSize,
		MinIdleConns: s.Redis.MinIdleConns,
		GameTTL:      s.Redis.GameTTL,
		ResultTTL:    s.Redis.ResultTTL,
		MaxResults:   s.Redis.MaxResults,
	}
}

// DefaultGameConfig returns the game settings applied when a request leaves them out
func (g GameConfig) DefaultGameConfig() model.GameConfig {
	cfg := model.DefaultGameConfig()
	cfg.GridSize = g.GridSize
	cfg.TurnTimeLimit = g.TurnTimeLimit
	cfg.TimeoutPolicy, _ = model.ParseTimeoutPolicy(g.TimeoutPolicy)
	return cfg
}
