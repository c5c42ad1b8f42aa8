package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/queensrush/internal/dependencies/clock"
	"github.com/mcoot/queensrush/internal/dependencies/random"
	"github.com/mcoot/queensrush/internal/model"
	"github.com/mcoot/queensrush/internal/services/bot"
	"github.com/mcoot/queensrush/internal/services/game"
	"github.com/mcoot/queensrush/internal/services/rules"
	"github.com/mcoot/queensrush/internal/storage"
	"github.com/mcoot/queensrush/internal/storage/memory"
	redisstorage "github.com/mcoot/queensrush/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	// Random generates game IDs
	Random random.Random
	// MoveRandom drives bot moves and reverts, seeded when BotSeed is set
	MoveRandom random.Random

	// Services
	Engine         *rules.Engine
	GameController *game.Controller
	BotService     *bot.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// BotSeed makes bot move selection reproducible (optional)
	BotSeed *uint64
	// DefaultBotStrategy is used for games naming an unknown strategy
	// If empty, defaults to model.DefaultBotStrategy
	DefaultBotStrategy string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = storage.TypeMemory
	}

	switch storageType {
	case storage.TypeMemory:
		store = memory.New()
	case storage.TypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	defaultStrategy := cfg.DefaultBotStrategy
	if defaultStrategy == "" {
		defaultStrategy = model.DefaultBotStrategy
	}
	if !model.IsValidBotStrategy(defaultStrategy) {
		return nil, model.ErrUnknownBotStrategy
	}

	clk := clock.New()
	rnd := random.New()
	var moveRnd random.Random = rnd
	if cfg.BotSeed != nil {
		moveRnd = random.NewSeeded(*cfg.BotSeed)
		logger.Info("bot moves seeded", slog.Uint64("seed", *cfg.BotSeed))
	}

	logger.Info("storage initialised", slog.String("type", storageType))

	return newWithDependencies(store, clk, rnd, moveRnd, defaultStrategy, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	moveRnd random.Random,
	defaultStrategy string,
	logger *slog.Logger,
) *App {
	engine := rules.NewEngine(moveRnd)
	gameController := game.NewController(store, engine, clk, rnd, logger)
	strategies := map[string]bot.Strategy{
		model.BotStrategySafe:   bot.NewSafeStrategy(engine),
		model.BotStrategyRandom: bot.NewRandomStrategy(moveRnd),
	}
	botService := bot.NewService(gameController, strategies, defaultStrategy, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		MoveRandom:     moveRnd,
		Engine:         engine,
		GameController: gameController,
		BotService:     botService,
	}
}
