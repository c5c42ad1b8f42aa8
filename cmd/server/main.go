package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/queensrush/internal/api"
	"github.com/mcoot/queensrush/internal/config"
	"github.com/mcoot/queensrush/internal/factory"
	"github.com/mcoot/queensrush/internal/model"
	"github.com/mcoot/queensrush/internal/storage"
)

func main() {
	cfg, err := config.Load(os.Getenv(config.EnvConfigPath))
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := cfg.Log.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:             logger,
		StorageType:        cfg.Storage.Type,
		BotSeed:            cfg.Bot.Seed,
		DefaultBotStrategy: cfg.Bot.Strategy,
	}
	if cfg.Storage.Type == storage.TypeRedis {
		redisCfg := cfg.Storage.RedisStorageConfig()
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if closer, ok := app.Storage.(io.Closer); ok {
		defer closer.Close()
	}

	app.GameController.OnEvent(func(e model.Event) {
		if e.Type != model.EventGameOver {
			return
		}
		if payload, ok := e.Payload.(model.GameOverPayload); ok {
			logger.Info("game over",
				slog.String("game_id", string(e.GameID)),
				slog.Int("winner", int(payload.Result.Winner)),
				slog.String("reason", string(payload.Result.Reason)),
				slog.Int("moves", payload.Result.MoveCount),
			)
		}
	})

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		BotService:     app.BotService,
		GameDefaults:   cfg.Game.DefaultGameConfig(),
		HintTTL:        cfg.Game.HintTTL,
	})

	serverCfg := cfg.Server.APIConfig()
	server := api.NewServer(router, serverCfg, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("server starting",
		slog.String("addr", serverCfg.Addr()),
		slog.String("storage", cfg.Storage.Type),
		slog.Int("grid_size", cfg.Game.GridSize),
	)

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
