package game

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/queensrush/internal/dependencies/clock"
	"github.com/mcoot/queensrush/internal/dependencies/random"
	"github.com/mcoot/queensrush/internal/model"
	"github.com/mcoot/queensrush/internal/services/rules"
	"github.com/mcoot/queensrush/internal/storage"
)

const (
	// GameIDAlphabet is the character set for generated game IDs
	GameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// GameIDLength is the length of generated game IDs
	GameIDLength = 12
)

// Controller drives game sessions: it loads a session, applies the rules
// engine, stamps times and saves the result
type Controller struct {
	storage storage.Storage
	engine  *rules.Engine
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	mu        sync.RWMutex
	listeners []model.EventListener
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	engine *rules.Engine,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		engine:  engine,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// OnEvent registers a listener that is called after every saved state change
func (c *Controller) OnEvent(listener model.EventListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, listener)
}

// CreateGame validates the configuration and starts a new game
func (c *Controller) CreateGame(ctx context.Context, cfg model.GameConfig) (*model.Game, error) {
	cfg, err := normalizeConfig(cfg)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	gameID := model.GameID(c.random.String(GameIDLength, GameIDAlphabet))
	game := model.NewGame(gameID, cfg, now)

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(gameID)),
		slog.Int("grid_size", cfg.GridSize),
		slog.Bool("vs_bot", cfg.VsBot),
		slog.String("timeout_policy", string(cfg.TimeoutPolicy)),
	)
	c.emit(model.Event{Type: model.EventGameCreated, GameID: gameID, Player: game.ActivePlayer})

	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// PlaceQueen places a queen for the player. A failed placement leaves the
// stored session unchanged.
func (c *Controller) PlaceQueen(ctx context.Context, gameID model.GameID, player model.PlayerID, pos model.Position) (*model.Game, model.SessionDelta, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, model.SessionDelta{}, err
	}

	delta, err := c.engine.PlaceQueen(game, pos, player)
	if err != nil {
		c.logger.Debug("placement rejected",
			slog.String("game_id", string(gameID)),
			slog.Int("player", int(player)),
			slog.String("position", pos.String()),
			slog.String("error", err.Error()),
		)
		return nil, model.SessionDelta{}, err
	}

	byBot := player == game.BotPlayer()
	if byBot {
		game.LastBotMove = &pos
	} else {
		// A human move closes the window for reverting the bot
		game.LastBotMove = nil
	}

	if err := c.commit(ctx, game, delta); err != nil {
		return nil, model.SessionDelta{}, err
	}

	c.logger.Info("queen placed",
		slog.String("game_id", string(gameID)),
		slog.Int("player", int(player)),
		slog.String("position", pos.String()),
		slog.Bool("by_bot", byBot),
		slog.Bool("terminal", delta.Terminal),
	)
	c.emit(model.Event{
		Type:   model.EventQueenPlaced,
		GameID: gameID,
		Player: player,
		Payload: model.QueenPlacedPayload{
			Position: pos,
			ByBot:    byBot,
			Terminal: delta.Terminal,
		},
	})

	if delta.Terminal {
		if err := c.finishGame(ctx, game); err != nil {
			return nil, model.SessionDelta{}, err
		}
	}
	return game, delta, nil
}

// Hints returns the cells where the player could place without losing
func (c *Controller) Hints(ctx context.Context, gameID model.GameID, player model.PlayerID) ([]model.Position, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.IsOver() {
		return nil, model.ErrGameAlreadyOver
	}
	return c.engine.ComputeHints(game.Board, player)
}

// RevertLastBotMove undoes the bot's most recent placement and makes it play elsewhere
func (c *Controller) RevertLastBotMove(ctx context.Context, gameID model.GameID) (*model.Game, model.SessionDelta, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, model.SessionDelta{}, err
	}

	delta, err := c.engine.RevertLastBotMove(game, game.LastBotMove)
	if err != nil {
		return nil, model.SessionDelta{}, err
	}

	if err := c.commit(ctx, game, delta); err != nil {
		return nil, model.SessionDelta{}, err
	}

	c.logger.Info("bot move reverted",
		slog.String("game_id", string(gameID)),
		slog.String("cleared", delta.Cleared.String()),
		slog.String("replacement", delta.Placed.String()),
		slog.Bool("terminal", delta.Terminal),
	)
	c.emit(model.Event{
		Type:   model.EventBotMoveReverted,
		GameID: gameID,
		Player: delta.Player,
		Payload: model.BotMoveRevertedPayload{
			Cleared:  *delta.Cleared,
			Replaced: delta.Placed,
			Terminal: delta.Terminal,
		},
	})

	if delta.Terminal {
		if err := c.finishGame(ctx, game); err != nil {
			return nil, model.SessionDelta{}, err
		}
	}
	return game, delta, nil
}

// Timeout applies the game's timeout policy to the active player.
// It is called by an external timer; use CheckTurnTimeout to let the
// controller's clock decide.
func (c *Controller) Timeout(ctx context.Context, gameID model.GameID) (*model.Game, model.SessionDelta, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, model.SessionDelta{}, err
	}
	return c.applyTimeout(ctx, game)
}

// CheckTurnTimeout applies the timeout policy if the active player's turn
// timer has run out. It reports whether a timeout was applied.
func (c *Controller) CheckTurnTimeout(ctx context.Context, gameID model.GameID) (*model.Game, bool, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, false, err
	}

	limit := game.Config.TurnTimeLimit
	if game.IsOver() || limit <= 0 || c.clock.Since(game.TurnStartedAt) < limit {
		return game, false, nil
	}

	game, _, err = c.applyTimeout(ctx, game)
	if err != nil {
		return nil, false, err
	}
	return game, true, nil
}

func (c *Controller) applyTimeout(ctx context.Context, game *model.Game) (*model.Game, model.SessionDelta, error) {
	delta, err := c.engine.ApplyTimeout(game, game.Config.TimeoutPolicy)
	if err != nil {
		return nil, model.SessionDelta{}, err
	}

	if err := c.commit(ctx, game, delta); err != nil {
		return nil, model.SessionDelta{}, err
	}

	c.logger.Info("turn timed out",
		slog.String("game_id", string(game.ID)),
		slog.Int("player", int(delta.Player)),
		slog.String("policy", string(game.Config.TimeoutPolicy)),
	)
	c.emit(model.Event{
		Type:    model.EventTurnTimedOut,
		GameID:  game.ID,
		Player:  delta.Player,
		Payload: model.TurnTimedOutPayload{Policy: game.Config.TimeoutPolicy},
	})

	if delta.Terminal {
		if err := c.finishGame(ctx, game); err != nil {
			return nil, model.SessionDelta{}, err
		}
	}
	return game, delta, nil
}

// Restart replaces the session with a fresh board under the same configuration.
// Results of earlier rounds are kept.
func (c *Controller) Restart(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	old, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	game := model.NewGame(old.ID, old.Config, c.clock.Now())
	if err := c.storage.SaveGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game restarted",
		slog.String("game_id", string(gameID)),
		slog.String("previous_state", string(old.State)),
	)
	c.emit(model.Event{Type: model.EventGameRestarted, GameID: gameID, Player: game.ActivePlayer})

	return game, nil
}

// AbandonGame ends a game prematurely
func (c *Controller) AbandonGame(ctx context.Context, gameID model.GameID) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.IsOver() {
		return nil // Already finished
	}

	game.State = model.GameStateAbandoned
	game.LastBotMove = nil
	game.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, game); err != nil {
		return err
	}

	c.logger.Info("game abandoned",
		slog.String("game_id", string(gameID)),
	)
	c.emit(model.Event{
		Type:    model.EventGameAbandoned,
		GameID:  gameID,
		Payload: model.GameAbandonedPayload{Reason: "abandoned by player"},
	})
	return nil
}

// DeleteGame abandons the game if it is still running and then removes the
// session. Results already recorded for it are kept.
func (c *Controller) DeleteGame(ctx context.Context, gameID model.GameID) error {
	if err := c.AbandonGame(ctx, gameID); err != nil {
		return err
	}
	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		c.logger.Error("failed to delete game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return err
	}

	c.logger.Info("game deleted",
		slog.String("game_id", string(gameID)),
	)
	return nil
}

// GetResult returns the result of the game's current round. Rounds before a
// restart are only reachable through ListResults.
func (c *Controller) GetResult(ctx context.Context, gameID model.GameID) (*model.GameResult, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.State != model.GameStateTerminal {
		return nil, model.ErrGameNotOver
	}
	return c.storage.GetLatestResult(ctx, gameID)
}

// ListResults returns up to limit recent results, newest first
func (c *Controller) ListResults(ctx context.Context, limit int) ([]*model.GameResult, error) {
	return c.storage.ListResults(ctx, limit)
}

// commit stamps times on a successfully changed session and saves it
func (c *Controller) commit(ctx context.Context, game *model.Game, delta model.SessionDelta) error {
	now := c.clock.Now()
	for i := range game.Moves {
		if game.Moves[i].PlacedAt.IsZero() {
			game.Moves[i].PlacedAt = now
		}
	}
	if !delta.Terminal {
		game.TurnStartedAt = now
	}
	game.UpdatedAt = now

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

// finishGame records the result of a game that has just become terminal
func (c *Controller) finishGame(ctx context.Context, game *model.Game) error {
	result, err := c.engine.Result(game)
	if err != nil {
		return err
	}
	result.ID = uuid.NewString()
	result.FinishedAt = game.UpdatedAt

	if err := c.storage.SaveResult(ctx, result); err != nil {
		c.logger.Error("failed to save result",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}

	c.logger.Info("game over",
		slog.String("game_id", string(game.ID)),
		slog.String("result_id", result.ID),
		slog.Int("winner", int(result.Winner)),
		slog.Int("loser", int(result.Loser)),
		slog.String("reason", string(result.Reason)),
	)
	c.emit(model.Event{
		Type:    model.EventGameOver,
		GameID:  game.ID,
		Player:  result.Loser,
		Payload: model.GameOverPayload{Result: *result},
	})
	return nil
}

func (c *Controller) emit(event model.Event) {
	event.Timestamp = c.clock.Now()

	c.mu.RLock()
	listeners := append([]model.EventListener(nil), c.listeners...)
	c.mu.RUnlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// normalizeConfig validates a game configuration and fills in defaults
func normalizeConfig(cfg model.GameConfig) (model.GameConfig, error) {
	if !model.IsValidGridSize(cfg.GridSize) {
		return cfg, model.ErrInvalidGridSize
	}
	if err := model.ValidateTurnTimeLimit(cfg.TurnTimeLimit); err != nil {
		return cfg, err
	}

	policy, err := model.ParseTimeoutPolicy(string(cfg.TimeoutPolicy))
	if err != nil {
		return cfg, err
	}
	cfg.TimeoutPolicy = policy

	defaults := model.DefaultGameConfig().Players
	if cfg.VsBot {
		if cfg.BotStrategy == "" {
			cfg.BotStrategy = model.DefaultBotStrategy
		}
		if !model.IsValidBotStrategy(cfg.BotStrategy) {
			return cfg, model.ErrUnknownBotStrategy
		}
		defaults[1].Name = model.DefaultBotName
	} else {
		cfg.BotStrategy = ""
	}

	for i := range cfg.Players {
		if cfg.Players[i].Name == "" {
			cfg.Players[i].Name = defaults[i].Name
		}
		if cfg.Players[i].Color == "" {
			cfg.Players[i].Color = defaults[i].Color
		}
		cfg.Players[i].IsBot = cfg.VsBot && model.PlayerID(i+1) == model.PlayerTwo
	}
	return cfg, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, cfg model.GameConfig) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	PlaceQueen(ctx context.Context, gameID model.GameID, player model.PlayerID, pos model.Position) (*model.Game, model.SessionDelta, error)
	Hints(ctx context.Context, gameID model.GameID, player model.PlayerID) ([]model.Position, error)
	RevertLastBotMove(ctx context.Context, gameID model.GameID) (*model.Game, model.SessionDelta, error)
	Timeout(ctx context.Context, gameID model.GameID) (*model.Game, model.SessionDelta, error)
	CheckTurnTimeout(ctx context.Context, gameID model.GameID) (*model.Game, bool, error)
	Restart(ctx context.Context, gameID model.GameID) (*model.Game, error)
	AbandonGame(ctx context.Context, gameID model.GameID) error
	DeleteGame(ctx context.Context, gameID model.GameID) error
	GetResult(ctx context.Context, gameID model.GameID) (*model.GameResult, error)
	ListResults(ctx context.Context, limit int) ([]*model.GameResult, error)
	OnEvent(listener model.EventListener)
}

var _ ControllerInterface = (*Controller)(nil)
