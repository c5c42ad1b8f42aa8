package bot

import (
	"context"
	"log/slog"

	"github.com/mcoot/queensrush/internal/model"
	"github.com/mcoot/queensrush/internal/services/game"
)

// BotActionType represents the type of action a bot took
type BotActionType string

const (
	ActionPlace        BotActionType = "place"
	ActionGameComplete BotActionType = "game_complete"
)

// BotAction represents a single action taken by a bot during PlayTurn
type BotAction struct {
	Type     BotActionType
	Player   model.PlayerID
	Position model.Position
}

// Service plays the bot's turns in player-vs-bot games
type Service struct {
	gameController  *game.Controller
	strategies      map[string]Strategy
	defaultStrategy string
	logger          *slog.Logger
}

// NewService creates a new bot Service. Games naming an unregistered
// strategy fall back to defaultStrategy.
func NewService(
	gameController *game.Controller,
	strategies map[string]Strategy,
	defaultStrategy string,
	logger *slog.Logger,
) *Service {
	return &Service{
		gameController:  gameController,
		strategies:      strategies,
		defaultStrategy: defaultStrategy,
		logger:          logger.With(slog.String("component", "bot-service")),
	}
}

// PlayTurn makes the bot place its queen if it is the bot's turn.
// The returned actions let callers report what happened; a thinking delay
// before calling this is up to the caller.
func (s *Service) PlayTurn(ctx context.Context, gameID model.GameID) ([]BotAction, error) {
	g, err := s.gameController.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if !g.Config.VsBot {
		return nil, model.ErrNotBotGame
	}
	if g.IsOver() {
		return nil, model.ErrGameAlreadyOver
	}
	if !g.IsBotTurn() {
		return nil, model.ErrNotPlayerTurn
	}

	strategy, err := s.strategyFor(g)
	if err != nil {
		return nil, err
	}

	bot := g.BotPlayer()
	pos, err := strategy.ChoosePosition(g, g.Board)
	if err != nil {
		return nil, err
	}

	_, delta, err := s.gameController.PlaceQueen(ctx, gameID, bot, pos)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("bot placed queen",
		slog.String("game_id", string(gameID)),
		slog.String("strategy", g.Config.BotStrategy),
		slog.String("position", pos.String()),
	)

	actions := []BotAction{{
		Type:     ActionPlace,
		Player:   bot,
		Position: pos,
	}}
	if delta.Terminal {
		actions = append(actions, BotAction{Type: ActionGameComplete, Player: bot})
	}
	return actions, nil
}

// strategyFor returns the strategy configured for the game, falling back to
// the default strategy if the game's strategy is not registered
func (s *Service) strategyFor(g *model.Game) (Strategy, error) {
	if st, ok := s.strategies[g.Config.BotStrategy]; ok {
		return st, nil
	}
	if st, ok := s.strategies[s.defaultStrategy]; ok {
		return st, nil
	}
	return nil, model.ErrUnknownBotStrategy
}
