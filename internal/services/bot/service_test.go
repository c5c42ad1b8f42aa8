package bot_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/queensrush/internal/dependencies/mocks"
	"github.com/mcoot/queensrush/internal/model"
	"github.com/mcoot/queensrush/internal/services/board"
	"github.com/mcoot/queensrush/internal/services/bot"
	"github.com/mcoot/queensrush/internal/services/game"
	"github.com/mcoot/queensrush/internal/services/rules"
	"github.com/mcoot/queensrush/internal/storage/memory"
	"github.com/mcoot/queensrush/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	mockClock  *mocks.MockClock
	mockRandom *mocks.MockRandom

	gameController *game.Controller
	botService     *bot.Service

	ctx context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.mockClock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.mockRandom = mocks.NewMockRandom()
	logger := testutil.NopLogger()
	s.ctx = context.Background()

	engine := rules.NewEngine(s.mockRandom)
	s.gameController = game.NewController(memory.New(), engine, s.mockClock, s.mockRandom, logger)

	strategies := map[string]bot.Strategy{
		model.BotStrategySafe:   bot.NewSafeStrategy(engine),
		model.BotStrategyRandom: bot.NewRandomStrategy(s.mockRandom),
	}
	s.botService = bot.NewService(s.gameController, strategies, model.DefaultBotStrategy, logger)
}

func (s *ServiceSuite) createGame(vsBot bool, strategy string) *model.Game {
	s.mockRandom.QueueString("GAME01")
	cfg := model.DefaultGameConfig()
	cfg.VsBot = vsBot
	cfg.BotStrategy = strategy
	g, err := s.gameController.CreateGame(s.ctx, cfg)
	s.Require().NoError(err)
	return g
}

func (s *ServiceSuite) TestPlayTurnPlacesSafeQueen() {
	g := s.createGame(true, model.BotStrategySafe)
	_, _, err := s.gameController.PlaceQueen(s.ctx, g.ID, model.PlayerOne, model.Position{Row: 0, Col: 0})
	s.Require().NoError(err)
	before, _ := s.gameController.GetGame(s.ctx, g.ID)

	actions, err := s.botService.PlayTurn(s.ctx, g.ID)
	s.Require().NoError(err)

	s.Require().Len(actions, 1)
	s.Equal(bot.ActionPlace, actions[0].Type)
	s.Equal(model.PlayerTwo, actions[0].Player)
	s.Contains(board.SafeCells(before.Board, model.Player2), actions[0].Position)

	updated, _ := s.gameController.GetGame(s.ctx, g.ID)
	s.Equal(model.Player2, updated.Board.Get(actions[0].Position))
	s.Equal(model.PlayerOne, updated.ActivePlayer)
	s.Require().NotNil(updated.LastBotMove)
	s.Equal(actions[0].Position, *updated.LastBotMove)
	s.True(updated.Moves[1].ByBot)
}

func (s *ServiceSuite) TestPlayTurnLosingMoveCompletesGame() {
	g := s.createGame(true, model.BotStrategyRandom)
	_, _, err := s.gameController.PlaceQueen(s.ctx, g.ID, model.PlayerOne, model.Position{Row: 0, Col: 0})
	s.Require().NoError(err)

	// First empty cell is (0,1), in the human's row
	s.mockRandom.QueueIntn(0)
	actions, err := s.botService.PlayTurn(s.ctx, g.ID)
	s.Require().NoError(err)

	s.Require().Len(actions, 2)
	s.Equal(model.Position{Row: 0, Col: 1}, actions[0].Position)
	s.Equal(bot.ActionGameComplete, actions[1].Type)

	result, err := s.gameController.GetResult(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(model.PlayerTwo, result.Loser)
	s.True(result.HumanWon())
}

func (s *ServiceSuite) TestPlayTurnNotBotGame() {
	g := s.createGame(false, "")

	_, err := s.botService.PlayTurn(s.ctx, g.ID)
	s.ErrorIs(err, model.ErrNotBotGame)
}

func (s *ServiceSuite) TestPlayTurnOnHumanTurn() {
	g := s.createGame(true, model.BotStrategySafe)

	_, err := s.botService.PlayTurn(s.ctx, g.ID)
	s.ErrorIs(err, model.ErrNotPlayerTurn)
}

func (s *ServiceSuite) TestPlayTurnAfterGameOver() {
	g := s.createGame(true, model.BotStrategySafe)
	s.Require().NoError(s.gameController.AbandonGame(s.ctx, g.ID))

	_, err := s.botService.PlayTurn(s.ctx, g.ID)
	s.ErrorIs(err, model.ErrGameAlreadyOver)
}

func (s *ServiceSuite) TestPlayTurnGameNotFound() {
	_, err := s.botService.PlayTurn(s.ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ServiceSuite) TestPlayTurnFallsBackToDefaultStrategy() {
	logger := testutil.NopLogger()
	engine := rules.NewEngine(s.mockRandom)
	onlySafe := bot.NewService(s.gameController, map[string]bot.Strategy{
		model.BotStrategySafe: bot.NewSafeStrategy(engine),
	}, model.BotStrategySafe, logger)

	g := s.createGame(true, model.BotStrategyRandom)
	_, _, err := s.gameController.PlaceQueen(s.ctx, g.ID, model.PlayerOne, model.Position{Row: 0, Col: 0})
	s.Require().NoError(err)

	actions, err := onlySafe.PlayTurn(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Len(actions, 1)
}

func (s *ServiceSuite) TestPlayTurnThenRevert() {
	g := s.createGame(true, model.BotStrategySafe)
	_, _, err := s.gameController.PlaceQueen(s.ctx, g.ID, model.PlayerOne, model.Position{Row: 0, Col: 0})
	s.Require().NoError(err)

	actions, err := s.botService.PlayTurn(s.ctx, g.ID)
	s.Require().NoError(err)

	updated, delta, err := s.gameController.RevertLastBotMove(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(actions[0].Position, *delta.Cleared)
	s.NotEqual(actions[0].Position, delta.Placed)
	s.Equal(4, updated.RemainingFor(model.PlayerTwo))
	s.Equal(3, updated.RemainingFor(model.PlayerOne))
}
