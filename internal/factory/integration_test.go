package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/queensrush/internal/model"
	"github.com/mcoot/queensrush/internal/services/board"
	"github.com/mcoot/queensrush/internal/services/bot"
	"github.com/mcoot/queensrush/internal/storage"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func pos(row, col int) model.Position {
	return model.Position{Row: row, Col: col}
}

func (s *IntegrationSuite) createGame(id string, mutate func(*model.GameConfig)) *model.Game {
	s.app.MockRandom.QueueString(id)
	cfg := model.DefaultGameConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := s.app.GameController.CreateGame(s.ctx, cfg)
	s.Require().NoError(err)
	return g
}

func (s *IntegrationSuite) place(id model.GameID, player model.PlayerID, p model.Position) model.SessionDelta {
	_, delta, err := s.app.GameController.PlaceQueen(s.ctx, id, player, p)
	s.Require().NoError(err)
	return delta
}

// Test: Two players alternate until a diagonal attack ends the game
func (s *IntegrationSuite) TestTwoPlayerGameToAttack() {
	g := s.createGame("GAME01", nil)
	s.Equal(model.GameID("GAME01"), g.ID)
	s.Equal(4, g.RemainingFor(model.PlayerOne))

	s.place(g.ID, model.PlayerOne, pos(0, 0))
	s.place(g.ID, model.PlayerTwo, pos(1, 2))
	s.place(g.ID, model.PlayerOne, pos(2, 4))
	s.place(g.ID, model.PlayerTwo, pos(3, 1))
	s.place(g.ID, model.PlayerOne, pos(4, 3))

	s.app.MockClock.Advance(2 * time.Second)
	delta := s.place(g.ID, model.PlayerTwo, pos(5, 5))
	s.True(delta.Terminal)
	s.Equal(model.PlayerOne, delta.Winner)
	s.Equal(model.PlayerTwo, delta.Loser)

	// The finished game rejects further placements
	_, _, err := s.app.GameController.PlaceQueen(s.ctx, g.ID, model.PlayerOne, pos(5, 0))
	s.ErrorIs(err, model.ErrGameAlreadyOver)

	result, err := s.app.GameController.GetResult(s.ctx, g.ID)
	s.Require().NoError(err)
	s.NotEmpty(result.ID)
	s.Equal(model.EndReasonAttack, result.Reason)
	s.Require().NotNil(result.LosingMove)
	s.Equal(pos(5, 5), *result.LosingMove)
	s.Equal([]model.Position{pos(0, 0), pos(5, 5)}, result.AttackingQueens)
	s.Equal(1, result.Player1Remaining)
	s.Equal(1, result.Player2Remaining)
	s.Equal(6, result.MoveCount)
	s.False(result.VsBot)
	s.Equal(s.app.MockClock.Now(), result.FinishedAt)
}

// Test: A bot game where the human asks for the bot's move to be reverted
func (s *IntegrationSuite) TestBotGameWithRevert() {
	g := s.createGame("BOTGAME", func(cfg *model.GameConfig) {
		cfg.VsBot = true
		cfg.BotStrategy = model.BotStrategySafe
	})
	s.Equal(model.DefaultBotName, g.Config.Players[1].Name)

	s.place(g.ID, model.PlayerOne, pos(0, 0))

	actions, err := s.app.BotService.PlayTurn(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Require().Len(actions, 1)
	s.Equal(bot.ActionPlace, actions[0].Type)
	first := actions[0].Position

	afterBot, err := s.app.GameController.GetGame(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(model.PlayerOne, afterBot.ActivePlayer)
	s.Equal(3, afterBot.RemainingFor(model.PlayerTwo))

	reverted, delta, err := s.app.GameController.RevertLastBotMove(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Require().NotNil(delta.Cleared)
	s.Equal(first, *delta.Cleared)
	s.NotEqual(first, delta.Placed)
	s.True(reverted.Board.IsEmpty(first))
	s.Equal(model.Player2, reverted.Board.Get(delta.Placed))
	s.Equal(4, reverted.RemainingFor(model.PlayerTwo))
	s.Len(reverted.Moves, 2)
	s.Require().NotNil(reverted.LastBotMove)
	s.Equal(delta.Placed, *reverted.LastBotMove)

	// Hints for the human never suggest an attacked cell
	hints, err := s.app.GameController.Hints(s.ctx, g.ID, model.PlayerOne)
	s.Require().NoError(err)
	s.Equal(board.SafeCells(reverted.Board, model.Player1), hints)
}

// Test: The turn timer ends the game for the player who ran out of time
func (s *IntegrationSuite) TestTurnTimeout() {
	g := s.createGame("TIMED1", func(cfg *model.GameConfig) {
		cfg.TurnTimeLimit = 10 * time.Second
	})

	s.app.MockClock.Advance(9 * time.Second)
	_, applied, err := s.app.GameController.CheckTurnTimeout(s.ctx, g.ID)
	s.Require().NoError(err)
	s.False(applied)

	s.app.MockClock.Advance(time.Second)
	updated, applied, err := s.app.GameController.CheckTurnTimeout(s.ctx, g.ID)
	s.Require().NoError(err)
	s.True(applied)
	s.Equal(model.GameStateTerminal, updated.State)

	result, err := s.app.GameController.GetResult(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(model.EndReasonTimeout, result.Reason)
	s.Equal(model.PlayerOne, result.Loser)
	s.Nil(result.LosingMove)
}

// Test: Restarting keeps earlier results and both rounds are listed
func (s *IntegrationSuite) TestRestartKeepsResults() {
	g := s.createGame("AGAIN1", nil)

	s.place(g.ID, model.PlayerOne, pos(0, 0))
	s.place(g.ID, model.PlayerTwo, pos(0, 5))

	restarted, err := s.app.GameController.Restart(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(g.ID, restarted.ID)
	s.Equal(model.GameStateInProgress, restarted.State)
	s.Empty(restarted.Moves)

	_, err = s.app.GameController.GetResult(s.ctx, g.ID)
	s.ErrorIs(err, model.ErrGameNotOver)

	s.app.MockClock.Advance(time.Minute)
	s.place(g.ID, model.PlayerOne, pos(2, 2))
	s.place(g.ID, model.PlayerTwo, pos(3, 3))

	current, err := s.app.GameController.GetResult(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(pos(3, 3), *current.LosingMove)

	results, err := s.app.GameController.ListResults(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(results, 2)
	s.Equal(pos(3, 3), *results[0].LosingMove)
	s.Equal(pos(0, 5), *results[1].LosingMove)
	s.NotEqual(results[0].ID, results[1].ID)
}

// Test: New wires the memory backend and rejects unknown settings
func (s *IntegrationSuite) TestNewValidatesConfig() {
	app, err := New(Config{})
	s.Require().NoError(err)
	s.NotNil(app.GameController)
	s.NotNil(app.BotService)
	s.Same(app.Random, app.MoveRandom)

	seed := uint64(7)
	app, err = New(Config{BotSeed: &seed})
	s.Require().NoError(err)
	s.NotSame(app.Random, app.MoveRandom)

	_, err = New(Config{StorageType: "postgres"})
	s.Error(err)

	_, err = New(Config{StorageType: storage.TypeRedis})
	s.Error(err)

	_, err = New(Config{DefaultBotStrategy: "minimax"})
	s.ErrorIs(err, model.ErrUnknownBotStrategy)
}
