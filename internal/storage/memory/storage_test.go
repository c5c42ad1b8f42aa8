package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/queensrush/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) newResult(id string, gameID model.GameID) *model.GameResult {
	return &model.GameResult{
		ID:              id,
		GameID:          gameID,
		Winner:          model.PlayerOne,
		Loser:           model.PlayerTwo,
		Reason:          model.EndReasonAttack,
		LosingMove:      &model.Position{Row: 0, Col: 1},
		AttackingQueens: []model.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}},
		GridSize:        6,
		FinishedAt:      s.now,
	}
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	game := model.NewGame("game-1", model.DefaultGameConfig(), s.now)
	game.Board.Set(model.Position{Row: 2, Col: 3}, model.Player1)

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game, retrieved)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestSavedGameIsIsolatedFromCaller() {
	game := model.NewGame("game-1", model.DefaultGameConfig(), s.now)
	_ = s.storage.SaveGame(s.ctx, game)

	// Mutating after save must not leak into the store
	game.Board.Set(model.Position{Row: 0, Col: 0}, model.Player1)

	retrieved, _ := s.storage.GetGame(s.ctx, "game-1")
	s.True(retrieved.Board.IsEmpty(model.Position{Row: 0, Col: 0}))

	// Nor may mutating a loaded copy
	retrieved.Board.Set(model.Position{Row: 1, Col: 1}, model.Player2)
	again, _ := s.storage.GetGame(s.ctx, "game-1")
	s.True(again.Board.IsEmpty(model.Position{Row: 1, Col: 1}))
}

func (s *StorageSuite) TestDeleteGame() {
	_ = s.storage.SaveGame(s.ctx, model.NewGame("game-1", model.DefaultGameConfig(), s.now))

	err := s.storage.DeleteGame(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Result tests

func (s *StorageSuite) TestSaveAndGetResult() {
	result := s.newResult("result-1", "game-1")

	err := s.storage.SaveResult(s.ctx, result)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetResult(s.ctx, "result-1")
	s.Require().NoError(err)
	s.Equal(result, retrieved)
}

func (s *StorageSuite) TestGetResultNotFound() {
	_, err := s.storage.GetResult(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrResultNotFound)

	_, err = s.storage.GetLatestResult(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrResultNotFound)
}

func (s *StorageSuite) TestGetLatestResultForGame() {
	_ = s.storage.SaveResult(s.ctx, s.newResult("result-1", "game-1"))
	_ = s.storage.SaveResult(s.ctx, s.newResult("result-2", "game-2"))
	_ = s.storage.SaveResult(s.ctx, s.newResult("result-3", "game-1"))

	latest, err := s.storage.GetLatestResult(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal("result-3", latest.ID)
}

func (s *StorageSuite) TestListResultsNewestFirst() {
	for _, id := range []string{"r1", "r2", "r3"} {
		_ = s.storage.SaveResult(s.ctx, s.newResult(id, "game-1"))
	}

	results, err := s.storage.ListResults(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(results, 3)
	s.Equal("r3", results[0].ID)
	s.Equal("r1", results[2].ID)

	limited, err := s.storage.ListResults(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(limited, 2)
}

func (s *StorageSuite) TestListResultsEmpty() {
	results, err := s.storage.ListResults(s.ctx, 10)
	s.Require().NoError(err)
	s.NotNil(results)
	s.Empty(results)
}

func (s *StorageSuite) TestSaveResultTwiceKeepsSingleEntry() {
	result := s.newResult("result-1", "game-1")
	_ = s.storage.SaveResult(s.ctx, result)
	_ = s.storage.SaveResult(s.ctx, result)

	results, _ := s.storage.ListResults(s.ctx, 0)
	s.Len(results, 1)
}
