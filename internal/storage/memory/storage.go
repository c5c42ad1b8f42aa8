package memory

import (
	"context"
	"sync"

	"github.com/mcoot/queensrush/internal/model"
	"github.com/mcoot/queensrush/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Values are cloned on the way in and out so callers never share state
// with the store.
type Storage struct {
	mu sync.RWMutex

	games       map[model.GameID]*model.Game
	results     map[string]*model.GameResult
	gameResults map[model.GameID][]string
	resultOrder []string // Oldest first
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:       make(map[model.GameID]*model.Game),
		results:     make(map[string]*model.GameResult),
		gameResults: make(map[model.GameID][]string),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game.Clone()
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

// Result operations

func (s *Storage) SaveResult(ctx context.Context, result *model.GameResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.results[result.ID]; !exists {
		s.resultOrder = append(s.resultOrder, result.ID)
		s.gameResults[result.GameID] = append(s.gameResults[result.GameID], result.ID)
	}
	s.results[result.ID] = cloneResult(result)
	return nil
}

func (s *Storage) GetResult(ctx context.Context, id string) (*model.GameResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[id]
	if !ok {
		return nil, model.ErrResultNotFound
	}
	return cloneResult(result), nil
}

func (s *Storage) GetLatestResult(ctx context.Context, gameID model.GameID) (*model.GameResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.gameResults[gameID]
	if len(ids) == 0 {
		return nil, model.ErrResultNotFound
	}
	return cloneResult(s.results[ids[len(ids)-1]]), nil
}

func (s *Storage) ListResults(ctx context.Context, limit int) ([]*model.GameResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]*model.GameResult, 0)
	for i := len(s.resultOrder) - 1; i >= 0; i-- {
		if limit > 0 && len(results) >= limit {
			break
		}
		results = append(results, cloneResult(s.results[s.resultOrder[i]]))
	}
	return results, nil
}

func cloneResult(r *model.GameResult) *model.GameResult {
	clone := *r
	if r.LosingMove != nil {
		pos := *r.LosingMove
		clone.LosingMove = &pos
	}
	clone.AttackingQueens = append([]model.Position(nil), r.AttackingQueens...)
	return &clone
}
