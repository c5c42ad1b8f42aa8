package bot

import (
	"github.com/mcoot/queensrush/internal/dependencies/random"
	"github.com/mcoot/queensrush/internal/model"
)

// RandomStrategy picks any empty cell, with no regard for attacks
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChoosePosition picks a uniformly random empty cell on the board
func (s *RandomStrategy) ChoosePosition(game *model.Game, board *model.Board) (model.Position, error) {
	empty := board.EmptyPositions()
	if len(empty) == 0 {
		return model.Position{}, model.ErrNoEmptyCells
	}
	return empty[s.random.Intn(len(empty))], nil
}
