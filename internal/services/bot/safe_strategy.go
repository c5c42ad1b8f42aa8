package bot

import (
	"github.com/mcoot/queensrush/internal/model"
	"github.com/mcoot/queensrush/internal/services/rules"
)

// SafeStrategy plays a random cell that does not end the game, if one exists
type SafeStrategy struct {
	engine *rules.Engine
}

// NewSafeStrategy creates a new SafeStrategy
func NewSafeStrategy(engine *rules.Engine) *SafeStrategy {
	return &SafeStrategy{engine: engine}
}

// ChoosePosition delegates to the engine's one-ply bot move selection
func (s *SafeStrategy) ChoosePosition(game *model.Game, board *model.Board) (model.Position, error) {
	return s.engine.SelectBotMove(board, game.BotPlayer())
}
