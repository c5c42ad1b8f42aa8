package bot

import "github.com/mcoot/queensrush/internal/model"

// Strategy defines how a bot chooses where to place its queen
type Strategy interface {
	// ChoosePosition selects an empty cell on the board for the bot's queen
	ChoosePosition(game *model.Game, board *model.Board) (model.Position, error)
}
