package rules

import (
	"github.com/mcoot/queensrush/internal/dependencies/random"
	"github.com/mcoot/queensrush/internal/model"
	"github.com/mcoot/queensrush/internal/services/board"
)

// Engine applies the queens rules to a game session.
// It is synchronous and keeps no state of its own beyond the random source.
type Engine struct {
	random random.Random
}

// NewEngine creates a new Engine using rnd for bot move shuffling
func NewEngine(rnd random.Random) *Engine {
	return &Engine{random: rnd}
}

// PlaceQueen places the player's queen at pos.
// Every check runs before the board is touched, so an error leaves the
// session exactly as it was.
func (e *Engine) PlaceQueen(g *model.Game, pos model.Position, player model.PlayerID) (model.SessionDelta, error) {
	if g.IsOver() {
		return model.SessionDelta{}, model.ErrGameAlreadyOver
	}
	if !player.IsValid() {
		return model.SessionDelta{}, model.ErrInvalidPlayer
	}
	if player != g.ActivePlayer {
		return model.SessionDelta{}, model.ErrNotPlayerTurn
	}
	if err := board.ValidatePlacement(g.Board, pos); err != nil {
		return model.SessionDelta{}, err
	}
	if g.RemainingFor(player) <= 0 {
		return model.SessionDelta{}, model.ErrNoQueensRemaining
	}

	e.apply(g, pos, player)

	delta := model.SessionDelta{
		Player: player,
		Placed: pos,
	}
	if board.IsTerminal(g.Board) {
		e.finish(g, player, model.EndReasonAttack)
	} else {
		g.ActivePlayer = player.Other()
	}
	return e.fillDelta(g, delta), nil
}

// ComputeHints returns the empty cells where forPlayer could place without
// ending the game. The session board is not modified.
func (e *Engine) ComputeHints(b *model.Board, forPlayer model.PlayerID) ([]model.Position, error) {
	if !forPlayer.IsValid() {
		return nil, model.ErrInvalidPlayer
	}
	return board.SafeCells(b, forPlayer.Occupant()), nil
}

// SelectBotMove shuffles the empty cells and returns the first one that does
// not end the game. When every empty cell loses, the first shuffled cell is
// returned.
func (e *Engine) SelectBotMove(b *model.Board, botPlayer model.PlayerID) (model.Position, error) {
	if !botPlayer.IsValid() {
		return model.Position{}, model.ErrInvalidPlayer
	}
	return e.selectFrom(b, b.EmptyPositions(), botPlayer.Occupant())
}

// RevertLastBotMove clears the bot's last queen, gives it back to the bot and
// plays a replacement move, avoiding the reverted cell whenever another empty
// cell exists.
func (e *Engine) RevertLastBotMove(g *model.Game, lastBotMove *model.Position) (model.SessionDelta, error) {
	if g.IsOver() {
		return model.SessionDelta{}, model.ErrGameAlreadyOver
	}
	if !g.Config.VsBot {
		return model.SessionDelta{}, model.ErrNotBotGame
	}
	bot := g.BotPlayer()
	if lastBotMove == nil || g.Board.Get(*lastBotMove) != bot.Occupant() {
		return model.SessionDelta{}, model.ErrNoBotMoveToRevert
	}

	reverted := *lastBotMove
	g.Board.Clear(reverted)
	g.AdjustRemaining(bot, 1)
	e.dropMove(g, reverted, bot)

	candidates := g.Board.EmptyPositions()
	if len(candidates) > 1 {
		candidates = without(candidates, reverted)
	}
	replacement, err := e.selectFrom(g.Board, candidates, bot.Occupant())
	if err != nil {
		return model.SessionDelta{}, err
	}

	// The replacement is free: the bot ends the revert one queen up
	e.put(g, replacement, bot)
	g.LastBotMove = &replacement

	delta := model.SessionDelta{
		Player:  bot,
		Placed:  replacement,
		Cleared: &reverted,
	}
	if board.IsTerminal(g.Board) {
		e.finish(g, bot, model.EndReasonAttack)
	} else {
		g.ActivePlayer = bot.Other()
	}
	return e.fillDelta(g, delta), nil
}

// ApplyTimeout handles the expiry of the active player's turn timer
func (e *Engine) ApplyTimeout(g *model.Game, policy model.TimeoutPolicy) (model.SessionDelta, error) {
	if g.IsOver() {
		return model.SessionDelta{}, model.ErrGameAlreadyOver
	}

	timedOut := g.ActivePlayer
	delta := model.SessionDelta{Player: timedOut}

	switch policy {
	case model.TimeoutEndGame, "":
		e.finish(g, timedOut, model.EndReasonTimeout)
	case model.TimeoutPassTurn:
		g.ActivePlayer = timedOut.Other()
	default:
		return model.SessionDelta{}, model.ErrInvalidTimeoutPolicy
	}
	return e.fillDelta(g, delta), nil
}

// Result builds the immutable outcome of a finished game.
// The caller assigns the result ID and finish time.
func (e *Engine) Result(g *model.Game) (*model.GameResult, error) {
	if g.State != model.GameStateTerminal {
		return nil, model.ErrGameNotOver
	}

	result := &model.GameResult{
		GameID:           g.ID,
		Winner:           g.Winner,
		Loser:            g.Loser,
		Reason:           g.EndReason,
		AttackingQueens:  board.AttackingQueens(g.Board),
		Player1Remaining: g.RemainingFor(model.PlayerOne),
		Player2Remaining: g.RemainingFor(model.PlayerTwo),
		GridSize:         g.GridSize(),
		VsBot:            g.Config.VsBot,
		MoveCount:        len(g.Moves),
	}
	if g.EndReason == model.EndReasonAttack {
		if last := g.LastMove(); last != nil {
			pos := last.Position
			result.LosingMove = &pos
		}
	}
	return result, nil
}

func (e *Engine) selectFrom(b *model.Board, candidates []model.Position, occupant model.Occupant) (model.Position, error) {
	if len(candidates) == 0 {
		return model.Position{}, model.ErrNoEmptyCells
	}

	shuffled := append([]model.Position(nil), candidates...)
	e.shuffle(shuffled)

	for _, pos := range shuffled {
		if !board.WouldBeTerminal(b, pos, occupant) {
			return pos, nil
		}
	}
	return shuffled[0], nil
}

// shuffle is a Fisher-Yates shuffle driven by the injected random source
func (e *Engine) shuffle(cells []model.Position) {
	for i := len(cells) - 1; i > 0; i-- {
		j := e.random.Intn(i + 1)
		cells[i], cells[j] = cells[j], cells[i]
	}
}

func (e *Engine) apply(g *model.Game, pos model.Position, player model.PlayerID) {
	e.put(g, pos, player)
	g.AdjustRemaining(player, -1)
}

// put places the queen and records the move without touching the counters
func (e *Engine) put(g *model.Game, pos model.Position, player model.PlayerID) {
	g.Board.Set(pos, player.Occupant())
	g.Moves = append(g.Moves, model.Move{
		Player:   player,
		Position: pos,
		ByBot:    player == g.BotPlayer(),
	})
}

// finish marks the session terminal with loser as the losing player
func (e *Engine) finish(g *model.Game, loser model.PlayerID, reason model.EndReason) {
	g.State = model.GameStateTerminal
	g.Loser = loser
	g.Winner = loser.Other()
	g.EndReason = reason
}

// dropMove removes the most recent history entry for pos by player
func (e *Engine) dropMove(g *model.Game, pos model.Position, player model.PlayerID) {
	for i := len(g.Moves) - 1; i >= 0; i-- {
		if g.Moves[i].Position == pos && g.Moves[i].Player == player {
			g.Moves = append(g.Moves[:i], g.Moves[i+1:]...)
			return
		}
	}
}

func (e *Engine) fillDelta(g *model.Game, delta model.SessionDelta) model.SessionDelta {
	delta.Terminal = g.State == model.GameStateTerminal
	delta.Remaining = g.Remaining
	if delta.Terminal {
		delta.NextPlayer = model.NoPlayer
		delta.Winner = g.Winner
		delta.Loser = g.Loser
	} else {
		delta.NextPlayer = g.ActivePlayer
	}
	return delta
}

func without(cells []model.Position, exclude model.Position) []model.Position {
	result := make([]model.Position, 0, len(cells))
	for _, pos := range cells {
		if pos != exclude {
			result = append(result, pos)
		}
	}
	return result
}
