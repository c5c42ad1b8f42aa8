package model

import "time"

// GameResult is an immutable snapshot of a finished game.
// It copies everything it needs and holds no reference to the session.
type GameResult struct {
	ID         string
	GameID     GameID
	Winner     PlayerID
	Loser      PlayerID
	Reason     EndReason
	LosingMove *Position // The attacking placement; nil for timeouts

	// AttackingQueens are the queens involved in at least one attack
	AttackingQueens  []Position
	Player1Remaining int
	Player2Remaining int
	GridSize         int
	VsBot            bool
	MoveCount        int
	FinishedAt       time.Time
}

// RemainingFor returns the queens the player had left at the end
func (r *GameResult) RemainingFor(player PlayerID) int {
	switch player {
	case PlayerOne:
		return r.Player1Remaining
	case PlayerTwo:
		return r.Player2Remaining
	default:
		return 0
	}
}

// HumanWon reports whether the human beat the bot; false for two-player games
func (r *GameResult) HumanWon() bool {
	return r.VsBot && r.Winner == PlayerOne
}
