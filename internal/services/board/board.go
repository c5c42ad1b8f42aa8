package board

import "github.com/mcoot/queensrush/internal/model"

// IsAttacking reports whether two queens share a row, column or diagonal.
// A position always attacks itself; callers pass distinct occupied cells.
func IsAttacking(a, b model.Position) bool {
	if a.Row == b.Row || a.Col == b.Col {
		return true
	}
	return abs(a.Row-b.Row) == abs(a.Col-b.Col)
}

// IsTerminal reports whether any two queens on the board attack each other
func IsTerminal(b *model.Board) bool {
	occupied := b.OccupiedPositions()
	for i := 0; i < len(occupied); i++ {
		for j := i + 1; j < len(occupied); j++ {
			if IsAttacking(occupied[i], occupied[j]) {
				return true
			}
		}
	}
	return false
}

// AttackingQueens returns every queen that takes part in at least one attack,
// in row-major order
func AttackingQueens(b *model.Board) []model.Position {
	occupied := b.OccupiedPositions()
	involved := make([]bool, len(occupied))
	for i := 0; i < len(occupied); i++ {
		for j := i + 1; j < len(occupied); j++ {
			if IsAttacking(occupied[i], occupied[j]) {
				involved[i] = true
				involved[j] = true
			}
		}
	}

	var result []model.Position
	for i, pos := range occupied {
		if involved[i] {
			result = append(result, pos)
		}
	}
	return result
}

// WouldBeTerminal simulates a placement on a copy of the board.
// The board passed in is never modified.
func WouldBeTerminal(b *model.Board, pos model.Position, occupant model.Occupant) bool {
	sim := b.Clone()
	sim.Set(pos, occupant)
	return IsTerminal(sim)
}

// SafeCells returns the empty cells where a queen of the given occupant
// would not end the game, in row-major order. The slice is always freshly
// allocated and never nil.
func SafeCells(b *model.Board, occupant model.Occupant) []model.Position {
	safe := make([]model.Position, 0)
	for _, pos := range b.EmptyPositions() {
		if !WouldBeTerminal(b, pos, occupant) {
			safe = append(safe, pos)
		}
	}
	return safe
}

// ValidatePlacement checks if a position is valid and empty
func ValidatePlacement(b *model.Board, pos model.Position) error {
	if !b.IsValidPosition(pos) {
		return model.ErrInvalidPosition
	}
	if !b.IsEmpty(pos) {
		return model.ErrOccupiedCell
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
