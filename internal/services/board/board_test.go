package board

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/queensrush/internal/model"
)

type BoardSuite struct {
	suite.Suite
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, new(BoardSuite))
}

func pos(row, col int) model.Position {
	return model.Position{Row: row, Col: col}
}

// IsAttacking tests

func (s *BoardSuite) TestIsAttackingSameRow() {
	s.True(IsAttacking(pos(2, 0), pos(2, 5)))
}

func (s *BoardSuite) TestIsAttackingSameColumn() {
	s.True(IsAttacking(pos(0, 3), pos(4, 3)))
}

func (s *BoardSuite) TestIsAttackingDiagonals() {
	s.True(IsAttacking(pos(0, 0), pos(5, 5)))
	s.True(IsAttacking(pos(1, 4), pos(4, 1)))
	s.True(IsAttacking(pos(3, 2), pos(1, 0)))
}

func (s *BoardSuite) TestIsAttackingSamePosition() {
	s.True(IsAttacking(pos(2, 2), pos(2, 2)))
}

func (s *BoardSuite) TestIsAttackingKnightOffsetIsSafe() {
	s.False(IsAttacking(pos(0, 0), pos(1, 2)))
	s.False(IsAttacking(pos(0, 0), pos(2, 1)))
	s.False(IsAttacking(pos(3, 3), pos(5, 4)))
}

func (s *BoardSuite) TestIsAttackingIsSymmetric() {
	for r1 := range 6 {
		for c1 := range 6 {
			for r2 := range 6 {
				for c2 := range 6 {
					a, b := pos(r1, c1), pos(r2, c2)
					s.Equal(IsAttacking(a, b), IsAttacking(b, a))
				}
			}
		}
	}
}

// IsTerminal tests

func (s *BoardSuite) TestIsTerminalEmptyBoard() {
	s.False(IsTerminal(model.NewBoard(6)))
	s.False(IsTerminal(model.NewBoard(8)))
}

func (s *BoardSuite) TestIsTerminalSingleQueen() {
	for row := range 8 {
		for col := range 8 {
			b := model.NewBoard(8)
			b.Set(pos(row, col), model.Player1)
			s.False(IsTerminal(b), "single queen at %v", pos(row, col))
		}
	}
}

func (s *BoardSuite) TestIsTerminalAnyAttackingPair() {
	for r1 := range 6 {
		for c1 := range 6 {
			for r2 := range 6 {
				for c2 := range 6 {
					a, b := pos(r1, c1), pos(r2, c2)
					if a == b {
						continue
					}
					board := model.NewBoard(6)
					board.Set(a, model.Player1)
					board.Set(b, model.Player2)
					s.Equal(IsAttacking(a, b), IsTerminal(board), "%v and %v", a, b)
				}
			}
		}
	}
}

func (s *BoardSuite) TestIsTerminalIgnoresOwnership() {
	b := model.NewBoard(6)
	b.Set(pos(1, 1), model.Player1)
	b.Set(pos(1, 4), model.Player1)
	s.True(IsTerminal(b))
}

func (s *BoardSuite) TestIsTerminalNonAttackingSet() {
	b := model.NewBoard(6)
	// A full solution of the six queens puzzle
	for _, p := range []model.Position{pos(0, 1), pos(1, 3), pos(2, 5), pos(3, 0), pos(4, 2), pos(5, 4)} {
		b.Set(p, model.Player1)
	}
	s.False(IsTerminal(b))
}

// AttackingQueens tests

func (s *BoardSuite) TestAttackingQueensOnlyInvolvedQueens() {
	b := model.NewBoard(6)
	b.Set(pos(0, 0), model.Player1)
	b.Set(pos(1, 2), model.Player2)
	b.Set(pos(3, 3), model.Player1)

	s.Equal([]model.Position{pos(0, 0), pos(3, 3)}, AttackingQueens(b))
}

func (s *BoardSuite) TestAttackingQueensNoneWhenSafe() {
	b := model.NewBoard(6)
	b.Set(pos(0, 0), model.Player1)
	b.Set(pos(1, 2), model.Player2)
	s.Empty(AttackingQueens(b))
}

// SafeCells tests

func (s *BoardSuite) TestSafeCellsEmptyBoardIsEveryCell() {
	s.Len(SafeCells(model.NewBoard(6), model.Player1), 36)
}

func (s *BoardSuite) TestSafeCellsAfterCornerQueen() {
	b := model.NewBoard(6)
	b.Set(pos(0, 0), model.Player1)

	hints := SafeCells(b, model.Player2)

	for _, h := range hints {
		s.NotEqual(0, h.Row, "row 0 must be excluded: %v", h)
		s.NotEqual(0, h.Col, "column 0 must be excluded: %v", h)
		s.NotEqual(h.Row, h.Col, "main diagonal must be excluded: %v", h)
	}
	s.NotContains(hints, pos(1, 0))
	s.Contains(hints, pos(2, 1))
	// 36 cells minus row, column and diagonal of the corner
	s.Len(hints, 36-6-5-5)
}

func (s *BoardSuite) TestSafeCellsAreEmptyAndSafe() {
	b := model.NewBoard(8)
	b.Set(pos(0, 0), model.Player1)
	b.Set(pos(1, 2), model.Player2)
	b.Set(pos(2, 4), model.Player1)

	for _, h := range SafeCells(b, model.Player2) {
		s.True(b.IsEmpty(h))
		sim := b.Clone()
		sim.Set(h, model.Player2)
		s.False(IsTerminal(sim))
	}
}

func (s *BoardSuite) TestSafeCellsDoesNotMutateBoard() {
	b := model.NewBoard(6)
	b.Set(pos(2, 3), model.Player1)
	before := b.Clone()

	_ = SafeCells(b, model.Player2)

	s.Equal(before, b)
}

func (s *BoardSuite) TestSafeCellsRowMajorOrder() {
	b := model.NewBoard(6)
	b.Set(pos(0, 0), model.Player1)
	hints := SafeCells(b, model.Player2)
	s.Require().NotEmpty(hints)
	s.Equal(pos(1, 2), hints[0])
}

func (s *BoardSuite) TestSafeCellsNoneLeft() {
	b := model.NewBoard(6)
	for col := range 6 {
		b.Set(pos(0, col), model.Player1)
	}
	// Already terminal, so every further placement stays terminal
	hints := SafeCells(b, model.Player2)
	s.NotNil(hints)
	s.Empty(hints)
}

// ValidatePlacement tests

func (s *BoardSuite) TestValidatePlacement() {
	b := model.NewBoard(6)
	b.Set(pos(1, 1), model.Player1)

	s.NoError(ValidatePlacement(b, pos(0, 0)))
	s.ErrorIs(ValidatePlacement(b, pos(1, 1)), model.ErrOccupiedCell)
	s.ErrorIs(ValidatePlacement(b, pos(6, 0)), model.ErrInvalidPosition)
	s.ErrorIs(ValidatePlacement(b, pos(0, -1)), model.ErrInvalidPosition)
}
