package model

import "fmt"

// Occupant is the content of a single board cell
type Occupant int

const (
	Empty Occupant = iota
	Player1
	Player2
)

// String returns a short label for the occupant
func (o Occupant) String() string {
	switch o {
	case Empty:
		return "empty"
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	default:
		return fmt.Sprintf("occupant(%d)", int(o))
	}
}

// Position identifies a cell on the board
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// String formats the position as (row,col)
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Board is the N×N queen grid of a single game
type Board struct {
	Size  int
	Cells [][]Occupant // Row-major: Cells[row][col]
}

// NewBoard creates an empty board of the given size
func NewBoard(size int) *Board {
	cells := make([][]Occupant, size)
	for i := range cells {
		cells[i] = make([]Occupant, size)
	}
	return &Board{
		Size:  size,
		Cells: cells,
	}
}

// Get returns the occupant at the given position, or Empty if out of bounds
func (b *Board) Get(pos Position) Occupant {
	if !b.IsValidPosition(pos) {
		return Empty
	}
	return b.Cells[pos.Row][pos.Col]
}

// Set places an occupant at the given position
func (b *Board) Set(pos Position, occupant Occupant) {
	if b.IsValidPosition(pos) {
		b.Cells[pos.Row][pos.Col] = occupant
	}
}

// Clear empties the cell at the given position
func (b *Board) Clear(pos Position) {
	b.Set(pos, Empty)
}

// IsEmpty returns true if the cell at the given position is empty
func (b *Board) IsEmpty(pos Position) bool {
	return b.Get(pos) == Empty
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < b.Size && pos.Col >= 0 && pos.Col < b.Size
}

// EmptyCount returns the number of empty cells
func (b *Board) EmptyCount() int {
	count := 0
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.Cells[row][col] == Empty {
				count++
			}
		}
	}
	return count
}

// EmptyPositions returns all empty cells in row-major order
func (b *Board) EmptyPositions() []Position {
	var empty []Position
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.Cells[row][col] == Empty {
				empty = append(empty, Position{Row: row, Col: col})
			}
		}
	}
	return empty
}

// OccupiedPositions returns all non-empty cells in row-major order
func (b *Board) OccupiedPositions() []Position {
	var occupied []Position
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if b.Cells[row][col] != Empty {
				occupied = append(occupied, Position{Row: row, Col: col})
			}
		}
	}
	return occupied
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	clone := NewBoard(b.Size)
	for row := 0; row < b.Size; row++ {
		copy(clone.Cells[row], b.Cells[row])
	}
	return clone
}
