package model

import "errors"

// Common errors used across the application
var (
	// Placement errors
	ErrOccupiedCell      = errors.New("cell is already occupied")
	ErrNoQueensRemaining = errors.New("player has no queens remaining")
	ErrGameAlreadyOver   = errors.New("game is already over")
	ErrInvalidPosition   = errors.New("invalid board position")
	ErrInvalidPlayer     = errors.New("invalid player")
	ErrNotPlayerTurn     = errors.New("not this player's turn")

	// Bot errors
	ErrNoEmptyCells       = errors.New("no empty cells left for the bot")
	ErrNotBotGame         = errors.New("game has no bot player")
	ErrNoBotMoveToRevert  = errors.New("no bot move to revert")
	ErrUnknownBotStrategy = errors.New("unknown bot strategy")

	// Game errors
	ErrGameNotFound         = errors.New("game not found")
	ErrGameNotOver          = errors.New("game is not over yet")
	ErrInvalidGridSize      = errors.New("grid size must be 6 or 8")
	ErrInvalidTimeoutPolicy = errors.New("timeout policy must be end_game or pass_turn")
	ErrInvalidTimeLimit     = errors.New("turn time limit out of range")

	// Result errors
	ErrResultNotFound = errors.New("result not found")
)
