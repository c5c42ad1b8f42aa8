package model

import (
	"strings"
	"time"
)

// GameID uniquely identifies a game session
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStateInProgress GameState = "in_progress" // Players are still placing queens
	GameStateTerminal   GameState = "terminal"    // A placement or timeout ended the game
	GameStateAbandoned  GameState = "abandoned"   // Game was cancelled before it finished
)

// EndReason records why a game reached the terminal state
type EndReason string

const (
	EndReasonNone    EndReason = ""
	EndReasonAttack  EndReason = "attack"  // The last queen shares a line with another
	EndReasonTimeout EndReason = "timeout" // The active player ran out of time
)

// TimeoutPolicy decides what happens when the turn timer expires
type TimeoutPolicy string

const (
	TimeoutEndGame  TimeoutPolicy = "end_game"  // The timed-out player loses
	TimeoutPassTurn TimeoutPolicy = "pass_turn" // The turn passes to the other player
)

// ParseTimeoutPolicy parses a policy name; the empty string maps to end_game
func ParseTimeoutPolicy(s string) (TimeoutPolicy, error) {
	switch TimeoutPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", TimeoutEndGame:
		return TimeoutEndGame, nil
	case TimeoutPassTurn:
		return TimeoutPassTurn, nil
	default:
		return "", ErrInvalidTimeoutPolicy
	}
}

// Supported grid sizes
const (
	GridSizeSmall = 6
	GridSizeLarge = 8
)

// Turn timer bounds offered to players
const (
	DefaultTurnTimeLimit = 30 * time.Second
	MinTurnTimeLimit     = 10 * time.Second
	MaxTurnTimeLimit     = 60 * time.Second
)

// IsValidGridSize returns true for the supported grid sizes
func IsValidGridSize(size int) bool {
	return size == GridSizeSmall || size == GridSizeLarge
}

// ValidateTurnTimeLimit accepts 0 (no timer) or a limit within the offered bounds
func ValidateTurnTimeLimit(limit time.Duration) error {
	if limit == 0 {
		return nil
	}
	if limit < MinTurnTimeLimit || limit > MaxTurnTimeLimit {
		return ErrInvalidTimeLimit
	}
	return nil
}

// InitialQueens returns how many queens each player starts with
func InitialQueens(gridSize int) int {
	if gridSize == GridSizeSmall {
		return 4
	}
	return 5
}

// GameConfig holds the per-game settings chosen before play starts
type GameConfig struct {
	GridSize      int
	TurnTimeLimit time.Duration // 0 disables the turn timer
	TimeoutPolicy TimeoutPolicy
	VsBot         bool
	BotStrategy   string
	Players       [2]Player
}

// DefaultGameConfig returns the default two-player configuration
func DefaultGameConfig() GameConfig {
	return GameConfig{
		GridSize:      GridSizeSmall,
		TurnTimeLimit: DefaultTurnTimeLimit,
		TimeoutPolicy: TimeoutEndGame,
		Players: [2]Player{
			{Name: DefaultPlayer1Name, Color: DefaultPlayer1Color},
			{Name: DefaultPlayer2Name, Color: DefaultPlayer2Color},
		},
	}
}

// Move is a single queen placement in the game history
type Move struct {
	Player   PlayerID
	Position Position
	ByBot    bool
	PlacedAt time.Time
}

// Game is a single queens session: the board, the counters and whose turn it is
type Game struct {
	ID     GameID
	Config GameConfig
	Board  *Board

	// Remaining queens per player, indexed by PlayerID-1
	Remaining    [2]int
	ActivePlayer PlayerID
	State        GameState

	// Outcome, set once the game is terminal
	Winner    PlayerID
	Loser     PlayerID
	EndReason EndReason

	// LastBotMove is the bot's most recent placement while it can still be reverted
	LastBotMove *Position
	Moves       []Move

	// Timing
	TurnStartedAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewGame builds a fresh in-progress game for the given configuration
func NewGame(id GameID, cfg GameConfig, now time.Time) *Game {
	queens := InitialQueens(cfg.GridSize)
	return &Game{
		ID:            id,
		Config:        cfg,
		Board:         NewBoard(cfg.GridSize),
		Remaining:     [2]int{queens, queens},
		ActivePlayer:  PlayerOne,
		State:         GameStateInProgress,
		TurnStartedAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// GridSize returns the board dimension
func (g *Game) GridSize() int {
	return g.Config.GridSize
}

// IsOver returns true once the game no longer accepts placements
func (g *Game) IsOver() bool {
	return g.State == GameStateTerminal || g.State == GameStateAbandoned
}

// RemainingFor returns the queens the player has left
func (g *Game) RemainingFor(player PlayerID) int {
	if !player.IsValid() {
		return 0
	}
	return g.Remaining[player-1]
}

// AdjustRemaining changes the player's queen counter by delta
func (g *Game) AdjustRemaining(player PlayerID, delta int) {
	if player.IsValid() {
		g.Remaining[player-1] += delta
	}
}

// BotPlayer returns the seat the bot plays, or NoPlayer in two-player games
func (g *Game) BotPlayer() PlayerID {
	if g.Config.VsBot {
		return PlayerTwo
	}
	return NoPlayer
}

// IsBotTurn returns true if the bot is due to move
func (g *Game) IsBotTurn() bool {
	return g.Config.VsBot && !g.IsOver() && g.ActivePlayer == g.BotPlayer()
}

// LastMove returns the most recent placement, or nil if none
func (g *Game) LastMove() *Move {
	if len(g.Moves) == 0 {
		return nil
	}
	m := g.Moves[len(g.Moves)-1]
	return &m
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	clone := *g
	if g.Board != nil {
		clone.Board = g.Board.Clone()
	}
	if g.LastBotMove != nil {
		pos := *g.LastBotMove
		clone.LastBotMove = &pos
	}
	clone.Moves = append([]Move(nil), g.Moves...)
	return &clone
}

// SessionDelta describes what a single engine command changed
type SessionDelta struct {
	Player     PlayerID
	Placed     Position
	Cleared    *Position // Set when a revert emptied a cell
	Terminal   bool
	NextPlayer PlayerID // NoPlayer once terminal
	Remaining  [2]int
	Winner     PlayerID
	Loser      PlayerID
}
