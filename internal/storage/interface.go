package storage

import (
	"context"

	"github.com/mcoot/queensrush/internal/model"
)

// Backend names accepted by configuration and the factory
const (
	TypeMemory = "memory"
	TypeRedis  = "redis"
)

// Storage defines the interface for session and result persistence.
// Nothing here is durable: backends hold transient state only.
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Result operations
	SaveResult(ctx context.Context, result *model.GameResult) error
	GetResult(ctx context.Context, id string) (*model.GameResult, error)
	// GetLatestResult returns the most recent result recorded for a game
	GetLatestResult(ctx context.Context, gameID model.GameID) (*model.GameResult, error)
	// ListResults returns up to limit results, newest first
	ListResults(ctx context.Context, limit int) ([]*model.GameResult, error)
}
