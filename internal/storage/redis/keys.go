package redis

import (
	"fmt"

	"github.com/mcoot/queensrush/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "qrush"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// resultKey returns the Redis key for a GameResult
func resultKey(id string) string {
	return fmt.Sprintf("%s:result:%s", keyPrefix, id)
}

// gameResultsIndexKey returns the Redis key for the LIST of result IDs of a game, newest first
func gameResultsIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:game_results:%s", keyPrefix, gameID)
}

// recentResultsIndexKey returns the Redis key for the LIST of recent result IDs, newest first
func recentResultsIndexKey() string {
	return fmt.Sprintf("%s:idx:results", keyPrefix)
}
