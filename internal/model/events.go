package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameCreated     EventType = "game_created"
	EventQueenPlaced     EventType = "queen_placed"
	EventBotMoveReverted EventType = "bot_move_reverted"
	EventTurnTimedOut    EventType = "turn_timed_out"
	EventGameOver        EventType = "game_over"
	EventGameRestarted   EventType = "game_restarted"
	EventGameAbandoned   EventType = "game_abandoned"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType
	Timestamp time.Time
	GameID    GameID
	Player    PlayerID // The player who triggered or is affected
	Payload   any      // Type-specific data
}

// QueenPlacedPayload contains data for queen placed events
type QueenPlacedPayload struct {
	Position Position
	ByBot    bool
	Terminal bool
}

// BotMoveRevertedPayload contains data for revert events
type BotMoveRevertedPayload struct {
	Cleared  Position
	Replaced Position
	Terminal bool
}

// TurnTimedOutPayload contains data for timeout events
type TurnTimedOutPayload struct {
	Policy TimeoutPolicy
}

// GameOverPayload contains data for game over events
type GameOverPayload struct {
	Result GameResult
}

// GameAbandonedPayload contains data for game abandoned events
type GameAbandonedPayload struct {
	Reason string
}

// EventListener receives events after the state change has been saved
type EventListener func(Event)
