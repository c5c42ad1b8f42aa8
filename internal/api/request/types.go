package request

// PlayerRequest customises how a seat is shown
type PlayerRequest struct {
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

// CreateGameRequest is the request body for creating a game.
// Omitted fields take the server defaults.
type CreateGameRequest struct {
	GridSize int `json:"grid_size,omitempty"`
	// TurnTimeLimitSeconds of 0 disables the turn timer
	TurnTimeLimitSeconds *int            `json:"turn_time_limit_seconds,omitempty"`
	OnTimeout            string          `json:"on_timeout,omitempty"`
	VsBot                bool            `json:"vs_bot,omitempty"`
	BotStrategy          string          `json:"bot_strategy,omitempty"`
	Players              []PlayerRequest `json:"players,omitempty"`
}

// PlaceRequest is the request body for placing a queen
type PlaceRequest struct {
	Player int `json:"player"`
	Row    int `json:"row"`
	Col    int `json:"col"`
}
