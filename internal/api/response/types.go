package response

import (
	"time"

	"github.com/mcoot/queensrush/internal/model"
	"github.com/mcoot/queensrush/internal/services/bot"
)

// Position is a board cell
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PositionFromModel converts model.Position
func PositionFromModel(p model.Position) Position {
	return Position{Row: p.Row, Col: p.Col}
}

// PositionsFromModel converts a list of positions, never returning nil
func PositionsFromModel(ps []model.Position) []Position {
	out := make([]Position, len(ps))
	for i, p := range ps {
		out[i] = PositionFromModel(p)
	}
	return out
}

func optionalPosition(p *model.Position) *Position {
	if p == nil {
		return nil
	}
	pos := PositionFromModel(*p)
	return &pos
}

// Player represents a seat in API responses
type Player struct {
	Seat  int    `json:"seat"`
	Name  string `json:"name"`
	Color string `json:"color"`
	IsBot bool   `json:"is_bot,omitempty"`
}

// Move is a single placement in the game history
type Move struct {
	Player   int       `json:"player"`
	Row      int       `json:"row"`
	Col      int       `json:"col"`
	ByBot    bool      `json:"by_bot,omitempty"`
	PlacedAt time.Time `json:"placed_at"`
}

// GameState represents the full session in API responses
type GameState struct {
	ID                   string     `json:"id"`
	State                string     `json:"state"`
	GridSize             int        `json:"grid_size"`
	Board                [][]int    `json:"board"` // 0 empty, otherwise the owning player
	Players              []Player   `json:"players"`
	ActivePlayer         int        `json:"active_player"`
	Player1Remaining     int        `json:"player1_remaining"`
	Player2Remaining     int        `json:"player2_remaining"`
	VsBot                bool       `json:"vs_bot"`
	BotStrategy          string     `json:"bot_strategy,omitempty"`
	TurnTimeLimitSeconds int        `json:"turn_time_limit_seconds"`
	OnTimeout            string     `json:"on_timeout"`
	TurnStartedAt        time.Time  `json:"turn_started_at"`
	TurnDeadline         *time.Time `json:"turn_deadline,omitempty"`
	Winner               int        `json:"winner,omitempty"`
	Loser                int        `json:"loser,omitempty"`
	EndReason            string     `json:"end_reason,omitempty"`
	LastBotMove          *Position  `json:"last_bot_move,omitempty"`
	Moves                []Move     `json:"moves"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// GameStateFromModel converts model.Game
func GameStateFromModel(g *model.Game) GameState {
	board := make([][]int, g.Board.Size)
	for row := range g.Board.Size {
		board[row] = make([]int, g.Board.Size)
		for col := range g.Board.Size {
			board[row][col] = int(g.Board.Cells[row][col])
		}
	}

	players := make([]Player, len(g.Config.Players))
	for i, p := range g.Config.Players {
		players[i] = Player{Seat: i + 1, Name: p.Name, Color: p.Color, IsBot: p.IsBot}
	}

	moves := make([]Move, len(g.Moves))
	for i, m := range g.Moves {
		moves[i] = Move{
			Player:   int(m.Player),
			Row:      m.Position.Row,
			Col:      m.Position.Col,
			ByBot:    m.ByBot,
			PlacedAt: m.PlacedAt,
		}
	}

	state := GameState{
		ID:                   string(g.ID),
		State:                string(g.State),
		GridSize:             g.GridSize(),
		Board:                board,
		Players:              players,
		ActivePlayer:         int(g.ActivePlayer),
		Player1Remaining:     g.RemainingFor(model.PlayerOne),
		Player2Remaining:     g.RemainingFor(model.PlayerTwo),
		VsBot:                g.Config.VsBot,
		BotStrategy:          g.Config.BotStrategy,
		TurnTimeLimitSeconds: int(g.Config.TurnTimeLimit / time.Second),
		OnTimeout:            string(g.Config.TimeoutPolicy),
		TurnStartedAt:        g.TurnStartedAt,
		Winner:               int(g.Winner),
		Loser:                int(g.Loser),
		EndReason:            string(g.EndReason),
		LastBotMove:          optionalPosition(g.LastBotMove),
		Moves:                moves,
		CreatedAt:            g.CreatedAt,
		UpdatedAt:            g.UpdatedAt,
	}
	if !g.IsOver() && g.Config.TurnTimeLimit > 0 {
		deadline := g.TurnStartedAt.Add(g.Config.TurnTimeLimit)
		state.TurnDeadline = &deadline
	}
	return state
}

// Delta describes what a command changed
type Delta struct {
	Player           int       `json:"player"`
	Placed           *Position `json:"placed,omitempty"`
	Cleared          *Position `json:"cleared,omitempty"`
	Terminal         bool      `json:"terminal"`
	NextPlayer       int       `json:"next_player,omitempty"`
	Player1Remaining int       `json:"player1_remaining"`
	Player2Remaining int       `json:"player2_remaining"`
	Winner           int       `json:"winner,omitempty"`
	Loser            int       `json:"loser,omitempty"`
}

// DeltaFromModel converts model.SessionDelta. placed is false for commands
// that do not put a queen on the board.
func DeltaFromModel(d model.SessionDelta, placed bool) Delta {
	delta := Delta{
		Player:           int(d.Player),
		Cleared:          optionalPosition(d.Cleared),
		Terminal:         d.Terminal,
		NextPlayer:       int(d.NextPlayer),
		Player1Remaining: d.Remaining[0],
		Player2Remaining: d.Remaining[1],
		Winner:           int(d.Winner),
		Loser:            int(d.Loser),
	}
	if placed {
		delta.Placed = optionalPosition(&d.Placed)
	}
	return delta
}

// ActionResponse is returned by commands that change the session
type ActionResponse struct {
	Delta Delta     `json:"delta"`
	Game  GameState `json:"game"`
}

// TimeoutResponse is returned by the timeout endpoint
type TimeoutResponse struct {
	Applied bool      `json:"applied"`
	Delta   *Delta    `json:"delta,omitempty"`
	Game    GameState `json:"game"`
}

// HintsResponse lists the cells a player can take without losing
type HintsResponse struct {
	Player      int        `json:"player"`
	Hints       []Position `json:"hints"`
	ExpiresInMs int64      `json:"expires_in_ms"`
}

// BotAction is a single action the bot took
type BotAction struct {
	Type   string `json:"type"`
	Player int    `json:"player"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// BotMoveResponse is returned after the bot plays its turn
type BotMoveResponse struct {
	Actions []BotAction `json:"actions"`
	Game    GameState   `json:"game"`
}

// BotActionsFromService converts bot.BotAction values
func BotActionsFromService(actions []bot.BotAction) []BotAction {
	out := make([]BotAction, len(actions))
	for i, a := range actions {
		out[i] = BotAction{
			Type:   string(a.Type),
			Player: int(a.Player),
			Row:    a.Position.Row,
			Col:    a.Position.Col,
		}
	}
	return out
}

// Result is a finished game summary
type Result struct {
	ID               string     `json:"id"`
	GameID           string     `json:"game_id"`
	Winner           int        `json:"winner"`
	Loser            int        `json:"loser"`
	Reason           string     `json:"reason"`
	LosingMove       *Position  `json:"losing_move,omitempty"`
	AttackingQueens  []Position `json:"attacking_queens"`
	Player1Remaining int        `json:"player1_remaining"`
	Player2Remaining int        `json:"player2_remaining"`
	GridSize         int        `json:"grid_size"`
	VsBot            bool       `json:"vs_bot"`
	HumanWon         bool       `json:"human_won,omitempty"`
	MoveCount        int        `json:"move_count"`
	FinishedAt       time.Time  `json:"finished_at"`
}

// ResultFromModel converts model.GameResult
func ResultFromModel(r *model.GameResult) Result {
	return Result{
		ID:               r.ID,
		GameID:           string(r.GameID),
		Winner:           int(r.Winner),
		Loser:            int(r.Loser),
		Reason:           string(r.Reason),
		LosingMove:       optionalPosition(r.LosingMove),
		AttackingQueens:  PositionsFromModel(r.AttackingQueens),
		Player1Remaining: r.Player1Remaining,
		Player2Remaining: r.Player2Remaining,
		GridSize:         r.GridSize,
		VsBot:            r.VsBot,
		HumanWon:         r.HumanWon(),
		MoveCount:        r.MoveCount,
		FinishedAt:       r.FinishedAt,
	}
}

// ResultsResponse lists recent results, newest first
type ResultsResponse struct {
	Results []Result `json:"results"`
}

// ResultsFromModel converts a list of results
func ResultsFromModel(results []*model.GameResult) ResultsResponse {
	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = ResultFromModel(r)
	}
	return ResultsResponse{Results: out}
}
