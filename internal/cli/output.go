package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mcoot/queensrush/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return NewOutputTo(os.Stdout, format)
}

// NewOutputTo creates a new Output formatter writing to w
func NewOutputTo(w io.Writer, format string) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.GameState:
		o.printGameState(v, nil)
	case response.ActionResponse:
		o.printAction(v)
	case response.TimeoutResponse:
		o.printTimeout(v)
	case response.HintsResponse:
		o.printHints(v)
	case response.BotMoveResponse:
		o.printBotMove(v)
	case response.Result:
		o.printResult(v)
	case response.ResultsResponse:
		o.printResults(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult is the server's health answer plus what the CLI measured
type HealthResult struct {
	Status    string `json:"status"`
	Server    string `json:"server,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

func (o *Output) printGameState(g response.GameState, hints []response.Position) {
	fmt.Fprintf(o.w, "Game: %s\n", g.ID)
	fmt.Fprintf(o.w, "State: %s\n", g.State)
	fmt.Fprintf(o.w, "Grid Size: %d\n", g.GridSize)
	if g.VsBot {
		fmt.Fprintf(o.w, "Bot: %s (%s)\n", playerName(g, 2), g.BotStrategy)
	}
	for _, p := range g.Players {
		remaining := g.Player1Remaining
		if p.Seat == 2 {
			remaining = g.Player2Remaining
		}
		fmt.Fprintf(o.w, "  %d: %s [%s] - %d queens left\n", p.Seat, p.Name, p.Color, remaining)
	}

	switch g.State {
	case "terminal":
		fmt.Fprintf(o.w, "Winner: %s (%s)\n", playerName(g, g.Winner), g.EndReason)
	case "in_progress":
		fmt.Fprintf(o.w, "To move: %s\n", playerName(g, g.ActivePlayer))
		if g.TurnDeadline != nil {
			left := time.Until(*g.TurnDeadline).Round(time.Second)
			fmt.Fprintf(o.w, "Time left: %s\n", max(left, 0))
		}
	}

	fmt.Fprintln(o.w)
	o.printBoard(g.Board, hints)
}

func (o *Output) printBoard(board [][]int, hints []response.Position) {
	size := len(board)
	if size == 0 {
		return
	}

	hinted := make(map[response.Position]bool, len(hints))
	for _, h := range hints {
		hinted[h] = true
	}

	// Print column headers
	fmt.Fprint(o.w, "    ")
	for col := range size {
		fmt.Fprintf(o.w, " %d ", col)
	}
	fmt.Fprintln(o.w)

	border := "   +" + strings.Repeat("---", size) + "+"
	fmt.Fprintln(o.w, border)

	for row := range size {
		fmt.Fprintf(o.w, " %d |", row)
		for col := range size {
			switch {
			case board[row][col] != 0:
				fmt.Fprintf(o.w, " %d ", board[row][col])
			case hinted[response.Position{Row: row, Col: col}]:
				fmt.Fprint(o.w, " * ")
			default:
				fmt.Fprint(o.w, " . ")
			}
		}
		fmt.Fprintln(o.w, "|")
	}

	fmt.Fprintln(o.w, border)
}

func (o *Output) printAction(a response.ActionResponse) {
	d := a.Delta
	if d.Cleared != nil {
		fmt.Fprintf(o.w, "Removed queen at (%d,%d)\n", d.Cleared.Row, d.Cleared.Col)
	}
	if d.Placed != nil {
		fmt.Fprintf(o.w, "%s placed a queen at (%d,%d)\n", playerName(a.Game, d.Player), d.Placed.Row, d.Placed.Col)
	}
	if d.Terminal {
		fmt.Fprintf(o.w, "Game over! %s wins\n", playerName(a.Game, d.Winner))
	} else if d.NextPlayer != 0 {
		fmt.Fprintf(o.w, "Next: %s\n", playerName(a.Game, d.NextPlayer))
	}
}

func (o *Output) printTimeout(t response.TimeoutResponse) {
	if !t.Applied {
		fmt.Fprintln(o.w, "Turn timer has not expired")
		return
	}
	if t.Delta != nil && t.Delta.Terminal {
		fmt.Fprintf(o.w, "Time's up! %s wins\n", playerName(t.Game, t.Delta.Winner))
		return
	}
	fmt.Fprintf(o.w, "Time's up! Turn passes to %s\n", playerName(t.Game, t.Game.ActivePlayer))
}

func (o *Output) printHints(h response.HintsResponse) {
	if len(h.Hints) == 0 {
		fmt.Fprintln(o.w, "No safe cells left")
		return
	}
	cells := make([]string, len(h.Hints))
	for i, p := range h.Hints {
		cells[i] = fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	fmt.Fprintf(o.w, "Safe cells for player %d: %s\n", h.Player, strings.Join(cells, " "))
}

func (o *Output) printBotMove(b response.BotMoveResponse) {
	for _, a := range b.Actions {
		switch a.Type {
		case "place":
			fmt.Fprintf(o.w, "%s placed a queen at (%d,%d)\n", playerName(b.Game, a.Player), a.Row, a.Col)
		case "game_complete":
			fmt.Fprintf(o.w, "Game over! %s wins\n", playerName(b.Game, b.Game.Winner))
		}
	}
}

func (o *Output) printResult(r response.Result) {
	fmt.Fprintf(o.w, "Result: %s\n", r.ID)
	fmt.Fprintf(o.w, "Game: %s (%dx%d)\n", r.GameID, r.GridSize, r.GridSize)
	fmt.Fprintf(o.w, "Winner: player %d\n", r.Winner)
	fmt.Fprintf(o.w, "Reason: %s\n", r.Reason)
	if r.LosingMove != nil {
		fmt.Fprintf(o.w, "Losing move: (%d,%d)\n", r.LosingMove.Row, r.LosingMove.Col)
	}
	if len(r.AttackingQueens) > 0 {
		cells := make([]string, len(r.AttackingQueens))
		for i, p := range r.AttackingQueens {
			cells[i] = fmt.Sprintf("(%d,%d)", p.Row, p.Col)
		}
		fmt.Fprintf(o.w, "Attacking queens: %s\n", strings.Join(cells, " "))
	}
	fmt.Fprintf(o.w, "Queens left: %d / %d\n", r.Player1Remaining, r.Player2Remaining)
	fmt.Fprintf(o.w, "Moves: %d\n", r.MoveCount)
}

func (o *Output) printResults(rs response.ResultsResponse) {
	if len(rs.Results) == 0 {
		fmt.Fprintln(o.w, "No finished games")
		return
	}
	for _, r := range rs.Results {
		opponent := "2 players"
		if r.VsBot {
			opponent = "vs bot"
		}
		fmt.Fprintf(o.w, "%s  %s  %dx%d  %-9s winner: %d  (%s)\n",
			r.FinishedAt.Format(time.DateTime), r.GameID, r.GridSize, r.GridSize, opponent, r.Winner, r.Reason)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Server: %s\n", h.Server)
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	fmt.Fprintf(o.w, "Latency: %dms\n", h.LatencyMs)
}

func playerName(g response.GameState, seat int) string {
	for _, p := range g.Players {
		if p.Seat == seat {
			return p.Name
		}
	}
	return fmt.Sprintf("player %d", seat)
}
