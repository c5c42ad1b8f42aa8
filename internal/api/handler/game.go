package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/queensrush/internal/api/request"
	"github.com/mcoot/queensrush/internal/api/response"
	"github.com/mcoot/queensrush/internal/model"
	"github.com/mcoot/queensrush/internal/services/bot"
	"github.com/mcoot/queensrush/internal/services/game"
)

// DefaultResultsLimit is used when /results is called without a limit
const DefaultResultsLimit = 20

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
	botService     *bot.Service
	defaults       model.GameConfig
	hintTTL        time.Duration
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler. defaults fills in fields a
// create request leaves out.
func NewGameHandler(
	gameController *game.Controller,
	botService *bot.Service,
	defaults model.GameConfig,
	hintTTL time.Duration,
	logger *slog.Logger,
) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		botService:     botService,
		defaults:       defaults,
		hintTTL:        hintTTL,
		logger:         logger,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	cfg, err := h.configFromRequest(req)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.CreateGame(r.Context(), cfg)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameStateFromModel(g))
}

func (h *GameHandler) configFromRequest(req request.CreateGameRequest) (model.GameConfig, error) {
	cfg := h.defaults
	if req.GridSize != 0 {
		cfg.GridSize = req.GridSize
	}
	if req.TurnTimeLimitSeconds != nil {
		cfg.TurnTimeLimit = time.Duration(*req.TurnTimeLimitSeconds) * time.Second
	}
	if req.OnTimeout != "" {
		policy, err := model.ParseTimeoutPolicy(req.OnTimeout)
		if err != nil {
			return model.GameConfig{}, err
		}
		cfg.TimeoutPolicy = policy
	}
	cfg.VsBot = req.VsBot
	cfg.BotStrategy = req.BotStrategy

	if len(req.Players) > len(cfg.Players) {
		return model.GameConfig{}, NewInvalidRequestError("at most two players")
	}
	for i, p := range req.Players {
		if p.Name != "" {
			cfg.Players[i].Name = p.Name
		}
		if p.Color != "" {
			cfg.Players[i].Color = p.Color
		}
	}
	if cfg.VsBot && (len(req.Players) < 2 || req.Players[1].Name == "") {
		// Let the controller pick the bot's name
		cfg.Players[1].Name = ""
	}
	return cfg, nil
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g))
}

// Abandon handles DELETE /api/v1/games/{id}. With purge=true the session is
// removed as well.
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	abandon := h.gameController.AbandonGame
	if r.URL.Query().Get("purge") == "true" {
		abandon = h.gameController.DeleteGame
	}
	if err := abandon(r.Context(), gameID(r)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Place handles POST /api/v1/games/{id}/place
func (h *GameHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req request.PlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	pos := model.Position{Row: req.Row, Col: req.Col}
	g, delta, err := h.gameController.PlaceQueen(r.Context(), gameID(r), model.PlayerID(req.Player), pos)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ActionResponse{
		Delta: response.DeltaFromModel(delta, true),
		Game:  response.GameStateFromModel(g),
	})
}

// Hints handles GET /api/v1/games/{id}/hints?player=N
func (h *GameHandler) Hints(w http.ResponseWriter, r *http.Request) {
	player := model.PlayerOne
	if v := r.URL.Query().Get("player"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			WriteError(w, NewInvalidRequestError("player must be a number"))
			return
		}
		player = model.PlayerID(n)
	}

	hints, err := h.gameController.Hints(r.Context(), gameID(r), player)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HintsResponse{
		Player:      int(player),
		Hints:       response.PositionsFromModel(hints),
		ExpiresInMs: h.hintTTL.Milliseconds(),
	})
}

// BotMove handles POST /api/v1/games/{id}/bot-move
func (h *GameHandler) BotMove(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	actions, err := h.botService.PlayTurn(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BotMoveResponse{
		Actions: response.BotActionsFromService(actions),
		Game:    response.GameStateFromModel(g),
	})
}

// Revert handles POST /api/v1/games/{id}/revert
func (h *GameHandler) Revert(w http.ResponseWriter, r *http.Request) {
	g, delta, err := h.gameController.RevertLastBotMove(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ActionResponse{
		Delta: response.DeltaFromModel(delta, true),
		Game:  response.GameStateFromModel(g),
	})
}

// Timeout handles POST /api/v1/games/{id}/timeout. With ?if_expired=true the
// policy is only applied once the server's turn timer has run out.
func (h *GameHandler) Timeout(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)

	if r.URL.Query().Get("if_expired") == "true" {
		g, applied, err := h.gameController.CheckTurnTimeout(r.Context(), id)
		if err != nil {
			WriteError(w, err)
			return
		}
		response.JSON(w, http.StatusOK, response.TimeoutResponse{
			Applied: applied,
			Game:    response.GameStateFromModel(g),
		})
		return
	}

	g, delta, err := h.gameController.Timeout(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	d := response.DeltaFromModel(delta, false)
	response.JSON(w, http.StatusOK, response.TimeoutResponse{
		Applied: true,
		Delta:   &d,
		Game:    response.GameStateFromModel(g),
	})
}

// Restart handles POST /api/v1/games/{id}/restart
func (h *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.Restart(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameStateFromModel(g))
}

// Result handles GET /api/v1/games/{id}/result
func (h *GameHandler) Result(w http.ResponseWriter, r *http.Request) {
	result, err := h.gameController.GetResult(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ResultFromModel(result))
}

// Results handles GET /api/v1/results?limit=N
func (h *GameHandler) Results(w http.ResponseWriter, r *http.Request) {
	limit := DefaultResultsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			WriteError(w, NewInvalidRequestError("limit must be a non-negative number"))
			return
		}
		limit = n
	}

	results, err := h.gameController.ListResults(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list results", slog.String("error", err.Error()))
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ResultsFromModel(results))
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}
