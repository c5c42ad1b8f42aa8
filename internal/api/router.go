package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/queensrush/internal/api/handler"
	"github.com/mcoot/queensrush/internal/api/middleware"
	"github.com/mcoot/queensrush/internal/api/response"
	"github.com/mcoot/queensrush/internal/model"
	"github.com/mcoot/queensrush/internal/services/bot"
	"github.com/mcoot/queensrush/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	BotService     *bot.Service
	// GameDefaults fills in settings a create request leaves out
	GameDefaults model.GameConfig
	// HintTTL is reported to clients with every hints response
	HintTTL time.Duration
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.BotService, cfg.GameDefaults, cfg.HintTTL, cfg.Logger)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	games := api.PathPrefix("/games").Subrouter()
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Abandon).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/place", gameHandler.Place).Methods(http.MethodPost)
	games.HandleFunc("/{id}/hints", gameHandler.Hints).Methods(http.MethodGet)
	games.HandleFunc("/{id}/bot-move", gameHandler.BotMove).Methods(http.MethodPost)
	games.HandleFunc("/{id}/revert", gameHandler.Revert).Methods(http.MethodPost)
	games.HandleFunc("/{id}/timeout", gameHandler.Timeout).Methods(http.MethodPost)
	games.HandleFunc("/{id}/restart", gameHandler.Restart).Methods(http.MethodPost)
	games.HandleFunc("/{id}/result", gameHandler.Result).Methods(http.MethodGet)

	api.HandleFunc("/results", gameHandler.Results).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
