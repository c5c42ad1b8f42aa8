package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/queensrush/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeInvalidPosition      = "INVALID_POSITION"
	CodeInvalidPlayer        = "INVALID_PLAYER"
	CodeInvalidGridSize      = "INVALID_GRID_SIZE"
	CodeInvalidTimeoutPolicy = "INVALID_TIMEOUT_POLICY"
	CodeInvalidTimeLimit     = "INVALID_TIME_LIMIT"
	CodeUnknownBotStrategy   = "UNKNOWN_BOT_STRATEGY"
	CodeNotYourTurn          = "NOT_YOUR_TURN"
	CodeOccupiedCell         = "OCCUPIED_CELL"
	CodeNoQueensRemaining    = "NO_QUEENS_REMAINING"
	CodeGameAlreadyOver      = "GAME_ALREADY_OVER"
	CodeGameNotOver          = "GAME_NOT_OVER"
	CodeNoEmptyCells         = "NO_EMPTY_CELLS"
	CodeNotBotGame           = "NOT_BOT_GAME"
	CodeNoBotMove            = "NO_BOT_MOVE"
	CodeGameNotFound         = "GAME_NOT_FOUND"
	CodeResultNotFound       = "RESULT_NOT_FOUND"
	CodeInternalError        = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Lookups
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrResultNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeResultNotFound, "Result not found"}}

	// Placement
	case errors.Is(err, model.ErrGameAlreadyOver):
		return &httpError{http.StatusConflict, APIError{CodeGameAlreadyOver, "Game is already over"}}
	case errors.Is(err, model.ErrInvalidPlayer):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayer, "Player must be 1 or 2"}}
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, "Invalid board position"}}
	case errors.Is(err, model.ErrOccupiedCell):
		return &httpError{http.StatusConflict, APIError{CodeOccupiedCell, "Cell is already occupied"}}
	case errors.Is(err, model.ErrNoQueensRemaining):
		return &httpError{http.StatusConflict, APIError{CodeNoQueensRemaining, "No queens remaining"}}

	// Bot
	case errors.Is(err, model.ErrNoEmptyCells):
		return &httpError{http.StatusConflict, APIError{CodeNoEmptyCells, "No empty cells left"}}
	case errors.Is(err, model.ErrNotBotGame):
		return &httpError{http.StatusConflict, APIError{CodeNotBotGame, "Game has no bot player"}}
	case errors.Is(err, model.ErrNoBotMoveToRevert):
		return &httpError{http.StatusConflict, APIError{CodeNoBotMove, "No bot move to revert"}}
	case errors.Is(err, model.ErrUnknownBotStrategy):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownBotStrategy, "Unknown bot strategy"}}

	// Configuration
	case errors.Is(err, model.ErrInvalidGridSize):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGridSize, "Grid size must be 6 or 8"}}
	case errors.Is(err, model.ErrInvalidTimeoutPolicy):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTimeoutPolicy, "Timeout policy must be end_game or pass_turn"}}
	case errors.Is(err, model.ErrInvalidTimeLimit):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTimeLimit, "Turn time limit must be 0 or between 10 and 60 seconds"}}
	case errors.Is(err, model.ErrGameNotOver):
		return &httpError{http.StatusConflict, APIError{CodeGameNotOver, "Game is not over"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
