package handler

import (
	"net/http"

	"github.com/mcoot/queensrush/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest       = apierr.CodeInvalidRequest
	CodeInvalidPosition      = apierr.CodeInvalidPosition
	CodeInvalidPlayer        = apierr.CodeInvalidPlayer
	CodeInvalidGridSize      = apierr.CodeInvalidGridSize
	CodeInvalidTimeoutPolicy = apierr.CodeInvalidTimeoutPolicy
	CodeInvalidTimeLimit     = apierr.CodeInvalidTimeLimit
	CodeUnknownBotStrategy   = apierr.CodeUnknownBotStrategy
	CodeNotYourTurn          = apierr.CodeNotYourTurn
	CodeOccupiedCell         = apierr.CodeOccupiedCell
	CodeNoQueensRemaining    = apierr.CodeNoQueensRemaining
	CodeGameAlreadyOver      = apierr.CodeGameAlreadyOver
	CodeGameNotOver          = apierr.CodeGameNotOver
	CodeNoEmptyCells         = apierr.CodeNoEmptyCells
	CodeNotBotGame           = apierr.CodeNotBotGame
	CodeNoBotMove            = apierr.CodeNoBotMove
	CodeGameNotFound         = apierr.CodeGameNotFound
	CodeResultNotFound       = apierr.CodeResultNotFound
	CodeInternalError        = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
