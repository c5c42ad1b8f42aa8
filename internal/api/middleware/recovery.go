package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/queensrush/internal/api/apierr"
	"github.com/mcoot/queensrush/internal/middleware"
)

// Recovery turns handler panics into a JSON INTERNAL_ERROR response
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

// Logging logs every API request
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger.With(slog.String("component", "api")))
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
