package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/competeinator/internal/middleware"
)

// Logging creates request logging middleware that includes the request ID
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger, requestIDAttrs)
}

func requestIDAttrs(r *http.Request) []slog.Attr {
	return []slog.Attr{slog.String("request_id", GetRequestID(r.Context()))}
}
