package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/users-api/internal/platform/logger"
)

// NewRequestLogger returns chi's RequestLogger backed by slog. Each request
// produces one "request completed" entry on the request-scoped logger, so it
// must run after NewTraceMiddleware to carry the trace ID.
func NewRequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return chimw.RequestLogger(&slogFormatter{base: base})
}

type slogFormatter struct {
	base *slog.Logger
}

func (f *slogFormatter) NewLogEntry(r *http.Request) chimw.LogEntry {
	return &slogEntry{
		request: r,
		log:     logger.FromContextOrDefault(r.Context(), f.base),
	}
}

type slogEntry struct {
	request *http.Request
	log     *slog.Logger
}

func (e *slogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	e.log.Log(e.request.Context(), level, "request completed",
		slog.String("method", e.request.Method),
		slog.String("route", routeLabel(e.request)),
		slog.Int("status", status),
		slog.Int("bytes", bytes),
		slog.Float64("duration_ms", float64(elapsed.Microseconds())/1000))
}

func (e *slogEntry) Panic(v interface{}, stack []byte) {
	e.log.Error("panic recovered",
		slog.Any("panic", v),
		slog.String("stack", string(stack)))
}
