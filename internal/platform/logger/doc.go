// Package logger provides structured logging for the application.
//
// It builds on the standard library log/slog package: JSON output with a
// configurable level, plus helpers that carry a request-scoped logger and
// request id through a context.Context.
package logger
