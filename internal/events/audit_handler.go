package events

import (
	"context"
	"fmt"
	"log/slog"
)

// UserCreatedPayload is the payload of a user.created event.
type UserCreatedPayload struct {
	Identifier int    `json:"identifier"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// AuditLogHandler writes an audit log line for every user.created event.
// Other event types are ignored.
type AuditLogHandler struct {
	logger *slog.Logger
}

// NewAuditLogHandler creates an AuditLogHandler.
func NewAuditLogHandler(logger *slog.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: logger.With("component", "audit")}
}

// HandleEvent implements EventHandler.
func (h *AuditLogHandler) HandleEvent(ctx context.Context, event *Event) error {
	if event.Type != EventTypeUserCreated {
		return nil
	}

	var payload UserCreatedPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %w", event.Type, err)
	}

	// Email is not written to the audit log.
	h.logger.InfoContext(ctx, "user created",
		"event_id", event.ID,
		"identifier", payload.Identifier,
		"created_at", event.CreatedAt)
	return nil
}
