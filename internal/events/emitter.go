package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Bus is an EventEmitter that delivers each event synchronously, in
// subscription order, to every subscribed handler. The user service emits
// user.created through it after a store write succeeds.
type Bus struct {
	mu       sync.RWMutex
	handlers []EventHandler
	logger   *slog.Logger
}

// NewBus returns a Bus with no subscribers.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger.With("component", "event_bus")}
}

// Subscribe adds h to the handlers receiving every emitted event.
func (b *Bus) Subscribe(h EventHandler) {
	b.mu.Lock()
	b.handlers = append(b.handlers, h)
	n := len(b.handlers)
	b.mu.Unlock()

	b.logger.Debug("event handler subscribed", "subscribers", n)
}

func (b *Bus) subscribers() []EventHandler {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]EventHandler(nil), b.handlers...)
}

// EmitEvent hands event to each subscriber. A failing handler does not stop
// delivery; the failures are joined into the returned error.
func (b *Bus) EmitEvent(ctx context.Context, event *Event) error {
	log := b.logger.With("event_id", event.ID, "event_type", event.Type)

	handlers := b.subscribers()
	if len(handlers) == 0 {
		log.Debug("event dropped, no subscribers")
		return nil
	}

	var errs []error
	for i, h := range handlers {
		if err := h.HandleEvent(ctx, event); err != nil {
			log.Error("event handler failed", "error", err, "subscriber", i)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
