package events

import (
	"context"
	"log/slog"
	"sync"
)

// Handler is implemented by components that want to observe entry lifecycle
// events.
type Handler interface {
	// HandleEntryEvent processes a single event. Errors are logged by the
	// emitter and do not stop delivery to other handlers.
	HandleEntryEvent(ctx context.Context, event *EntryEvent) error
}

// Emitter publishes entry events to registered handlers.
type Emitter interface {
	EmitEntryEvent(ctx context.Context, event *EntryEvent)
}

// InMemoryEmitter is a simple Emitter that keeps its handlers in memory and
// dispatches synchronously in registration order.
type InMemoryEmitter struct {
	mu       sync.RWMutex
	handlers []Handler
	logger   *slog.Logger
}

// NewInMemoryEmitter creates an emitter with no handlers registered.
func NewInMemoryEmitter(logger *slog.Logger) *InMemoryEmitter {
	return &InMemoryEmitter{
		logger: logger.With("component", "event_emitter"),
	}
}

// RegisterHandler adds a handler to receive future events.
func (e *InMemoryEmitter) RegisterHandler(handler Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = append(e.handlers, handler)
	e.logger.Debug("registered event handler", "handler_count", len(e.handlers))
}

// EmitEntryEvent delivers the event to every registered handler. A failing
// handler never blocks delivery to the rest; failures are logged and
// swallowed because event delivery is observational, not transactional.
func (e *InMemoryEmitter) EmitEntryEvent(ctx context.Context, event *EntryEvent) {
	e.mu.RLock()
	handlers := make([]Handler, len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.RUnlock()

	for i, handler := range handlers {
		if err := handler.HandleEntryEvent(ctx, event); err != nil {
			e.logger.Error("event handler failed",
				"error", err,
				"handler_index", i,
				"event_id", event.ID,
				"event_kind", event.Kind,
				"entry_id", event.EntryID)
		}
	}
}
