package events

import (
	"context"
	"log/slog"
)

// Emitter publishes domain events on a best-effort basis: a broker failure is
// logged and never fails the user operation that produced the event.
// A nil *Emitter drops everything.
type Emitter struct {
	publisher EventPublisher
	logger    *slog.Logger
}

func NewEmitter(publisher EventPublisher, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{publisher: publisher, logger: logger}
}

func (e *Emitter) Emit(ctx context.Context, event *NotificationEvent) {
	if e == nil || e.publisher == nil || event == nil {
		return
	}
	if err := e.publisher.PublishNotificationEvent(ctx, event); err != nil {
		e.logger.Warn("dropping event", "event_type", event.Type, "event_id", event.ID, "error", err)
	}
}
