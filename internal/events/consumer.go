package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
)

// ErrNoSubscriber is returned by Consume for publishers that only send to a broker.
var ErrNoSubscriber = errors.New("event publisher has no in-process subscriber")

type subscribable interface {
	Subscribe(ctx context.Context) (<-chan *message.Message, error)
}

// Consume subscribes to an in-process publisher and decodes its events. The
// subscription is active when Consume returns; the channel closes when ctx
// ends or the publisher is closed.
func Consume(ctx context.Context, p EventPublisher, logger *slog.Logger) (<-chan NotificationEvent, error) {
	sub, ok := p.(subscribable)
	if !ok {
		return nil, ErrNoSubscriber
	}
	messages, err := sub.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan NotificationEvent)
	go func() {
		defer close(out)
		for msg := range messages {
			var event NotificationEvent
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				logger.Warn("Dropping undecodable event", "message_id", msg.UUID, "error", err)
				msg.Ack()
				continue
			}
			select {
			case out <- event:
				msg.Ack()
			case <-ctx.Done():
				msg.Nack()
				return
			}
		}
	}()
	return out, nil
}
