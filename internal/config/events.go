package config

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/assessment-console/internal/events"
)

type EventConfig struct {
	Enabled           bool
	Publisher         string // kafka, gochannel or mock
	KafkaBrokers      string
	NotificationTopic string
}

func (c *EventConfig) GetKafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Debug("Event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(logger), nil
	}

	switch c.Publisher {
	case "kafka":
		brokers := c.GetKafkaBrokers()
		if len(brokers) == 0 {
			return nil, errors.New("EVENTS_PUBLISHER=kafka needs KAFKA_BROKERS")
		}
		logger.Info("Creating Kafka event publisher", "brokers", brokers, "topic", c.NotificationTopic)

		return events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: brokers,
			TopicName:    c.NotificationTopic,
			Logger:       logger,
		})
	case "gochannel":
		logger.Info("Creating in-process event publisher", "topic", c.NotificationTopic)
		return events.NewGoChannelEventPublisher(c.NotificationTopic, logger), nil
	case "mock":
		return events.NewMockEventPublisher(logger), nil
	default:
		logger.Warn("Unknown event publisher type, falling back to mock", "publisher", c.Publisher)
		return events.NewMockEventPublisher(logger), nil
	}
}
