package config

import (
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/quiz-generation-service/internal/events"
)

// EventConfig selects where quiz and attempt events go.
type EventConfig struct {
	Enabled      bool
	Publisher    string // kafka or mock
	KafkaBrokers string // comma separated
	Topic        string
}

func (c *EventConfig) GetKafkaBrokers() []string {
	return splitList(c.KafkaBrokers)
}

// CreateEventPublisher returns the Kafka publisher when events are enabled
// and Kafka is selected. Every other setting records events in memory only.
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if c.Enabled && strings.EqualFold(c.Publisher, "kafka") {
		logger.Info("Publishing events to Kafka", "brokers", c.KafkaBrokers, "topic", c.Topic)
		return events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.Topic,
			Logger:       logger,
		})
	}

	if c.Enabled && !strings.EqualFold(c.Publisher, "mock") {
		logger.Warn("Unknown event publisher, events stay in memory", "publisher", c.Publisher)
	} else {
		logger.Info("Event publishing disabled, events stay in memory")
	}
	return events.NewMockEventPublisher(logger), nil
}
