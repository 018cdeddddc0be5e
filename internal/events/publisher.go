package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Broker is the subset of the RabbitMQ client used for publishing
type Broker interface {
	Publish(ctx context.Context, body []byte, contentType string) error
}

// Publisher emits search events to a broker
type Publisher struct {
	broker Broker
	logger *slog.Logger
}

// NewPublisher creates a new Publisher
func NewPublisher(broker Broker, logger *slog.Logger) *Publisher {
	return &Publisher{
		broker: broker,
		logger: logger,
	}
}

// PublishSearchCompleted serializes and publishes evt
func (p *Publisher) PublishSearchCompleted(ctx context.Context, evt SearchCompleted) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal search event: %w", err)
	}

	if err := p.broker.Publish(ctx, body, ContentTypeJSON); err != nil {
		return fmt.Errorf("failed to publish search event: %w", err)
	}

	p.logger.Debug("Search event published",
		slog.String("search_id", evt.SearchID),
		slog.String("outcome", evt.Outcome),
	)

	return nil
}
