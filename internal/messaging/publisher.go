package messaging

import (
	"context"
	"fmt"
)

// Publisher emits typed chat lifecycle events.
type Publisher struct {
	client *Client
}

// NewPublisher wraps a connected client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// PublishQueryProcessed announces a completed chat turn.
func (p *Publisher) PublishQueryProcessed(ctx context.Context, event QueryProcessedEvent) error {
	if err := p.client.PublishJSON(ctx, SubjectQueryProcessed, event); err != nil {
		return fmt.Errorf("publish query processed: %w", err)
	}
	return nil
}
