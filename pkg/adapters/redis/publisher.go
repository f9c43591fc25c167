package redis

import (
	"context"
	"encoding/json"
	"fmt"

	backend "github.com/redis/go-redis/v9"
)

// Publisher implements ports.Publisher with Redis PUBLISH. Payloads are
// encoded as JSON and sent on the prefixed topic channel.
type Publisher struct {
	client *backend.Client
	prefix string
}

// NewPublisher creates a publisher from an existing client.
func NewPublisher(client *backend.Client, opts ...Option) *Publisher {
	o := buildOptions(opts)
	return &Publisher{client: client, prefix: o.prefix}
}

// Channel returns the Redis channel used for topic.
func (p *Publisher) Channel(topic string) string {
	return p.prefix + topic
}

// Publish encodes payload and publishes it on the topic channel.
func (p *Publisher) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for %s: %w", topic, err)
	}
	if err := p.client.Publish(ctx, p.Channel(topic), data).Err(); err != nil {
		return fmt.Errorf("redis error publishing on %s: %w", topic, err)
	}
	return nil
}
