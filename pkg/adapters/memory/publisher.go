package memory

import (
	"context"
	"sync"
)

// Message is a payload recorded by Publisher.
type Message struct {
	Topic   string
	Payload any
}

// Publisher implements ports.Publisher by recording every message.
// Safe for concurrent use.
type Publisher struct {
	mu       sync.Mutex
	messages []Message
}

// NewPublisher creates an empty recording publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish records the message.
func (p *Publisher) Publish(ctx context.Context, topic string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, Message{Topic: topic, Payload: payload})
	return nil
}

// Messages returns the recorded messages in publish order.
func (p *Publisher) Messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Message, len(p.messages))
	copy(out, p.messages)
	return out
}

// Topic returns the payloads published on topic, in publish order.
func (p *Publisher) Topic(topic string) []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []any
	for _, m := range p.messages {
		if m.Topic == topic {
			out = append(out, m.Payload)
		}
	}
	return out
}
