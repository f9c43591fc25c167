package ports

import "context"

// ClosureStore tracks graph elements (nodes or edges, by ID) that are closed.
type ClosureStore interface {
	// Close marks the element as closed. Closing twice is not an error.
	Close(ctx context.Context, id string) error

	// Open removes the closure. Opening an element that is not closed is not an error.
	Open(ctx context.Context, id string) error

	// Closed returns the currently closed IDs in ascending order.
	Closed(ctx context.Context) ([]string, error)
}

// Publisher delivers messages emitted by operations to the outside world.
type Publisher interface {
	// Publish sends payload on topic. Payload must be JSON-serializable.
	Publish(ctx context.Context, topic string, payload any) error
}
