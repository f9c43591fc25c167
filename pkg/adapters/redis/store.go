package redis

import (
	"context"
	"fmt"
	"sort"

	backend "github.com/redis/go-redis/v9"
)

// ClosureStore implements ports.ClosureStore using a Redis set, so several
// route followers can share closures.
type ClosureStore struct {
	client *backend.Client
	prefix string
}

// Option configures the Redis adapters.
type Option func(*options)

type options struct {
	prefix string
}

// WithPrefix sets the key and channel prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

func buildOptions(opts []Option) options {
	o := options{prefix: "routeops:"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewClient creates a Redis client for the given server.
func NewClient(address, password string, db int) *backend.Client {
	return backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
}

// NewClosureStore creates a closure store from an existing client.
func NewClosureStore(client *backend.Client, opts ...Option) *ClosureStore {
	o := buildOptions(opts)
	return &ClosureStore{client: client, prefix: o.prefix}
}

func (s *ClosureStore) key() string {
	return s.prefix + "closures"
}

// Close adds id to the closure set.
func (s *ClosureStore) Close(ctx context.Context, id string) error {
	if err := s.client.SAdd(ctx, s.key(), id).Err(); err != nil {
		return fmt.Errorf("redis error closing %s: %w", id, err)
	}
	return nil
}

// Open removes id from the closure set.
func (s *ClosureStore) Open(ctx context.Context, id string) error {
	if err := s.client.SRem(ctx, s.key(), id).Err(); err != nil {
		return fmt.Errorf("redis error opening %s: %w", id, err)
	}
	return nil
}

// Closed returns the closed IDs in ascending order.
func (s *ClosureStore) Closed(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, s.key()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error listing closures: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}
