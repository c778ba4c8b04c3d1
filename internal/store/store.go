// Package store persists profiles, links and click counters in Redis.
package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store wraps a Redis client.
type Store struct {
	rdb redis.UniversalClient
}

// New connects to the Redis instance at url and verifies it with a ping.
func New(ctx context.Context, url string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Store{rdb: rdb}, nil
}

// NewFromClient wraps an existing client.
func NewFromClient(rdb redis.UniversalClient) *Store {
	return &Store{rdb: rdb}
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close closes the client.
func (s *Store) Close() error {
	return s.rdb.Close()
}
