package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Publish sends a notification payload to subscribers of NotificationsChannel
// and returns how many received it.
func (s *Store) Publish(ctx context.Context, payload any) (int64, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to encode notification: %w", err)
	}

	n, err := s.rdb.Publish(ctx, NotificationsChannel, data).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to publish notification: %w", err)
	}
	return n, nil
}
