package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/redis/go-redis/v9"

	"linkhub/internal/models"
)

// RegisterUser stores the document under its email unless a record already
// exists. The stored document is returned either way, so the first writer wins.
// The document's email is stored trimmed, matching its key.
func (s *Store) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	email := user.Email()
	if email == "" {
		return nil, ErrMissingEmail
	}

	doc := maps.Clone(user)
	doc["email"] = email

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}

	if err := s.rdb.SetNX(ctx, userKey(email), data, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to store user: %w", err)
	}

	return s.GetUser(ctx, email)
}

// GetUser returns the stored document for email.
func (s *Store) GetUser(ctx context.Context, email string) (models.User, error) {
	raw, err := s.rdb.Get(ctx, userKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return user, nil
}
