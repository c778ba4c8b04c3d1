package backend

import (
	"context"

	"linkhub/internal/models"
	"linkhub/internal/store"
)

// Store is the persistence the backend handlers need. A nil Store means the
// process started without a data store.
type Store interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, email string) (models.User, error)
	AddLink(ctx context.Context, email string, link *models.Link) ([]models.Link, error)
	ActiveLinks(ctx context.Context, email string) ([]models.Link, error)
	LinkStats(ctx context.Context, email string) ([]models.LinkStats, error)
	Track(ctx context.Context, linkID string) (*store.TrackResult, error)
	Publish(ctx context.Context, payload any) (int64, error)
}
