// Package storage persists contact form submissions.
package storage

import (
	"context"

	"github.com/kotae-ai/kotae/internal/models"
)

// Storage defines contact message persistence operations.
type Storage interface {
	CreateMessage(ctx context.Context, msg *models.ContactMessage) error
	// ListMessages returns all messages, newest first.
	ListMessages(ctx context.Context) ([]*models.ContactMessage, error)
	CountMessages(ctx context.Context) (int64, error)
	// Ping verifies the backing store is reachable (used by the health check).
	Ping(ctx context.Context) error
	Close() error
}
