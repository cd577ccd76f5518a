// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// EntryRepository is the remote entry store of authenticated users.
type EntryRepository interface {
	// FindByUserID returns the user's entries newest first, activity type joined.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Entry, error)

	// Create inserts the entry and returns the stored row with its activity type joined.
	Create(ctx context.Context, entry *entity.Entry) (*entity.Entry, error)

	// Delete removes the entry only if it belongs to userID. Missing rows are not an error.
	Delete(ctx context.Context, id string, userID uuid.UUID) error
}
