// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// ActivityTypeRepository reads and seeds the emission catalog.
type ActivityTypeRepository interface {
	// FindAll returns every activity type ordered by name.
	FindAll(ctx context.Context) ([]*entity.ActivityType, error)

	// FindByID returns a single activity type or domainerror.ErrUnknownActivityType.
	FindByID(ctx context.Context, id string) (*entity.ActivityType, error)

	// Upsert inserts or replaces the given activity types, keyed by id.
	Upsert(ctx context.Context, types []*entity.ActivityType) error
}
