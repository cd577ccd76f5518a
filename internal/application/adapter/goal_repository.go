// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// Create creates a new goal in the database.
	Create(ctx context.Context, goal *entity.Goal) error

	// CreateMany stores several goals in one transaction.
	CreateMany(ctx context.Context, goals []*entity.Goal) error

	// FindByID retrieves a goal owned by userID.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Goal, error)

	// FindByUserID retrieves all goals for a given user, oldest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// Update updates an existing goal in the database.
	Update(ctx context.Context, goal *entity.Goal) error

	// Delete soft deletes a goal owned by userID.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
