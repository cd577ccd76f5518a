package goal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// GetGoalInput represents the input for fetching one goal.
type GetGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// GetGoalUseCase returns a single goal with its progress.
type GetGoalUseCase struct {
	goalRepo adapter.GoalRepository
	progressEvaluator
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(
	goalRepo adapter.GoalRepository,
	entryRepo adapter.EntryRepository,
	activityTypeRepo adapter.ActivityTypeRepository,
	now func() time.Time,
) *GetGoalUseCase {
	return &GetGoalUseCase{
		goalRepo:          goalRepo,
		progressEvaluator: progressEvaluator{entryRepo: entryRepo, activityTypeRepo: activityTypeRepo, now: now},
	}
}

// Execute fetches the goal. Goals owned by someone else are reported as not found.
func (uc *GetGoalUseCase) Execute(ctx context.Context, input GetGoalInput) (*entity.GoalProgress, error) {
	goal, err := uc.goalRepo.FindByID(ctx, input.GoalID, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	snap, err := uc.snapshot(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return evaluate(snap, goal, uc.today()), nil
}
