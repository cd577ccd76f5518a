package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	UserID uuid.UUID
}

// ListGoalsOutput holds every goal of the user with its current progress.
type ListGoalsOutput struct {
	Goals []*entity.GoalProgress
}

// ListGoalsUseCase handles listing goals logic.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
	progressEvaluator
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(
	goalRepo adapter.GoalRepository,
	entryRepo adapter.EntryRepository,
	activityTypeRepo adapter.ActivityTypeRepository,
	now func() time.Time,
) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo:          goalRepo,
		progressEvaluator: progressEvaluator{entryRepo: entryRepo, activityTypeRepo: activityTypeRepo, now: now},
	}
}

// Execute performs the goal listing.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	output := &ListGoalsOutput{
		Goals: make([]*entity.GoalProgress, 0, len(goals)),
	}
	if len(goals) == 0 {
		return output, nil
	}

	snap, err := uc.snapshot(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	today := uc.today()
	for _, g := range goals {
		output.Goals = append(output.Goals, evaluate(snap, g, today))
	}

	return output, nil
}
