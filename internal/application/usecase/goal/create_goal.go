package goal

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID        uuid.UUID
	Title         string
	TargetValue   float64
	Period        entity.GoalPeriod // Optional, defaults to daily
	Category      string            // Optional
	AlertOnExceed *bool             // Optional, defaults to true
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	period := input.Period
	if period == "" {
		period = entity.GoalPeriodDaily
	}

	if err := validateGoal(input.Title, input.TargetValue, period); err != nil {
		return nil, err
	}

	alertOnExceed := true
	if input.AlertOnExceed != nil {
		alertOnExceed = *input.AlertOnExceed
	}

	goal := entity.NewGoal(
		input.UserID,
		strings.TrimSpace(input.Title),
		input.TargetValue,
		period,
		strings.TrimSpace(input.Category),
		alertOnExceed,
	)

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{
		Goal: goal,
	}, nil
}
