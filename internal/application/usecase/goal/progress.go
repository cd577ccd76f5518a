// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/application/usecase/footprint"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// progressEvaluator measures goals against the owner's entries.
type progressEvaluator struct {
	entryRepo        adapter.EntryRepository
	activityTypeRepo adapter.ActivityTypeRepository
	now              func() time.Time
}

func (p progressEvaluator) today() entity.Date {
	if p.now == nil {
		return entity.DateOf(time.Now().UTC())
	}
	return entity.DateOf(p.now().UTC())
}

func (p progressEvaluator) snapshot(ctx context.Context, userID uuid.UUID) (footprint.Snapshot, error) {
	entries, err := p.entryRepo.FindByUserID(ctx, userID)
	if err != nil {
		return footprint.Snapshot{}, fmt.Errorf("failed to load entries: %w", err)
	}
	types, err := p.activityTypeRepo.FindAll(ctx)
	if err != nil {
		return footprint.Snapshot{}, fmt.Errorf("failed to load activity types: %w", err)
	}
	return footprint.NewSnapshot(entries, types), nil
}

// evaluate computes a goal's progress over the period window ending today.
func evaluate(snap footprint.Snapshot, goal *entity.Goal, today entity.Date) *entity.GoalProgress {
	start := windowStart(goal.Period, today)
	return entity.EvaluateGoal(goal, start, today, snap.PeriodTotal(start, today, goal.Category))
}

func windowStart(period entity.GoalPeriod, today entity.Date) entity.Date {
	return today.AddDays(-(period.Days() - 1))
}

// validateGoal checks the fields shared by create and update.
func validateGoal(title string, target float64, period entity.GoalPeriod) error {
	if strings.TrimSpace(title) == "" {
		return domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			"title is required",
			domainerror.ErrMissingGoalTitle,
		)
	}

	if target <= 0 {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetValue,
			"target value must be greater than zero",
			domainerror.ErrInvalidTargetValue,
		)
	}

	if !period.IsValid() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalPeriod,
			"period must be 'daily', 'weekly', or 'monthly'",
			domainerror.ErrInvalidGoalPeriod,
		)
	}

	return nil
}

func notFound() error {
	return domainerror.NewGoalError(
		domainerror.ErrCodeGoalNotFound,
		"goal not found",
		domainerror.ErrGoalNotFound,
	)
}
