package dashboard

import (
	"context"
	"fmt"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// GetDailySummaryInput represents the input for a daily summary. A zero
// date means today.
type GetDailySummaryInput struct {
	Request
	Date entity.Date
}

// GetDailySummaryUseCase returns one day's total and entries.
type GetDailySummaryUseCase struct {
	loader SnapshotLoader
	clock  Clock
}

// NewGetDailySummaryUseCase creates a new GetDailySummaryUseCase instance.
func NewGetDailySummaryUseCase(loader SnapshotLoader, clock Clock) *GetDailySummaryUseCase {
	return &GetDailySummaryUseCase{loader: loader, clock: clock}
}

// Execute computes the summary.
func (uc *GetDailySummaryUseCase) Execute(ctx context.Context, input GetDailySummaryInput) (*entity.DailySummary, error) {
	snap, err := uc.loader.LoadSnapshot(ctx, input.Identity, input.notifier())
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	date := input.Date
	if date.IsZero() {
		date = uc.clock.today()
	}

	summary := snap.DailySummary(date)
	return &summary, nil
}

// GetWeeklySummaryInput represents the input for a weekly summary. A zero
// start date means the Sunday starting the current week.
type GetWeeklySummaryInput struct {
	Request
	StartDate entity.Date
}

// GetWeeklySummaryUseCase returns the seven-day summary starting at a date.
type GetWeeklySummaryUseCase struct {
	loader SnapshotLoader
	clock  Clock
}

// NewGetWeeklySummaryUseCase creates a new GetWeeklySummaryUseCase instance.
func NewGetWeeklySummaryUseCase(loader SnapshotLoader, clock Clock) *GetWeeklySummaryUseCase {
	return &GetWeeklySummaryUseCase{loader: loader, clock: clock}
}

// Execute computes the summary.
func (uc *GetWeeklySummaryUseCase) Execute(ctx context.Context, input GetWeeklySummaryInput) (*entity.WeeklySummary, error) {
	snap, err := uc.loader.LoadSnapshot(ctx, input.Identity, input.notifier())
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	start := input.StartDate
	if start.IsZero() {
		start = uc.clock.today().StartOfWeek()
	}

	summary := snap.WeeklySummary(start)
	return &summary, nil
}
