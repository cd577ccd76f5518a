package dashboard

import (
	"context"
	"fmt"

	"github.com/carbon-tracker/backend/internal/application/usecase/footprint"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// WeeklyTarget is the weekly footprint the overview measures progress against, in kg CO2e.
const WeeklyTarget = 70.0

// GetOverviewOutput is the main dashboard.
type GetOverviewOutput struct {
	Today          entity.DailySummary
	Week           entity.WeeklySummary
	DailyAverage   float64
	WeeklyTarget   float64
	WeeklyProgress float64 // percentage of WeeklyTarget, capped at 100
	TotalCO2e      float64
	RecentEntries  []*entity.Entry
}

// GetOverviewUseCase assembles the main dashboard.
type GetOverviewUseCase struct {
	loader SnapshotLoader
	clock  Clock
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(loader SnapshotLoader, clock Clock) *GetOverviewUseCase {
	return &GetOverviewUseCase{loader: loader, clock: clock}
}

// Execute computes today's summary, the current Sunday-based week and the totals.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, input Request) (*GetOverviewOutput, error) {
	snap, err := uc.loader.LoadSnapshot(ctx, input.Identity, input.notifier())
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	today := uc.clock.today()
	week := snap.WeeklySummary(today.StartOfWeek())

	progress := week.TotalCO2e / WeeklyTarget * 100
	if progress > 100 {
		progress = 100
	}

	return &GetOverviewOutput{
		Today:          snap.DailySummary(today),
		Week:           week,
		DailyAverage:   week.TotalCO2e / 7,
		WeeklyTarget:   WeeklyTarget,
		WeeklyProgress: progress,
		TotalCO2e:      snap.TotalFootprint(),
		RecentEntries:  snap.RecentEntries(footprint.DefaultRecentLimit),
	}, nil
}

// GetMonthlyComparisonUseCase compares the current month with the two before it.
type GetMonthlyComparisonUseCase struct {
	loader SnapshotLoader
	clock  Clock
}

// NewGetMonthlyComparisonUseCase creates a new GetMonthlyComparisonUseCase instance.
func NewGetMonthlyComparisonUseCase(loader SnapshotLoader, clock Clock) *GetMonthlyComparisonUseCase {
	return &GetMonthlyComparisonUseCase{loader: loader, clock: clock}
}

// Execute returns three monthly totals, oldest first.
func (uc *GetMonthlyComparisonUseCase) Execute(ctx context.Context, input Request) ([]entity.MonthlyTotal, error) {
	snap, err := uc.loader.LoadSnapshot(ctx, input.Identity, input.notifier())
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	return snap.MonthlyComparison(uc.clock.today()), nil
}

// GetAnalyticsUseCase computes the analytics dashboard.
type GetAnalyticsUseCase struct {
	loader SnapshotLoader
}

// NewGetAnalyticsUseCase creates a new GetAnalyticsUseCase instance.
func NewGetAnalyticsUseCase(loader SnapshotLoader) *GetAnalyticsUseCase {
	return &GetAnalyticsUseCase{loader: loader}
}

// Execute computes averages, category totals, the trend and achievements.
func (uc *GetAnalyticsUseCase) Execute(ctx context.Context, input Request) (*footprint.Analytics, error) {
	snap, err := uc.loader.LoadSnapshot(ctx, input.Identity, input.notifier())
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	analytics := snap.Analytics()
	return &analytics, nil
}
