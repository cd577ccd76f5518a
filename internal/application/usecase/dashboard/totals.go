package dashboard

import (
	"context"
	"fmt"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// GetTotalOutput is the all-time footprint.
type GetTotalOutput struct {
	TotalCO2e  float64
	EntryCount int
}

// GetTotalUseCase returns the all-time footprint.
type GetTotalUseCase struct {
	loader SnapshotLoader
}

// NewGetTotalUseCase creates a new GetTotalUseCase instance.
func NewGetTotalUseCase(loader SnapshotLoader) *GetTotalUseCase {
	return &GetTotalUseCase{loader: loader}
}

// Execute sums every entry of the identity.
func (uc *GetTotalUseCase) Execute(ctx context.Context, input Request) (*GetTotalOutput, error) {
	snap, err := uc.loader.LoadSnapshot(ctx, input.Identity, input.notifier())
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	return &GetTotalOutput{
		TotalCO2e:  snap.TotalFootprint(),
		EntryCount: len(snap.Entries),
	}, nil
}

// GetTrendUseCase compares the two halves of the 30 most recent entries.
type GetTrendUseCase struct {
	loader SnapshotLoader
}

// NewGetTrendUseCase creates a new GetTrendUseCase instance.
func NewGetTrendUseCase(loader SnapshotLoader) *GetTrendUseCase {
	return &GetTrendUseCase{loader: loader}
}

// Execute computes the trend.
func (uc *GetTrendUseCase) Execute(ctx context.Context, input Request) (*entity.Trend, error) {
	snap, err := uc.loader.LoadSnapshot(ctx, input.Identity, input.notifier())
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	trend := snap.Trend()
	return &trend, nil
}

// GetDailySeriesInput represents the input for a chart series.
type GetDailySeriesInput struct {
	Request
	StartDate entity.Date
	EndDate   entity.Date
}

// GetDailySeriesUseCase returns per-day totals with empty days filled in.
type GetDailySeriesUseCase struct {
	loader SnapshotLoader
	clock  Clock
}

// NewGetDailySeriesUseCase creates a new GetDailySeriesUseCase instance.
func NewGetDailySeriesUseCase(loader SnapshotLoader, clock Clock) *GetDailySeriesUseCase {
	return &GetDailySeriesUseCase{loader: loader, clock: clock}
}

// Execute builds the series. Without dates it covers the 30 days ending today.
func (uc *GetDailySeriesUseCase) Execute(ctx context.Context, input GetDailySeriesInput) ([]entity.DailySummary, error) {
	start, end := input.StartDate, input.EndDate
	if start.IsZero() && end.IsZero() {
		end = uc.clock.today()
		start = end.AddDays(-29)
	}
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	snap, err := uc.loader.LoadSnapshot(ctx, input.Identity, input.notifier())
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	return snap.DailySeries(start, end), nil
}
