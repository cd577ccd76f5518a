package dashboard

import (
	"context"
	"fmt"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// GetEntriesInRangeInput represents the input for a date range query.
type GetEntriesInRangeInput struct {
	Request
	StartDate entity.Date
	EndDate   entity.Date
}

// GetEntriesInRangeOutput holds the entries of a range and their total.
type GetEntriesInRangeOutput struct {
	StartDate entity.Date
	EndDate   entity.Date
	TotalCO2e float64
	Entries   []*entity.Entry
}

// GetEntriesInRangeUseCase returns the entries whose date falls in an inclusive range.
type GetEntriesInRangeUseCase struct {
	loader SnapshotLoader
}

// NewGetEntriesInRangeUseCase creates a new GetEntriesInRangeUseCase instance.
func NewGetEntriesInRangeUseCase(loader SnapshotLoader) *GetEntriesInRangeUseCase {
	return &GetEntriesInRangeUseCase{loader: loader}
}

// Execute runs the range query.
func (uc *GetEntriesInRangeUseCase) Execute(ctx context.Context, input GetEntriesInRangeInput) (*GetEntriesInRangeOutput, error) {
	if err := validateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	snap, err := uc.loader.LoadSnapshot(ctx, input.Identity, input.notifier())
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	entries := snap.EntriesByDateRange(input.StartDate, input.EndDate)
	return &GetEntriesInRangeOutput{
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		TotalCO2e: entity.SumCO2e(entries),
		Entries:   entries,
	}, nil
}

// GetRecentEntriesInput represents the input for the most recently logged entries.
type GetRecentEntriesInput struct {
	Request
	Limit int
}

// GetRecentEntriesUseCase returns entries by logging time, newest first.
type GetRecentEntriesUseCase struct {
	loader SnapshotLoader
}

// NewGetRecentEntriesUseCase creates a new GetRecentEntriesUseCase instance.
func NewGetRecentEntriesUseCase(loader SnapshotLoader) *GetRecentEntriesUseCase {
	return &GetRecentEntriesUseCase{loader: loader}
}

// Execute returns up to Limit entries; a limit of zero or less returns all of them.
func (uc *GetRecentEntriesUseCase) Execute(ctx context.Context, input GetRecentEntriesInput) ([]*entity.Entry, error) {
	snap, err := uc.loader.LoadSnapshot(ctx, input.Identity, input.notifier())
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	return snap.RecentEntries(input.Limit), nil
}

// GetHistoryInput represents the input for the activity history.
type GetHistoryInput struct {
	Request
	Limit int
}

// GetHistoryUseCase groups recent entries by the day they occurred.
type GetHistoryUseCase struct {
	loader SnapshotLoader
}

// NewGetHistoryUseCase creates a new GetHistoryUseCase instance.
func NewGetHistoryUseCase(loader SnapshotLoader) *GetHistoryUseCase {
	return &GetHistoryUseCase{loader: loader}
}

// Execute builds the grouped history.
func (uc *GetHistoryUseCase) Execute(ctx context.Context, input GetHistoryInput) ([]entity.DayGroup, error) {
	snap, err := uc.loader.LoadSnapshot(ctx, input.Identity, input.notifier())
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	return snap.History(input.Limit), nil
}
