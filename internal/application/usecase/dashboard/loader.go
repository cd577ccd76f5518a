// Package dashboard contains the read-only footprint and dashboard use cases.
package dashboard

import (
	"context"
	"time"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/application/usecase/footprint"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// maxRangeDays bounds the span of range and series queries.
const maxRangeDays = 366

// SnapshotLoader opens the entry store of an identity and returns its snapshot.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, identity entity.Identity, notifier adapter.Notifier) (footprint.Snapshot, error)
}

// Request identifies who is asking and where notifications go.
type Request struct {
	Identity entity.Identity
	Notifier adapter.Notifier
}

func (r Request) notifier() adapter.Notifier {
	if r.Notifier == nil {
		return adapter.NopNotifier{}
	}
	return r.Notifier
}

// Clock returns the current time. Dashboards use it to find "today".
type Clock func() time.Time

func (c Clock) today() entity.Date {
	if c == nil {
		return entity.DateOf(time.Now().UTC())
	}
	return entity.DateOf(c().UTC())
}

// validateRange checks a required, ordered and bounded date range.
func validateRange(start, end entity.Date) error {
	if start.IsZero() {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeMissingStartDate,
			"start_date is required",
			domainerror.ErrMissingStartDate,
		)
	}

	if end.IsZero() {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeMissingEndDate,
			"end_date is required",
			domainerror.ErrMissingEndDate,
		)
	}

	if end.Before(start) {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must not be before start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	if end.After(start.AddDays(maxRangeDays - 1)) {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeRangeTooLarge,
			"date range must not exceed 366 days",
			domainerror.ErrRangeTooLarge,
		)
	}

	return nil
}
