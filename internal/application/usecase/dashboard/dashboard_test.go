package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/application/usecase/footprint"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

var (
	car   = &entity.ActivityType{ID: "1", Name: "Car Travel", Unit: "miles", EmissionFactor: 0.25, Category: entity.CategoryTransport}
	power = &entity.ActivityType{ID: "2", Name: "Electricity", Unit: "kWh", EmissionFactor: 0.42, Category: entity.CategoryEnergy}
	// Wednesday
	fixedNow = time.Date(2024, 1, 31, 15, 0, 0, 0, time.UTC)
)

type stubLoader struct {
	entries []*entity.Entry
	err     error
	calls   int
}

func (s *stubLoader) LoadSnapshot(context.Context, entity.Identity, adapter.Notifier) (footprint.Snapshot, error) {
	s.calls++
	if s.err != nil {
		return footprint.Snapshot{}, s.err
	}
	return footprint.NewSnapshot(s.entries, []*entity.ActivityType{car, power}), nil
}

func clock() time.Time { return fixedNow }

func entryOn(id string, at *entity.ActivityType, date string, co2e float64, seq int) *entity.Entry {
	return &entity.Entry{
		ID:             id,
		UserID:         "user",
		ActivityTypeID: at.ID,
		Amount:         1,
		OccurredOn:     entity.MustParseDate(date),
		CO2e:           co2e,
		CreatedAt:      fixedNow.Add(time.Duration(seq) * time.Minute),
	}
}

func guestRequest() Request {
	return Request{Identity: entity.GuestIdentity("device-1")}
}

func TestGetDailySummary_DefaultsToToday(t *testing.T) {
	loader := &stubLoader{entries: []*entity.Entry{
		entryOn("a", car, "2024-01-31", 2.5, 1),
		entryOn("b", power, "2024-01-30", 4, 2),
	}}
	uc := NewGetDailySummaryUseCase(loader, clock)

	summary, err := uc.Execute(context.Background(), GetDailySummaryInput{Request: guestRequest()})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-31", summary.Date.String())
	assert.InDelta(t, 2.5, summary.TotalCO2e, 1e-9)

	summary, err = uc.Execute(context.Background(), GetDailySummaryInput{
		Request: guestRequest(),
		Date:    entity.MustParseDate("2024-01-30"),
	})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, summary.TotalCO2e, 1e-9)
}

func TestGetWeeklySummary_DefaultsToSundayOfCurrentWeek(t *testing.T) {
	loader := &stubLoader{entries: []*entity.Entry{
		entryOn("a", car, "2024-01-28", 1, 1),
		entryOn("b", car, "2024-02-03", 2, 2),
		entryOn("c", car, "2024-02-04", 40, 3),
	}}
	uc := NewGetWeeklySummaryUseCase(loader, clock)

	week, err := uc.Execute(context.Background(), GetWeeklySummaryInput{Request: guestRequest()})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-28", week.StartDate.String())
	assert.Equal(t, "2024-02-03", week.EndDate.String())
	assert.InDelta(t, 3.0, week.TotalCO2e, 1e-9)
	assert.Len(t, week.DailyBreakdown, 7)
}

func TestGetEntriesInRange_Validation(t *testing.T) {
	uc := NewGetEntriesInRangeUseCase(&stubLoader{})
	jan1 := entity.MustParseDate("2024-01-01")

	tests := []struct {
		name  string
		start entity.Date
		end   entity.Date
		code  domainerror.DashboardErrorCode
	}{
		{"missing start", entity.Date{}, jan1, domainerror.ErrCodeMissingStartDate},
		{"missing end", jan1, entity.Date{}, domainerror.ErrCodeMissingEndDate},
		{"reversed", jan1, jan1.AddDays(-1), domainerror.ErrCodeInvalidDateRange},
		{"too large", jan1, jan1.AddDays(366), domainerror.ErrCodeRangeTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), GetEntriesInRangeInput{
				Request:   guestRequest(),
				StartDate: tt.start,
				EndDate:   tt.end,
			})

			var dashErr *domainerror.DashboardError
			require.ErrorAs(t, err, &dashErr)
			assert.Equal(t, tt.code, dashErr.Code)
		})
	}
}

func TestGetEntriesInRange_InclusiveBounds(t *testing.T) {
	loader := &stubLoader{entries: []*entity.Entry{
		entryOn("a", car, "2024-01-01", 1, 1),
		entryOn("b", car, "2024-01-05", 2, 2),
		entryOn("c", car, "2024-01-06", 4, 3),
	}}
	uc := NewGetEntriesInRangeUseCase(loader)

	out, err := uc.Execute(context.Background(), GetEntriesInRangeInput{
		Request:   guestRequest(),
		StartDate: entity.MustParseDate("2024-01-01"),
		EndDate:   entity.MustParseDate("2024-01-05"),
	})
	require.NoError(t, err)
	assert.Len(t, out.Entries, 2)
	assert.InDelta(t, 3.0, out.TotalCO2e, 1e-9)
}

func TestGetRecentEntries(t *testing.T) {
	loader := &stubLoader{entries: []*entity.Entry{
		entryOn("old", car, "2024-01-31", 1, 1),
		entryOn("new", car, "2024-01-01", 1, 2),
	}}
	uc := NewGetRecentEntriesUseCase(loader)

	entries, err := uc.Execute(context.Background(), GetRecentEntriesInput{Request: guestRequest(), Limit: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new", entries[0].ID)
}

func TestGetTotalAndTrend(t *testing.T) {
	loader := &stubLoader{entries: []*entity.Entry{
		entryOn("a", car, "2024-01-01", 1.5, 1),
		entryOn("b", power, "2024-01-02", 2.5, 2),
	}}

	total, err := NewGetTotalUseCase(loader).Execute(context.Background(), guestRequest())
	require.NoError(t, err)
	assert.InDelta(t, 4.0, total.TotalCO2e, 1e-9)
	assert.Equal(t, 2, total.EntryCount)

	trend, err := NewGetTrendUseCase(loader).Execute(context.Background(), guestRequest())
	require.NoError(t, err)
	assert.True(t, trend.Approximate)
	assert.Equal(t, 2, trend.SampleSize)
}

func TestGetDailySeries(t *testing.T) {
	t.Run("defaults to the 30 days ending today", func(t *testing.T) {
		loader := &stubLoader{entries: []*entity.Entry{entryOn("a", car, "2024-01-31", 3, 1)}}
		series, err := NewGetDailySeriesUseCase(loader, clock).Execute(context.Background(), GetDailySeriesInput{Request: guestRequest()})
		require.NoError(t, err)
		require.Len(t, series, 30)
		assert.Equal(t, "2024-01-02", series[0].Date.String())
		assert.InDelta(t, 3.0, series[29].TotalCO2e, 1e-9)
	})

	t.Run("rejects a half-open range", func(t *testing.T) {
		loader := &stubLoader{}
		_, err := NewGetDailySeriesUseCase(loader, clock).Execute(context.Background(), GetDailySeriesInput{
			Request:   guestRequest(),
			StartDate: entity.MustParseDate("2024-01-01"),
		})
		assert.ErrorIs(t, err, domainerror.ErrMissingEndDate)
		assert.Zero(t, loader.calls)
	})
}

func TestGetOverview(t *testing.T) {
	loader := &stubLoader{entries: []*entity.Entry{
		entryOn("a", car, "2024-01-31", 7, 1),
		entryOn("b", power, "2024-01-29", 14, 2),
		entryOn("c", power, "2024-01-20", 100, 3),
	}}

	out, err := NewGetOverviewUseCase(loader, clock).Execute(context.Background(), guestRequest())
	require.NoError(t, err)

	assert.InDelta(t, 7.0, out.Today.TotalCO2e, 1e-9)
	assert.Equal(t, "2024-01-28", out.Week.StartDate.String())
	assert.InDelta(t, 21.0, out.Week.TotalCO2e, 1e-9)
	assert.InDelta(t, 3.0, out.DailyAverage, 1e-9)
	assert.InDelta(t, 30.0, out.WeeklyProgress, 1e-9)
	assert.InDelta(t, 121.0, out.TotalCO2e, 1e-9)
	assert.Len(t, out.RecentEntries, 3)
}

func TestGetOverview_ProgressIsCapped(t *testing.T) {
	loader := &stubLoader{entries: []*entity.Entry{entryOn("a", car, "2024-01-31", 700, 1)}}

	out, err := NewGetOverviewUseCase(loader, clock).Execute(context.Background(), guestRequest())
	require.NoError(t, err)
	assert.Equal(t, 100.0, out.WeeklyProgress)
}

func TestGetMonthlyComparisonAndAnalytics(t *testing.T) {
	loader := &stubLoader{entries: []*entity.Entry{
		entryOn("a", car, "2023-11-15", 10, 1),
		entryOn("b", car, "2023-12-15", 20, 2),
		entryOn("c", car, "2024-01-15", 5, 3),
	}}

	months, err := NewGetMonthlyComparisonUseCase(loader, clock).Execute(context.Background(), guestRequest())
	require.NoError(t, err)
	require.Len(t, months, 3)
	assert.Equal(t, "Nov 2023", months[0].Label)
	assert.True(t, months[2].IsLowest)
	assert.True(t, months[1].IsHighest)

	analytics, err := NewGetAnalyticsUseCase(loader).Execute(context.Background(), guestRequest())
	require.NoError(t, err)
	assert.InDelta(t, 35.0, analytics.Total, 1e-9)
}

func TestLoaderFailureIsReturned(t *testing.T) {
	boom := errors.New("store unavailable")
	loader := &stubLoader{err: boom}

	_, err := NewGetOverviewUseCase(loader, clock).Execute(context.Background(), guestRequest())
	assert.ErrorIs(t, err, boom)

	_, err = NewGetHistoryUseCase(loader).Execute(context.Background(), GetHistoryInput{Request: guestRequest()})
	assert.ErrorIs(t, err, boom)
}
