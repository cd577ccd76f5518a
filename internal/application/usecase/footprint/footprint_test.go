package footprint

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

var (
	car         = &entity.ActivityType{ID: "1", Name: "Car Travel", Unit: "km", EmissionFactor: 0.21, Category: entity.CategoryTransport}
	electricity = &entity.ActivityType{ID: "2", Name: "Electricity", Unit: "kWh", EmissionFactor: 0.42, Category: entity.CategoryEnergy}
	beef        = &entity.ActivityType{ID: "3", Name: "Beef Meal", Unit: "meal", EmissionFactor: 6.61, Category: entity.CategoryFood}
	catalog     = []*entity.ActivityType{beef, car, electricity}
	baseTime    = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
)

// entryWith builds an entry with a fixed co2e, created seq minutes after baseTime.
func entryWith(id, typeID, date string, co2e float64, seq int) *entity.Entry {
	return &entity.Entry{
		ID:             id,
		UserID:         "user",
		ActivityTypeID: typeID,
		Amount:         1,
		OccurredOn:     entity.MustParseDate(date),
		CO2e:           co2e,
		CreatedAt:      baseTime.Add(time.Duration(seq) * time.Minute),
	}
}

func TestDailySummary(t *testing.T) {
	snap := NewSnapshot([]*entity.Entry{
		entryWith("a", "1", "2024-01-01", 2.5, 1),
		entryWith("b", "2", "2024-01-01", 2.5, 2),
		entryWith("c", "2", "2024-01-02", 9, 3),
	}, catalog)

	summary := snap.DailySummary(entity.MustParseDate("2024-01-01"))

	assert.InDelta(t, 5.0, summary.TotalCO2e, 1e-9)
	assert.Len(t, summary.Entries, 2)

	empty := snap.DailySummary(entity.MustParseDate("2023-12-31"))
	assert.Zero(t, empty.TotalCO2e)
	assert.Empty(t, empty.Entries)
}

func TestWeeklySummary(t *testing.T) {
	t.Run("daily breakdown and totals", func(t *testing.T) {
		snap := NewSnapshot([]*entity.Entry{
			entryWith("a", "1", "2024-01-01", 3, 1),
			entryWith("b", "2", "2024-01-01", 2, 2),
			entryWith("c", "3", "2024-01-03", 3, 3),
			entryWith("outside", "3", "2024-01-08", 50, 4),
		}, catalog)

		week := snap.WeeklySummary(entity.MustParseDate("2024-01-01"))

		assert.Equal(t, "2024-01-07", week.EndDate.String())
		assert.InDelta(t, 8.0, week.TotalCO2e, 1e-9)
		require.Len(t, week.DailyBreakdown, 7)
		for i, day := range week.DailyBreakdown {
			assert.Equal(t, entity.MustParseDate("2024-01-01").AddDays(i).String(), day.Date.String())
			switch i {
			case 0:
				assert.InDelta(t, 5.0, day.TotalCO2e, 1e-9)
			case 2:
				assert.InDelta(t, 3.0, day.TotalCO2e, 1e-9)
			default:
				assert.Zero(t, day.TotalCO2e)
			}
		}
	})

	t.Run("total equals sum of breakdown", func(t *testing.T) {
		entries := make([]*entity.Entry, 0)
		for i := 0; i < 20; i++ {
			date := entity.MustParseDate("2024-02-01").AddDays(i % 10).String()
			entries = append(entries, entryWith(fmt.Sprint(i), catalog[i%3].ID, date, float64(i)*0.7, i))
		}
		snap := NewSnapshot(entries, catalog)

		for offset := 0; offset < 10; offset++ {
			week := snap.WeeklySummary(entity.MustParseDate("2024-02-01").AddDays(offset))
			var sum float64
			for _, d := range week.DailyBreakdown {
				sum += d.TotalCO2e
			}
			assert.InDelta(t, week.TotalCO2e, sum, 1e-9)
		}
	})

	t.Run("category ranking", func(t *testing.T) {
		snap := NewSnapshot([]*entity.Entry{
			entryWith("a", "1", "2024-01-01", 1, 1),
			entryWith("b", "3", "2024-01-02", 6, 2),
			entryWith("c", "2", "2024-01-03", 3, 3),
		}, catalog)

		week := snap.WeeklySummary(entity.MustParseDate("2024-01-01"))

		require.Len(t, week.TopCategories, 3)
		assert.Equal(t, entity.CategoryFood, week.TopCategories[0].Category)
		assert.Equal(t, entity.CategoryEnergy, week.TopCategories[1].Category)
		assert.Equal(t, entity.CategoryTransport, week.TopCategories[2].Category)

		var pct float64
		for _, c := range week.TopCategories {
			pct += c.Percentage
		}
		assert.InDelta(t, 100.0, pct, 1e-9)
	})

	t.Run("joined type wins over catalog", func(t *testing.T) {
		e := entryWith("a", "1", "2024-01-01", 1, 1)
		e.ActivityType = &entity.ActivityType{ID: "1", Category: "custom"}
		snap := NewSnapshot([]*entity.Entry{e}, catalog)

		week := snap.WeeklySummary(entity.MustParseDate("2024-01-01"))

		require.Len(t, week.TopCategories, 1)
		assert.Equal(t, "custom", week.TopCategories[0].Category)
	})

	t.Run("unresolved types count in total but not in ranking", func(t *testing.T) {
		snap := NewSnapshot([]*entity.Entry{
			entryWith("a", "1", "2024-01-01", 3, 1),
			entryWith("b", "retired", "2024-01-02", 1, 2),
		}, catalog)

		week := snap.WeeklySummary(entity.MustParseDate("2024-01-01"))

		assert.InDelta(t, 4.0, week.TotalCO2e, 1e-9)
		require.Len(t, week.TopCategories, 1)
		assert.Equal(t, entity.CategoryTransport, week.TopCategories[0].Category)
		assert.InDelta(t, 75.0, week.TopCategories[0].Percentage, 1e-9)
	})

	t.Run("zero total yields zero percentages", func(t *testing.T) {
		snap := NewSnapshot([]*entity.Entry{
			entryWith("a", "1", "2024-01-01", 0, 1),
		}, catalog)

		week := snap.WeeklySummary(entity.MustParseDate("2024-01-01"))

		require.Len(t, week.TopCategories, 1)
		assert.Zero(t, week.TopCategories[0].Percentage)
	})
}

func TestRecentEntries(t *testing.T) {
	entries := []*entity.Entry{
		entryWith("old", "1", "2024-03-01", 1, 1),
		entryWith("new", "1", "2024-01-01", 1, 3),
		entryWith("mid", "1", "2024-02-01", 1, 2),
	}
	snap := NewSnapshot(entries, catalog)

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{name: "limited", limit: 2, want: []string{"new", "mid"}},
		{name: "zero means all", limit: 0, want: []string{"new", "mid", "old"}},
		{name: "negative means all", limit: -1, want: []string{"new", "mid", "old"}},
		{name: "larger than store", limit: 10, want: []string{"new", "mid", "old"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snap.RecentEntries(tt.limit)
			ids := make([]string, len(got))
			for i, e := range got {
				ids[i] = e.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	assert.Equal(t, "old", snap.Entries[0].ID, "snapshot order must not change")
}

func TestTotalAndRange(t *testing.T) {
	snap := NewSnapshot([]*entity.Entry{
		entryWith("a", "1", "2024-01-31", 1, 1),
		entryWith("b", "1", "2024-02-01", 2, 2),
		entryWith("c", "1", "2024-02-29", 4, 3),
		entryWith("d", "1", "2024-03-01", 8, 4),
	}, catalog)

	assert.InDelta(t, 15.0, snap.TotalFootprint(), 1e-9)

	feb := snap.EntriesByDateRange(entity.MustParseDate("2024-02-01"), entity.MustParseDate("2024-02-29"))
	assert.Len(t, feb, 2)
	assert.InDelta(t, 6.0, entity.SumCO2e(feb), 1e-9)
}

func TestTrend(t *testing.T) {
	t.Run("full window", func(t *testing.T) {
		entries := make([]*entity.Entry, 0, 30)
		// the newest 15 entries emit 1 each, the older 15 emit 3 each
		for i := 0; i < 30; i++ {
			co2e := 3.0
			if i >= 15 {
				co2e = 1.0
			}
			entries = append(entries, entryWith(fmt.Sprint(i), "1", "2024-01-01", co2e, i))
		}
		snap := NewSnapshot(entries, catalog)

		trend := snap.Trend()

		assert.InDelta(t, 1.0, trend.FirstHalfAverage, 1e-9)
		assert.InDelta(t, 3.0, trend.SecondHalfAverage, 1e-9)
		assert.InDelta(t, 2.0, trend.Delta, 1e-9)
		assert.Equal(t, 30, trend.SampleSize)
		assert.False(t, trend.Approximate)
	})

	t.Run("short history divides by the fixed half size", func(t *testing.T) {
		entries := make([]*entity.Entry, 0, 20)
		for i := 0; i < 20; i++ {
			entries = append(entries, entryWith(fmt.Sprint(i), "1", "2024-01-01", 1.5, i))
		}
		snap := NewSnapshot(entries, catalog)

		trend := snap.Trend()

		assert.InDelta(t, 1.5, trend.FirstHalfAverage, 1e-9)
		assert.InDelta(t, 0.5, trend.SecondHalfAverage, 1e-9)
		assert.InDelta(t, -1.0, trend.Delta, 1e-9)
		assert.True(t, trend.Approximate)
	})

	t.Run("empty store", func(t *testing.T) {
		trend := NewSnapshot(nil, catalog).Trend()
		assert.Zero(t, trend.Delta)
		assert.True(t, trend.Approximate)
	})
}

func TestMonthlyComparison(t *testing.T) {
	snap := NewSnapshot([]*entity.Entry{
		entryWith("a", "1", "2024-01-15", 10, 1),
		entryWith("b", "1", "2024-02-10", 4, 2),
		entryWith("c", "1", "2024-03-01", 7, 3),
		entryWith("d", "1", "2023-12-31", 99, 4),
	}, catalog)

	months := snap.MonthlyComparison(entity.MustParseDate("2024-03-20"))

	require.Len(t, months, 3)
	assert.Equal(t, "Jan 2024", months[0].Label)
	assert.Equal(t, "Mar 2024", months[2].Label)
	assert.InDelta(t, 10.0, months[0].TotalCO2e, 1e-9)
	assert.InDelta(t, 4.0, months[1].TotalCO2e, 1e-9)
	assert.InDelta(t, 7.0, months[2].TotalCO2e, 1e-9)
	assert.True(t, months[0].IsHighest)
	assert.True(t, months[1].IsLowest)
	assert.False(t, months[2].IsLowest || months[2].IsHighest)
}

func TestStreak(t *testing.T) {
	today := entity.MustParseDate("2024-05-10")

	tests := []struct {
		name  string
		dates []string
		want  int
	}{
		{name: "no entries", want: 0},
		{name: "nothing today", dates: []string{"2024-05-09", "2024-05-08"}, want: 0},
		{name: "three days", dates: []string{"2024-05-10", "2024-05-09", "2024-05-08", "2024-05-06"}, want: 3},
		{name: "duplicate days count once", dates: []string{"2024-05-10", "2024-05-10", "2024-05-09"}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := make([]*entity.Entry, 0, len(tt.dates))
			for i, d := range tt.dates {
				entries = append(entries, entryWith(fmt.Sprint(i), "1", d, 1, i))
			}
			assert.Equal(t, tt.want, NewSnapshot(entries, catalog).Streak(today))
		})
	}
}

func TestAnalytics(t *testing.T) {
	entries := make([]*entity.Entry, 0, 30)
	for i := 0; i < 30; i++ {
		entries = append(entries, entryWith(fmt.Sprint(i), "2", "2024-01-01", 1, i))
	}
	snap := NewSnapshot(entries, catalog)

	a := snap.Analytics()

	assert.InDelta(t, 1.0, a.WeeklyAverage, 1e-9)
	assert.InDelta(t, 30.0, a.MonthlyTotal, 1e-9)
	require.Len(t, a.CategoryTotals, 1)
	assert.Equal(t, entity.CategoryEnergy, a.CategoryTotals[0].Category)

	achieved := map[string]bool{}
	for _, ach := range a.Achievements {
		achieved[ach.Title] = ach.Achieved
	}
	assert.True(t, achieved["Eco Warrior"])
	assert.True(t, achieved["Carbon Conscious"])
	assert.False(t, achieved["Trend Setter"])

	empty := NewSnapshot(nil, catalog).Analytics()
	for _, ach := range empty.Achievements {
		assert.False(t, ach.Achieved, ach.Title)
	}
}

func TestDailySeriesAndHistory(t *testing.T) {
	snap := NewSnapshot([]*entity.Entry{
		entryWith("a", "1", "2024-01-01", 1, 1),
		entryWith("b", "1", "2024-01-03", 2, 2),
		entryWith("c", "1", "2024-01-03", 3, 3),
	}, catalog)

	series := snap.DailySeries(entity.MustParseDate("2024-01-01"), entity.MustParseDate("2024-01-04"))
	require.Len(t, series, 4)
	assert.InDelta(t, 1.0, series[0].TotalCO2e, 1e-9)
	assert.Zero(t, series[1].TotalCO2e)
	assert.InDelta(t, 5.0, series[2].TotalCO2e, 1e-9)
	assert.Zero(t, series[3].TotalCO2e)

	history := snap.History(0)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-01-03", history[0].Date.String())
	assert.InDelta(t, 5.0, history[0].DayTotal, 1e-9)
	assert.Equal(t, "c", history[0].Entries[0].ID)
	assert.Equal(t, "2024-01-01", history[1].Date.String())
}

func TestSnapshotIsolation(t *testing.T) {
	entries := []*entity.Entry{entryWith("a", "1", "2024-01-01", 1, 1)}
	snap := NewSnapshot(entries, catalog)

	entries[0].CO2e = 100

	assert.InDelta(t, 1.0, snap.TotalFootprint(), 1e-9)
}

func TestPeriodTotal(t *testing.T) {
	snap := NewSnapshot([]*entity.Entry{
		entryWith("a", "1", "2024-01-01", 2, 1),
		entryWith("b", "2", "2024-01-02", 3, 2),
		entryWith("c", "1", "2024-01-09", 7, 3),
		entryWith("d", "404", "2024-01-02", 11, 4),
	}, catalog)

	start, end := entity.MustParseDate("2024-01-01"), entity.MustParseDate("2024-01-07")

	assert.InDelta(t, 16.0, snap.PeriodTotal(start, end, ""), 1e-9)
	assert.InDelta(t, 2.0, snap.PeriodTotal(start, end, entity.CategoryTransport), 1e-9)
	assert.Equal(t, "", snap.CategoryOf(snap.Entries[3]))
}
