package footprint

import (
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// DailySummary returns the entries logged for exactly date and their total.
func (s Snapshot) DailySummary(date entity.Date) entity.DailySummary {
	entries := filter(s.Entries, func(e *entity.Entry) bool {
		return e.OccurredOn.Equal(date)
	})
	return entity.DailySummary{
		Date:      date,
		TotalCO2e: entity.SumCO2e(entries),
		Entries:   entries,
	}
}

// WeeklySummary covers the seven days [start, start+6], both inclusive.
// TotalCO2e counts every entry, but TopCategories only ranks entries whose
// activity type resolves, so its percentages can sum to less than 100.
func (s Snapshot) WeeklySummary(start entity.Date) entity.WeeklySummary {
	end := start.AddDays(6)
	week := s.EntriesByDateRange(start, end)
	total := entity.SumCO2e(week)

	breakdown := make([]entity.DailySummary, 0, 7)
	for i := 0; i < 7; i++ {
		breakdown = append(breakdown, s.DailySummary(start.AddDays(i)))
	}

	return entity.WeeklySummary{
		StartDate:      start,
		EndDate:        end,
		TotalCO2e:      total,
		DailyBreakdown: breakdown,
		TopCategories:  s.categoryShares(week, total),
	}
}

// RecentEntries returns up to limit entries, newest first. A limit of zero or
// less returns every entry.
func (s Snapshot) RecentEntries(limit int) []*entity.Entry {
	sorted := newestFirst(s.Entries)
	if limit <= 0 || limit >= len(sorted) {
		return sorted
	}
	return sorted[:limit]
}

// TotalFootprint is the all-time sum of emissions.
func (s Snapshot) TotalFootprint() float64 {
	return entity.SumCO2e(s.Entries)
}

// EntriesByDateRange returns the entries whose date falls within [start, end].
func (s Snapshot) EntriesByDateRange(start, end entity.Date) []*entity.Entry {
	return filter(s.Entries, func(e *entity.Entry) bool {
		return e.OccurredOn.Between(start, end)
	})
}

// DailySeries returns one summary per day in [start, end], including empty days.
func (s Snapshot) DailySeries(start, end entity.Date) []entity.DailySummary {
	series := make([]entity.DailySummary, 0)
	for d := start; !d.After(end); d = d.AddDays(1) {
		series = append(series, s.DailySummary(d))
	}
	return series
}

// History groups the limit most recent entries by day, most recent day first.
func (s Snapshot) History(limit int) []entity.DayGroup {
	groups := make([]entity.DayGroup, 0)
	index := make(map[string]int)

	for _, e := range s.RecentEntries(limit) {
		i, ok := index[e.OccurredOn.String()]
		if !ok {
			i = len(groups)
			index[e.OccurredOn.String()] = i
			groups = append(groups, entity.DayGroup{Date: e.OccurredOn})
		}
		groups[i].Entries = append(groups[i].Entries, e)
		groups[i].DayTotal += e.CO2e
	}

	sortGroups(groups)
	return groups
}

// CategoryOf returns the category of an entry, or "" when its type is unknown.
func (s Snapshot) CategoryOf(e *entity.Entry) string {
	if t, ok := s.activityTypeOf(e); ok {
		return t.Category
	}
	return ""
}

// PeriodTotal sums the emissions in [start, end]. A non-empty category keeps
// only entries of that category.
func (s Snapshot) PeriodTotal(start, end entity.Date, category string) float64 {
	return entity.SumCO2e(filter(s.EntriesByDateRange(start, end), func(e *entity.Entry) bool {
		return category == "" || s.CategoryOf(e) == category
	}))
}
