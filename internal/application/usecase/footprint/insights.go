package footprint

import (
	"sort"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// DailyGoal is the global average daily footprint, in kg CO2e.
const DailyGoal = 6.85

// StreakWindow bounds both the days looked back and the entries considered for a streak.
const StreakWindow = 30

// Achievement is a badge derived from recent logging behaviour.
type Achievement struct {
	Title       string
	Description string
	Achieved    bool
}

// Analytics is the aggregate shown on the analytics dashboard.
type Analytics struct {
	WeeklyAverage  float64
	MonthlyTotal   float64
	Total          float64
	Trend          entity.Trend
	CategoryTotals []entity.CategoryShare
	Achievements   []Achievement
}

// MonthlyComparison returns totals for the month of today and the two months
// before it, oldest first, with the lowest and highest months flagged.
func (s Snapshot) MonthlyComparison(today entity.Date) []entity.MonthlyTotal {
	current := today.StartOfMonth()
	months := make([]entity.MonthlyTotal, 0, 3)
	for i := 2; i >= 0; i-- {
		start := current.AddMonths(-i)
		months = append(months, entity.MonthlyTotal{
			Month:     start,
			Label:     start.Time().Format("Jan 2006"),
			TotalCO2e: entity.SumCO2e(s.EntriesByDateRange(start, start.EndOfMonth())),
		})
	}

	lowest, highest := 0, 0
	for i, m := range months {
		if m.TotalCO2e < months[lowest].TotalCO2e {
			lowest = i
		}
		if m.TotalCO2e > months[highest].TotalCO2e {
			highest = i
		}
	}
	months[lowest].IsLowest = true
	months[highest].IsHighest = true
	return months
}

// Streak counts consecutive days, going back from today, that have at least
// one entry among the 30 most recent entries.
func (s Snapshot) Streak(today entity.Date) int {
	days := make(map[string]bool)
	for _, e := range s.RecentEntries(StreakWindow) {
		days[e.OccurredOn.String()] = true
	}

	streak := 0
	for i := 0; i < StreakWindow; i++ {
		if !days[today.AddDays(-i).String()] {
			break
		}
		streak++
	}
	return streak
}

// Analytics computes the analytics dashboard figures from the most recent entries.
func (s Snapshot) Analytics() Analytics {
	last30 := s.RecentEntries(TrendWindow)
	last7 := s.RecentEntries(7)
	trend := s.Trend()
	monthly := entity.SumCO2e(last30)

	ecoWarrior := len(last7) > 0
	for _, e := range last7 {
		if e.CO2e >= DailyGoal {
			ecoWarrior = false
			break
		}
	}

	return Analytics{
		WeeklyAverage:  entity.SumCO2e(last7) / 7,
		MonthlyTotal:   monthly,
		Total:          s.TotalFootprint(),
		Trend:          trend,
		CategoryTotals: s.categoryShares(last30, monthly),
		Achievements: []Achievement{
			{Title: "Eco Warrior", Description: "7 days below daily goal", Achieved: ecoWarrior},
			{Title: "Carbon Conscious", Description: "Logged activities for 30 days", Achieved: len(last30) >= TrendWindow},
			{Title: "Trend Setter", Description: "Reduced emissions this month", Achieved: trend.Delta < 0},
		},
	}
}

func sortGroups(groups []entity.DayGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date.After(groups[j].Date)
	})
}
