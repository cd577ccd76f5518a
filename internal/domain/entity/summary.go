// Package entity defines the core business entities for the domain layer.
package entity

// DailySummary is the derived total for one calendar day.
type DailySummary struct {
	Date      Date
	TotalCO2e float64
	Entries   []*Entry
}

// CategoryShare is one category's part of a period total.
type CategoryShare struct {
	Category   string
	CO2e       float64
	Percentage float64
}

// WeeklySummary is the derived total for a seven day window [StartDate, EndDate].
type WeeklySummary struct {
	StartDate      Date
	EndDate        Date
	TotalCO2e      float64
	DailyBreakdown []DailySummary
	TopCategories  []CategoryShare
}

// Trend compares the average emissions of two positional halves of the most
// recent entries. A negative value means emissions went down.
type Trend struct {
	FirstHalfAverage  float64
	SecondHalfAverage float64
	Delta             float64
	SampleSize        int
	Approximate       bool // fewer entries than a full window
}

// MonthlyTotal is the emissions total for one calendar month.
type MonthlyTotal struct {
	Month     Date // first day of the month
	Label     string
	TotalCO2e float64
	IsLowest  bool
	IsHighest bool
}

// DayGroup groups entries logged for the same day, newest first.
type DayGroup struct {
	Date     Date
	DayTotal float64
	Entries  []*Entry
}
