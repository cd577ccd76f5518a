package dto

import (
	"github.com/carbon-tracker/backend/internal/application/usecase/dashboard"
	"github.com/carbon-tracker/backend/internal/application/usecase/footprint"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// OverviewResponse represents the main dashboard.
type OverviewResponse struct {
	Today          DailySummaryResponse   `json:"today"`
	Week           WeeklySummaryResponse  `json:"week"`
	DailyAverage   float64                `json:"daily_average"`
	WeeklyTarget   float64                `json:"weekly_target"`
	WeeklyProgress float64                `json:"weekly_progress"`
	TotalCO2e      float64                `json:"total_co2e"`
	RecentEntries  []EntryResponse        `json:"recent_entries"`
	Notifications  []NotificationResponse `json:"notifications"`
}

// MonthlyTotalResponse is one month of the comparison.
type MonthlyTotalResponse struct {
	Month     entity.Date `json:"month"`
	Label     string      `json:"label"`
	TotalCO2e float64     `json:"total_co2e"`
	IsLowest  bool        `json:"is_lowest"`
	IsHighest bool        `json:"is_highest"`
}

// MonthlyComparisonResponse compares the last three calendar months.
type MonthlyComparisonResponse struct {
	Months        []MonthlyTotalResponse `json:"months"`
	Notifications []NotificationResponse `json:"notifications"`
}

// AchievementResponse is a badge on the analytics dashboard.
type AchievementResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Achieved    bool   `json:"achieved"`
}

// AnalyticsResponse represents the analytics dashboard.
type AnalyticsResponse struct {
	WeeklyAverage  float64                 `json:"weekly_average"`
	MonthlyTotal   float64                 `json:"monthly_total"`
	TotalCO2e      float64                 `json:"total_co2e"`
	Trend          TrendResponse           `json:"trend"`
	CategoryTotals []CategoryShareResponse `json:"category_totals"`
	Achievements   []AchievementResponse   `json:"achievements"`
	Notifications  []NotificationResponse  `json:"notifications"`
}

// ToOverviewResponse converts the overview.
func ToOverviewResponse(output *dashboard.GetOverviewOutput, notifications []entity.Notification) OverviewResponse {
	return OverviewResponse{
		Today:          ToDailySummaryResponse(output.Today, true),
		Week:           ToWeeklySummaryResponse(output.Week),
		DailyAverage:   Round2(output.DailyAverage),
		WeeklyTarget:   output.WeeklyTarget,
		WeeklyProgress: Round2(output.WeeklyProgress),
		TotalCO2e:      Round2(output.TotalCO2e),
		RecentEntries:  ToEntryResponses(output.RecentEntries),
		Notifications:  ToNotificationResponses(notifications),
	}
}

// ToMonthlyComparisonResponse converts the monthly comparison.
func ToMonthlyComparisonResponse(months []entity.MonthlyTotal, notifications []entity.Notification) MonthlyComparisonResponse {
	out := make([]MonthlyTotalResponse, 0, len(months))
	for _, m := range months {
		out = append(out, MonthlyTotalResponse{
			Month:     m.Month,
			Label:     m.Label,
			TotalCO2e: Round2(m.TotalCO2e),
			IsLowest:  m.IsLowest,
			IsHighest: m.IsHighest,
		})
	}
	return MonthlyComparisonResponse{Months: out, Notifications: ToNotificationResponses(notifications)}
}

// ToAnalyticsResponse converts the analytics dashboard.
func ToAnalyticsResponse(a *footprint.Analytics, notifications []entity.Notification) AnalyticsResponse {
	achievements := make([]AchievementResponse, 0, len(a.Achievements))
	for _, ach := range a.Achievements {
		achievements = append(achievements, AchievementResponse{
			Title:       ach.Title,
			Description: ach.Description,
			Achieved:    ach.Achieved,
		})
	}
	return AnalyticsResponse{
		WeeklyAverage:  Round2(a.WeeklyAverage),
		MonthlyTotal:   Round2(a.MonthlyTotal),
		TotalCO2e:      Round2(a.Total),
		Trend:          ToTrendResponse(a.Trend),
		CategoryTotals: ToCategoryShareResponses(a.CategoryTotals),
		Achievements:   achievements,
		Notifications:  ToNotificationResponses(notifications),
	}
}
