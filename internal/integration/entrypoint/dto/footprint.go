package dto

import (
	"github.com/carbon-tracker/backend/internal/application/usecase/dashboard"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// DailySummaryResponse represents one day's footprint.
type DailySummaryResponse struct {
	Date             entity.Date            `json:"date"`
	TotalCO2e        float64                `json:"total_co2e"`
	TotalCO2eRounded float64                `json:"total_co2e_rounded"`
	EntryCount       int                    `json:"entry_count"`
	Entries          []EntryResponse        `json:"entries,omitempty"`
	Notifications    []NotificationResponse `json:"notifications,omitempty"`
}

// CategoryShareResponse represents one category's share of a total.
type CategoryShareResponse struct {
	Category   string  `json:"category"`
	CO2e       float64 `json:"co2e"`
	Percentage float64 `json:"percentage"`
}

// WeeklySummaryResponse represents a seven day footprint.
type WeeklySummaryResponse struct {
	StartDate        entity.Date             `json:"start_date"`
	EndDate          entity.Date             `json:"end_date"`
	TotalCO2e        float64                 `json:"total_co2e"`
	TotalCO2eRounded float64                 `json:"total_co2e_rounded"`
	DailyBreakdown   []DailySummaryResponse  `json:"daily_breakdown"`
	TopCategories    []CategoryShareResponse `json:"top_categories"`
	Notifications    []NotificationResponse  `json:"notifications,omitempty"`
}

// EntryListResponse is a plain list of entries with their total.
type EntryListResponse struct {
	StartDate        *entity.Date           `json:"start_date,omitempty"`
	EndDate          *entity.Date           `json:"end_date,omitempty"`
	TotalCO2e        float64                `json:"total_co2e"`
	TotalCO2eRounded float64                `json:"total_co2e_rounded"`
	Entries          []EntryResponse        `json:"entries"`
	Notifications    []NotificationResponse `json:"notifications"`
}

// TotalResponse is the all-time footprint.
type TotalResponse struct {
	TotalCO2e        float64                `json:"total_co2e"`
	TotalCO2eRounded float64                `json:"total_co2e_rounded"`
	EntryCount       int                    `json:"entry_count"`
	Notifications    []NotificationResponse `json:"notifications"`
}

// TrendResponse compares the two halves of the recent entries.
type TrendResponse struct {
	FirstHalfAverage  float64                `json:"first_half_average"`
	SecondHalfAverage float64                `json:"second_half_average"`
	Trend             float64                `json:"trend"`
	TrendRounded      float64                `json:"trend_rounded"`
	Direction         string                 `json:"direction"`
	SampleSize        int                    `json:"sample_size"`
	Approximate       bool                   `json:"approximate"`
	Notifications     []NotificationResponse `json:"notifications,omitempty"`
}

// SeriesPointResponse is one point of a daily series.
type SeriesPointResponse struct {
	Date      entity.Date `json:"date"`
	TotalCO2e float64     `json:"total_co2e"`
}

// SeriesResponse is a zero-filled daily series.
type SeriesResponse struct {
	Points        []SeriesPointResponse  `json:"points"`
	Notifications []NotificationResponse `json:"notifications"`
}

// ToDailySummaryResponse converts a daily summary. Entries are included when withEntries is set.
func ToDailySummaryResponse(s entity.DailySummary, withEntries bool) DailySummaryResponse {
	response := DailySummaryResponse{
		Date:             s.Date,
		TotalCO2e:        s.TotalCO2e,
		TotalCO2eRounded: Round2(s.TotalCO2e),
		EntryCount:       len(s.Entries),
	}
	if withEntries {
		response.Entries = ToEntryResponses(s.Entries)
	}
	return response
}

// ToCategoryShareResponses converts category shares.
func ToCategoryShareResponses(shares []entity.CategoryShare) []CategoryShareResponse {
	out := make([]CategoryShareResponse, 0, len(shares))
	for _, s := range shares {
		out = append(out, CategoryShareResponse{
			Category:   s.Category,
			CO2e:       Round2(s.CO2e),
			Percentage: Round2(s.Percentage),
		})
	}
	return out
}

// ToWeeklySummaryResponse converts a weekly summary.
func ToWeeklySummaryResponse(s entity.WeeklySummary) WeeklySummaryResponse {
	days := make([]DailySummaryResponse, 0, len(s.DailyBreakdown))
	for _, d := range s.DailyBreakdown {
		days = append(days, ToDailySummaryResponse(d, false))
	}
	return WeeklySummaryResponse{
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
		TotalCO2e:        s.TotalCO2e,
		TotalCO2eRounded: Round2(s.TotalCO2e),
		DailyBreakdown:   days,
		TopCategories:    ToCategoryShareResponses(s.TopCategories),
	}
}

// ToRangeResponse converts a range query result.
func ToRangeResponse(output *dashboard.GetEntriesInRangeOutput, notifications []entity.Notification) EntryListResponse {
	start, end := output.StartDate, output.EndDate
	return EntryListResponse{
		StartDate:        &start,
		EndDate:          &end,
		TotalCO2e:        output.TotalCO2e,
		TotalCO2eRounded: Round2(output.TotalCO2e),
		Entries:          ToEntryResponses(output.Entries),
		Notifications:    ToNotificationResponses(notifications),
	}
}

// ToEntryListResponse converts a list of entries.
func ToEntryListResponse(entries []*entity.Entry, notifications []entity.Notification) EntryListResponse {
	total := entity.SumCO2e(entries)
	return EntryListResponse{
		TotalCO2e:        total,
		TotalCO2eRounded: Round2(total),
		Entries:          ToEntryResponses(entries),
		Notifications:    ToNotificationResponses(notifications),
	}
}

// ToTrendResponse converts a trend.
func ToTrendResponse(t entity.Trend) TrendResponse {
	direction := "stable"
	switch {
	case t.Delta < 0:
		direction = "down"
	case t.Delta > 0:
		direction = "up"
	}
	return TrendResponse{
		FirstHalfAverage:  Round2(t.FirstHalfAverage),
		SecondHalfAverage: Round2(t.SecondHalfAverage),
		Trend:             t.Delta,
		TrendRounded:      Round2(t.Delta),
		Direction:         direction,
		SampleSize:        t.SampleSize,
		Approximate:       t.Approximate,
	}
}

// ToSeriesResponse converts a daily series.
func ToSeriesResponse(days []entity.DailySummary, notifications []entity.Notification) SeriesResponse {
	points := make([]SeriesPointResponse, 0, len(days))
	for _, d := range days {
		points = append(points, SeriesPointResponse{Date: d.Date, TotalCO2e: Round2(d.TotalCO2e)})
	}
	return SeriesResponse{Points: points, Notifications: ToNotificationResponses(notifications)}
}
