package dto

import (
	"time"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// CreateEntryRequest represents the request body for logging an activity.
// Field checks happen in the entry store so that missing fields produce the
// same notifications as any other client.
type CreateEntryRequest struct {
	ActivityTypeID string  `json:"activity_type_id"`
	Amount         float64 `json:"amount"`
	OccurredOn     string  `json:"occurred_on"` // YYYY-MM-DD
}

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID             string                `json:"id"`
	UserID         string                `json:"user_id"`
	ActivityTypeID string                `json:"activity_type_id"`
	ActivityType   *ActivityTypeResponse `json:"activity_type,omitempty"`
	Amount         float64               `json:"amount"`
	OccurredOn     entity.Date           `json:"occurred_on"`
	CO2e           float64               `json:"co2e"`
	CO2eRounded    float64               `json:"co2e_rounded"`
	CreatedAt      time.Time             `json:"created_at"`
}

// EntryMutationResponse is returned after an entry is added.
type EntryMutationResponse struct {
	Entry         EntryResponse          `json:"entry"`
	Notifications []NotificationResponse `json:"notifications"`
}

// DayGroupResponse groups the entries of one day.
type DayGroupResponse struct {
	Date            entity.Date     `json:"date"`
	DayTotal        float64         `json:"day_total"`
	DayTotalRounded float64         `json:"day_total_rounded"`
	Entries         []EntryResponse `json:"entries"`
}

// EntryHistoryResponse is the activity history grouped by day.
type EntryHistoryResponse struct {
	Days          []DayGroupResponse     `json:"days"`
	EntryCount    int                    `json:"entry_count"`
	Notifications []NotificationResponse `json:"notifications"`
}

// ToEntryResponse converts an Entry to its DTO.
func ToEntryResponse(e *entity.Entry) EntryResponse {
	response := EntryResponse{
		ID:             e.ID,
		UserID:         e.UserID,
		ActivityTypeID: e.ActivityTypeID,
		Amount:         e.Amount,
		OccurredOn:     e.OccurredOn,
		CO2e:           e.CO2e,
		CO2eRounded:    Round2(e.CO2e),
		CreatedAt:      e.CreatedAt,
	}
	if e.ActivityType != nil {
		t := ToActivityTypeResponse(e.ActivityType)
		response.ActivityType = &t
	}
	return response
}

// ToEntryResponses converts a list of entries. It never returns nil.
func ToEntryResponses(entries []*entity.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToEntryResponse(e))
	}
	return out
}

// ToEntryHistoryResponse converts day groups to the history DTO.
func ToEntryHistoryResponse(groups []entity.DayGroup, notifications []entity.Notification) EntryHistoryResponse {
	days := make([]DayGroupResponse, 0, len(groups))
	count := 0
	for _, g := range groups {
		days = append(days, DayGroupResponse{
			Date:            g.Date,
			DayTotal:        g.DayTotal,
			DayTotalRounded: Round2(g.DayTotal),
			Entries:         ToEntryResponses(g.Entries),
		})
		count += len(g.Entries)
	}
	return EntryHistoryResponse{
		Days:          days,
		EntryCount:    count,
		Notifications: ToNotificationResponses(notifications),
	}
}
