// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/shopspring/decimal"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error         string                 `json:"error"`
	Code          string                 `json:"code,omitempty"`
	Details       string                 `json:"details,omitempty"`
	Notifications []NotificationResponse `json:"notifications,omitempty"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message       string                 `json:"message"`
	Notifications []NotificationResponse `json:"notifications"`
}

// NotificationResponse is a user-facing message emitted while handling a request.
type NotificationResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// ToNotificationResponses converts notifications to DTOs. It never returns nil.
func ToNotificationResponses(notifications []entity.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, NotificationResponse{
			Title:       n.Title,
			Description: n.Description,
			Variant:     string(n.Variant),
		})
	}
	return out
}

// Round2 rounds a kg CO2e value to two decimals for display.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
