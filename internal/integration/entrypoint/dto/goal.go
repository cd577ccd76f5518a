package dto

import (
	"time"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Title         string  `json:"title" binding:"required,max=100"`
	TargetValue   float64 `json:"target_value" binding:"required,gt=0"`
	Period        string  `json:"period,omitempty" binding:"omitempty,oneof=daily weekly monthly"`
	Category      string  `json:"category,omitempty"`
	AlertOnExceed *bool   `json:"alert_on_exceed,omitempty"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Title         *string  `json:"title,omitempty" binding:"omitempty,max=100"`
	TargetValue   *float64 `json:"target_value,omitempty" binding:"omitempty,gt=0"`
	Period        *string  `json:"period,omitempty" binding:"omitempty,oneof=daily weekly monthly"`
	Category      *string  `json:"category,omitempty"`
	AlertOnExceed *bool    `json:"alert_on_exceed,omitempty"`
}

// GoalProgressResponse is a goal measured against its period window.
type GoalProgressResponse struct {
	WindowStart  entity.Date `json:"window_start"`
	WindowEnd    entity.Date `json:"window_end"`
	CurrentValue float64     `json:"current_value"`
	Progress     float64     `json:"progress"`
	Achieved     bool        `json:"achieved"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID            string                `json:"id"`
	UserID        string                `json:"user_id"`
	Title         string                `json:"title"`
	TargetValue   float64               `json:"target_value"`
	Period        string                `json:"period"`
	Category      string                `json:"category,omitempty"`
	AlertOnExceed bool                  `json:"alert_on_exceed"`
	Progress      *GoalProgressResponse `json:"progress,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	return GoalResponse{
		ID:            g.ID.String(),
		UserID:        g.UserID.String(),
		Title:         g.Title,
		TargetValue:   g.TargetValue,
		Period:        string(g.Period),
		Category:      g.Category,
		AlertOnExceed: g.AlertOnExceed,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// ToGoalProgressResponse converts a goal with its progress.
func ToGoalProgressResponse(p *entity.GoalProgress) GoalResponse {
	response := ToGoalResponse(p.Goal)
	response.Progress = &GoalProgressResponse{
		WindowStart:  p.WindowStart,
		WindowEnd:    p.WindowEnd,
		CurrentValue: Round2(p.CurrentValue),
		Progress:     Round2(p.Progress),
		Achieved:     p.Achieved,
	}
	return response
}

// ToGoalListResponse converts goals with progress to the list DTO.
func ToGoalListResponse(goals []*entity.GoalProgress) GoalListResponse {
	out := make([]GoalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, ToGoalProgressResponse(g))
	}
	return GoalListResponse{Goals: out}
}
