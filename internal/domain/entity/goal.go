// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// GoalPeriod represents the period a carbon goal is measured over.
type GoalPeriod string

const (
	GoalPeriodDaily   GoalPeriod = "daily"
	GoalPeriodWeekly  GoalPeriod = "weekly"
	GoalPeriodMonthly GoalPeriod = "monthly"
)

// Days returns the length of the period window ending today.
func (p GoalPeriod) Days() int {
	switch p {
	case GoalPeriodWeekly:
		return 7
	case GoalPeriodMonthly:
		return 30
	default:
		return 1
	}
}

// IsValid reports whether p is a known period.
func (p GoalPeriod) IsValid() bool {
	return p == GoalPeriodDaily || p == GoalPeriodWeekly || p == GoalPeriodMonthly
}

// Goal is an emission ceiling a user wants to stay under for a period.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Title         string
	TargetValue   float64 // kg CO2e
	Period        GoalPeriod
	Category      string // Optional, empty means all categories
	AlertOnExceed bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewGoal creates a new Goal entity.
func NewGoal(userID uuid.UUID, title string, targetValue float64, period GoalPeriod, category string, alertOnExceed bool) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         title,
		TargetValue:   targetValue,
		Period:        period,
		Category:      category,
		AlertOnExceed: alertOnExceed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// DefaultGoals returns the goals every new account starts with.
func DefaultGoals(userID uuid.UUID) []*Goal {
	return []*Goal{
		NewGoal(userID, "Daily Carbon Limit", 6.85, GoalPeriodDaily, "", true),
		NewGoal(userID, "Weekly Target", 48, GoalPeriodWeekly, "", true),
		NewGoal(userID, "Monthly Eco Goal", 200, GoalPeriodMonthly, "", true),
	}
}

// GoalProgress is a goal evaluated against the entries of its period window.
type GoalProgress struct {
	Goal         *Goal
	WindowStart  Date
	WindowEnd    Date
	CurrentValue float64
	Progress     float64 // percentage of target, capped at 100
	Achieved     bool
}

// EvaluateGoal computes the progress of a goal given the emissions in its window.
func EvaluateGoal(goal *Goal, windowStart, windowEnd Date, current float64) *GoalProgress {
	progress := 0.0
	if goal.TargetValue > 0 {
		progress = current / goal.TargetValue * 100
	}
	if progress > 100 {
		progress = 100
	}

	return &GoalProgress{
		Goal:         goal,
		WindowStart:  windowStart,
		WindowEnd:    windowEnd,
		CurrentValue: current,
		Progress:     progress,
		Achieved:     current <= goal.TargetValue,
	}
}
