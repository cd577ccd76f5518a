// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account in the Carbon Tracker system.
type User struct {
	ID                 uuid.UUID
	Email              string
	Name               string
	PasswordHash       string
	EmailNotifications bool
	GoalAlerts         bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:                 uuid.New(),
		Email:              email,
		Name:               name,
		PasswordHash:       passwordHash,
		EmailNotifications: true,
		GoalAlerts:         true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Profile holds the public profile details of a user.
type Profile struct {
	UserID      uuid.UUID
	DisplayName string
	AvatarURL   string
	Bio         string
	Location    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfileStats summarizes a user's logging activity.
type ProfileStats struct {
	TotalCO2e       float64
	RecentEntries   int
	AveragePerEntry float64
	Streak          int
}
