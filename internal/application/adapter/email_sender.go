// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	MessageID string
}

// EmailSender delivers a rendered email through an external provider.
type EmailSender interface {
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService queues notification emails for asynchronous delivery.
type EmailService interface {
	QueueWelcomeEmail(ctx context.Context, input QueueWelcomeInput) error
	QueueGoalExceededEmail(ctx context.Context, input QueueGoalExceededInput) error
}

// QueueWelcomeInput is the data of the welcome email sent after sign-up.
type QueueWelcomeInput struct {
	UserEmail string
	UserName  string
}

// QueueGoalExceededInput is the data of a goal alert email. At most one alert
// is queued per goal and window.
type QueueGoalExceededInput struct {
	GoalID       uuid.UUID
	WindowStart  string
	UserEmail    string
	UserName     string
	GoalTitle    string
	Period       string
	TargetValue  float64
	CurrentValue float64
}
