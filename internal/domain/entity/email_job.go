// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus represents the delivery state of a queued notification email.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names the template an email is rendered from.
type EmailTemplateType string

const (
	TemplateWelcome      EmailTemplateType = "welcome"
	TemplateGoalExceeded EmailTemplateType = "goal_exceeded"
)

// emailRetryDelays is the wait before each retry, indexed by attempts made.
var emailRetryDelays = []time.Duration{0, time.Minute, 5 * time.Minute}

// EmailJob is an email waiting in the outgoing queue.
type EmailJob struct {
	ID                uuid.UUID
	TemplateType      EmailTemplateType
	RecipientEmail    string
	RecipientName     string
	Subject           string
	TemplateData      map[string]interface{}
	Status            EmailStatus
	Attempts          int
	MaxAttempts       int
	LastError         string
	ProviderMessageID string
	DedupKey          string // empty means never deduplicated
	CreatedAt         time.Time
	ScheduledAt       time.Time
	ClaimedAt         *time.Time
	ProcessedAt       *time.Time
}

// NewEmailJob creates a pending job that is ready to send immediately.
func NewEmailJob(templateType EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]interface{}) *EmailJob {
	now := time.Now().UTC()
	return &EmailJob{
		ID:             uuid.New(),
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    len(emailRetryDelays),
		CreatedAt:      now,
		ScheduledAt:    now,
	}
}

// WithDedupKey sets the key that keeps a second copy of this email out of the queue.
func (e *EmailJob) WithDedupKey(key string) *EmailJob {
	e.DedupKey = key
	return e
}

// MarkProcessing flags the job as claimed by a worker at the given time.
func (e *EmailJob) MarkProcessing(at time.Time) {
	e.Status = EmailStatusProcessing
	e.ClaimedAt = &at
}

// IsDue reports whether a pending job may be sent at now.
func (e *EmailJob) IsDue(now time.Time) bool {
	return e.Status == EmailStatusPending && !e.ScheduledAt.After(now)
}

// MarkSent records a successful delivery.
func (e *EmailJob) MarkSent(providerMessageID string) {
	now := time.Now().UTC()
	e.Status = EmailStatusSent
	e.ProviderMessageID = providerMessageID
	e.ProcessedAt = &now
}

// MarkFailed records a failed attempt. The job is rescheduled unless the
// failure is permanent or the attempts are exhausted.
func (e *EmailJob) MarkFailed(err error, permanent bool) {
	now := time.Now().UTC()
	e.Attempts++
	e.LastError = err.Error()

	if permanent || !e.CanRetry() {
		e.Status = EmailStatusFailed
		e.ProcessedAt = &now
		return
	}

	delay := emailRetryDelays[len(emailRetryDelays)-1]
	if e.Attempts < len(emailRetryDelays) {
		delay = emailRetryDelays[e.Attempts]
	}
	e.Status = EmailStatusPending
	e.ClaimedAt = nil
	e.ScheduledAt = now.Add(delay)
}

// CanRetry reports whether another attempt is allowed.
func (e *EmailJob) CanRetry() bool {
	return e.Attempts < e.MaxAttempts
}

// TemplateString reads a string value from the template data.
func (e *EmailJob) TemplateString(key string) string {
	if v, ok := e.TemplateData[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
