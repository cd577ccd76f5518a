// Package model defines database models for persistence layer.
package model

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// EmailQueueModel represents the email_queue table in the database.
type EmailQueueModel struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TemplateType      string         `gorm:"type:varchar(50);not null"`
	RecipientEmail    string         `gorm:"type:varchar(255);not null"`
	RecipientName     string         `gorm:"type:varchar(255)"`
	Subject           string         `gorm:"type:varchar(500);not null"`
	TemplateData      string         `gorm:"type:jsonb;not null;default:'{}'"`
	Status            string         `gorm:"type:varchar(20);not null;default:'pending'"`
	Attempts          int            `gorm:"not null;default:0"`
	MaxAttempts       int            `gorm:"not null;default:3"`
	LastError         string         `gorm:"type:text"`
	ProviderMessageID string         `gorm:"column:resend_id;type:varchar(100)"`
	DedupKey          sql.NullString `gorm:"type:varchar(200);uniqueIndex"`
	CreatedAt         time.Time      `gorm:"not null"`
	ScheduledAt       time.Time      `gorm:"not null;index"`
	ClaimedAt         sql.NullTime   `gorm:"type:timestamptz"`
	ProcessedAt       sql.NullTime   `gorm:"type:timestamptz"`
}

// TableName returns the table name for the EmailQueueModel.
func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity converts an EmailQueueModel to a domain EmailJob entity.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	var templateData map[string]interface{}
	if m.TemplateData != "" {
		if err := json.Unmarshal([]byte(m.TemplateData), &templateData); err != nil {
			slog.Warn("Failed to unmarshal email template data", "error", err, "id", m.ID)
		}
	}
	if templateData == nil {
		templateData = make(map[string]interface{})
	}

	var processedAt, claimedAt *time.Time
	if m.ProcessedAt.Valid {
		processedAt = &m.ProcessedAt.Time
	}
	if m.ClaimedAt.Valid {
		claimedAt = &m.ClaimedAt.Time
	}

	return &entity.EmailJob{
		ID:                m.ID,
		TemplateType:      entity.EmailTemplateType(m.TemplateType),
		RecipientEmail:    m.RecipientEmail,
		RecipientName:     m.RecipientName,
		Subject:           m.Subject,
		TemplateData:      templateData,
		Status:            entity.EmailStatus(m.Status),
		Attempts:          m.Attempts,
		MaxAttempts:       m.MaxAttempts,
		LastError:         m.LastError,
		ProviderMessageID: m.ProviderMessageID,
		DedupKey:          m.DedupKey.String,
		CreatedAt:         m.CreatedAt,
		ScheduledAt:       m.ScheduledAt,
		ClaimedAt:         claimedAt,
		ProcessedAt:       processedAt,
	}
}

// EmailQueueModelFromEntity creates an EmailQueueModel from a domain EmailJob entity.
func EmailQueueModelFromEntity(job *entity.EmailJob) *EmailQueueModel {
	templateDataJSON, err := json.Marshal(job.TemplateData)
	if err != nil {
		slog.Error("Failed to marshal email template data", "error", err, "job_id", job.ID)
		templateDataJSON = []byte("{}")
	}

	var processedAt, claimedAt sql.NullTime
	if job.ProcessedAt != nil {
		processedAt = sql.NullTime{Time: *job.ProcessedAt, Valid: true}
	}
	if job.ClaimedAt != nil {
		claimedAt = sql.NullTime{Time: *job.ClaimedAt, Valid: true}
	}

	return &EmailQueueModel{
		ID:                job.ID,
		TemplateType:      string(job.TemplateType),
		RecipientEmail:    job.RecipientEmail,
		RecipientName:     job.RecipientName,
		Subject:           job.Subject,
		TemplateData:      string(templateDataJSON),
		Status:            string(job.Status),
		Attempts:          job.Attempts,
		MaxAttempts:       job.MaxAttempts,
		LastError:         job.LastError,
		ProviderMessageID: job.ProviderMessageID,
		DedupKey:          sql.NullString{String: job.DedupKey, Valid: job.DedupKey != ""},
		CreatedAt:         job.CreatedAt,
		ScheduledAt:       job.ScheduledAt,
		ClaimedAt:         claimedAt,
		ProcessedAt:       processedAt,
	}
}
