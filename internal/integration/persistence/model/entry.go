// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// EntryModel represents the entries table in the database.
type EntryModel struct {
	ID             string             `gorm:"type:varchar(64);primaryKey"`
	UserID         uuid.UUID          `gorm:"type:uuid;not null;index:idx_entries_user_created"`
	ActivityTypeID string             `gorm:"type:varchar(64);not null;index"`
	Amount         float64            `gorm:"not null"`
	OccurredOn     entity.Date        `gorm:"type:date;not null;index"`
	CO2e           float64            `gorm:"column:co2e;not null"`
	CreatedAt      time.Time          `gorm:"not null;index:idx_entries_user_created"`
	ActivityType   *ActivityTypeModel `gorm:"foreignKey:ActivityTypeID;references:ID"`
}

// TableName returns the table name for the EntryModel.
func (EntryModel) TableName() string {
	return "entries"
}

// ToEntity converts an EntryModel to a domain Entry entity.
func (m *EntryModel) ToEntity() *entity.Entry {
	e := &entity.Entry{
		ID:             m.ID,
		UserID:         m.UserID.String(),
		ActivityTypeID: m.ActivityTypeID,
		Amount:         m.Amount,
		OccurredOn:     m.OccurredOn,
		CO2e:           m.CO2e,
		CreatedAt:      m.CreatedAt,
	}
	if m.ActivityType != nil {
		e.ActivityType = m.ActivityType.ToEntity()
	}
	return e
}

// EntryFromEntity creates an EntryModel from a domain Entry entity. The
// joined activity type is not copied; it is read back on query.
func EntryFromEntity(e *entity.Entry, userID uuid.UUID) *EntryModel {
	return &EntryModel{
		ID:             e.ID,
		UserID:         userID,
		ActivityTypeID: e.ActivityTypeID,
		Amount:         e.Amount,
		OccurredOn:     e.OccurredOn,
		CO2e:           e.CO2e,
		CreatedAt:      e.CreatedAt,
	}
}
