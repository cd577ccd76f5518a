// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// ActivityTypeModel represents the activity_types table in the database.
type ActivityTypeModel struct {
	ID             string    `gorm:"type:varchar(64);primaryKey"`
	Slug           string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Unit           string    `gorm:"type:varchar(20);not null"`
	EmissionFactor float64   `gorm:"not null"`
	Icon           string    `gorm:"type:varchar(50)"`
	Category       string    `gorm:"type:varchar(50);not null;index"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for the ActivityTypeModel.
func (ActivityTypeModel) TableName() string {
	return "activity_types"
}

// ToEntity converts an ActivityTypeModel to a domain ActivityType entity.
func (m *ActivityTypeModel) ToEntity() *entity.ActivityType {
	return &entity.ActivityType{
		ID:             m.ID,
		Slug:           m.Slug,
		Name:           m.Name,
		Unit:           m.Unit,
		EmissionFactor: m.EmissionFactor,
		Icon:           m.Icon,
		Category:       m.Category,
	}
}

// ActivityTypeFromEntity creates an ActivityTypeModel from a domain ActivityType entity.
func ActivityTypeFromEntity(t *entity.ActivityType) *ActivityTypeModel {
	return &ActivityTypeModel{
		ID:             t.ID,
		Slug:           t.Slug,
		Name:           t.Name,
		Unit:           t.Unit,
		EmissionFactor: t.EmissionFactor,
		Icon:           t.Icon,
		Category:       t.Category,
	}
}
