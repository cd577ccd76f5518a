// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	"github.com/carbon-tracker/backend/internal/integration/persistence/model"
)

// entryRepository implements the adapter.EntryRepository interface.
type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new entry repository instance.
func NewEntryRepository(db *gorm.DB) adapter.EntryRepository {
	return &entryRepository{
		db: db,
	}
}

// FindByUserID returns the user's entries, newest first, with the activity type joined.
func (r *entryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Entry, error) {
	var models []model.EntryModel
	result := r.db.WithContext(ctx).
		Preload("ActivityType").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]*entity.Entry, len(models))
	for i := range models {
		entries[i] = models[i].ToEntity()
	}
	return entries, nil
}

// Create inserts the entry and reads it back with its activity type.
func (r *entryRepository) Create(ctx context.Context, e *entity.Entry) (*entity.Entry, error) {
	userID, err := uuid.Parse(e.UserID)
	if err != nil {
		return nil, err
	}

	m := model.EntryFromEntity(e, userID)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}

	var stored model.EntryModel
	result := r.db.WithContext(ctx).
		Preload("ActivityType").
		Where("id = ?", m.ID).
		First(&stored)
	if result.Error != nil {
		return nil, result.Error
	}
	return stored.ToEntity(), nil
}

// Delete removes an entry owned by userID. Deleting a missing entry is a no-op.
func (r *entryRepository) Delete(ctx context.Context, id string, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.EntryModel{}).Error
}
