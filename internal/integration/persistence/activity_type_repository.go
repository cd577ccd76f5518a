// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/persistence/model"
)

// activityTypeRepository implements the adapter.ActivityTypeRepository interface.
type activityTypeRepository struct {
	db *gorm.DB
}

// NewActivityTypeRepository creates a new activity type repository instance.
func NewActivityTypeRepository(db *gorm.DB) adapter.ActivityTypeRepository {
	return &activityTypeRepository{
		db: db,
	}
}

// FindAll returns the whole catalog ordered by name.
func (r *activityTypeRepository) FindAll(ctx context.Context) ([]*entity.ActivityType, error) {
	var models []model.ActivityTypeModel
	result := r.db.WithContext(ctx).Order("name ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	types := make([]*entity.ActivityType, len(models))
	for i, m := range models {
		types[i] = m.ToEntity()
	}
	return types, nil
}

// FindByID retrieves an activity type by its ID.
func (r *activityTypeRepository) FindByID(ctx context.Context, id string) (*entity.ActivityType, error) {
	var m model.ActivityTypeModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrUnknownActivityType
		}
		return nil, result.Error
	}
	return m.ToEntity(), nil
}

// Upsert inserts the activity types, replacing rows with the same ID.
func (r *activityTypeRepository) Upsert(ctx context.Context, types []*entity.ActivityType) error {
	if len(types) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := make([]*model.ActivityTypeModel, len(types))
	for i, t := range types {
		models[i] = model.ActivityTypeFromEntity(t)
		models[i].CreatedAt = now
		models[i].UpdatedAt = now
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"slug", "name", "unit", "emission_factor", "icon", "category", "updated_at"}),
		}).
		Create(&models).Error
}
