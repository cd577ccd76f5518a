// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	"github.com/carbon-tracker/backend/internal/integration/persistence/model"
)

type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email queue repository instance.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{db: db}
}

// Enqueue inserts the job unless another job already holds its dedup key.
func (r *emailQueueRepository) Enqueue(ctx context.Context, job *entity.EmailJob) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if job.DedupKey != "" {
			var count int64
			if err := tx.Model(&model.EmailQueueModel{}).
				Where("dedup_key = ?", job.DedupKey).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return nil
			}
		}
		if err := tx.Create(model.EmailQueueModelFromEntity(job)).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// Claim flips due jobs to processing one row at a time. The status guard on
// the update makes a row claimable by a single worker even when several
// instances poll the same queue.
func (r *emailQueueRepository) Claim(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var candidates []model.EmailQueueModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", entity.EmailStatusPending, now).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	claimed := make([]*entity.EmailJob, 0, len(candidates))
	for _, c := range candidates {
		result := r.db.WithContext(ctx).
			Model(&model.EmailQueueModel{}).
			Where("id = ? AND status = ?", c.ID, entity.EmailStatusPending).
			Updates(map[string]interface{}{
				"status":     entity.EmailStatusProcessing,
				"claimed_at": now,
			})
		if result.Error != nil {
			return claimed, result.Error
		}
		if result.RowsAffected == 0 {
			continue
		}
		job := c.ToEntity()
		job.MarkProcessing(now)
		claimed = append(claimed, job)
	}
	return claimed, nil
}

func (r *emailQueueRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	return r.db.WithContext(ctx).Save(model.EmailQueueModelFromEntity(job)).Error
}

func (r *emailQueueRepository) RequeueStale(ctx context.Context, claimedBefore time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.EmailQueueModel{}).
		Where("status = ? AND claimed_at < ?", entity.EmailStatusProcessing, claimedBefore).
		Updates(map[string]interface{}{
			"status":     entity.EmailStatusPending,
			"claimed_at": nil,
		})
	return result.RowsAffected, result.Error
}

func (r *emailQueueRepository) FindByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error) {
	var models []model.EmailQueueModel
	if err := r.db.WithContext(ctx).
		Where("recipient_email = ?", email).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	jobs := make([]*entity.EmailJob, len(models))
	for i := range models {
		jobs[i] = models[i].ToEntity()
	}
	return jobs, nil
}
