// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// EmailQueueRepository is the outgoing email queue shared by every API instance.
type EmailQueueRepository interface {
	// Enqueue stores a new job. It reports false, without error, when a job
	// with the same dedup key is already in the queue.
	Enqueue(ctx context.Context, job *entity.EmailJob) (bool, error)

	// Claim moves up to limit due jobs from pending to processing and returns
	// them. A job is handed to exactly one caller.
	Claim(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	// Update saves the outcome of a delivery attempt.
	Update(ctx context.Context, job *entity.EmailJob) error

	// RequeueStale returns jobs claimed before the cutoff to pending.
	RequeueStale(ctx context.Context, claimedBefore time.Time) (int64, error)

	FindByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error)
}
