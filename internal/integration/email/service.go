// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: strings.TrimSuffix(appBaseURL, "/"),
	}
}

// QueueWelcomeEmail queues the email sent after sign-up.
func (s *Service) QueueWelcomeEmail(ctx context.Context, input adapter.QueueWelcomeInput) error {
	job := entity.NewEmailJob(
		entity.TemplateWelcome,
		input.UserEmail,
		input.UserName,
		"Welcome to Carbon Tracker",
		map[string]interface{}{
			"user_name":     input.UserName,
			"dashboard_url": s.appBaseURL + "/dashboard",
		},
	).WithDedupKey("welcome:" + strings.ToLower(input.UserEmail))

	return s.enqueue(ctx, job, "failed to queue welcome email")
}

// QueueGoalExceededEmail queues a goal alert.
func (s *Service) QueueGoalExceededEmail(ctx context.Context, input adapter.QueueGoalExceededInput) error {
	job := entity.NewEmailJob(
		entity.TemplateGoalExceeded,
		input.UserEmail,
		input.UserName,
		fmt.Sprintf("You went over your goal: %s", input.GoalTitle),
		map[string]interface{}{
			"user_name":     input.UserName,
			"goal_title":    input.GoalTitle,
			"period":        input.Period,
			"target_value":  fmt.Sprintf("%.2f", input.TargetValue),
			"current_value": fmt.Sprintf("%.2f", input.CurrentValue),
			"goals_url":     s.appBaseURL + "/goals",
		},
	)
	if input.GoalID != uuid.Nil {
		job.WithDedupKey(fmt.Sprintf("goal_exceeded:%s:%s", input.GoalID, input.WindowStart))
	}

	return s.enqueue(ctx, job, "failed to queue goal alert email")
}

func (s *Service) enqueue(ctx context.Context, job *entity.EmailJob, failure string) error {
	created, err := s.queue.Enqueue(ctx, job)
	if err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, failure, err)
	}
	if !created {
		slog.Debug("Email already queued", "dedup_key", job.DedupKey)
	}
	return nil
}

var _ adapter.EmailService = (*Service)(nil)
