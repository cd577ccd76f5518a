// Package email provides email sending functionality.
package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/email/templates"
	"github.com/carbon-tracker/backend/internal/integration/observability"
)

// Worker claims due jobs from the queue, renders them and hands them to the sender.
type Worker struct {
	queue    adapter.EmailQueueRepository
	sender   adapter.EmailSender
	renderer *templates.Renderer
	config   WorkerConfig
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// StaleAfter is how long a claimed job may stay in processing before it
	// is handed out again.
	StaleAfter time.Duration
	Now        func() time.Time
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
		StaleAfter:   10 * time.Minute,
		Now:          time.Now,
	}
}

// NewWorker creates a new email worker.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Worker{
		queue:    queue,
		sender:   sender,
		renderer: renderer,
		config:   config,
	}
}

// Start runs the poll loop until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"poll_interval", w.config.PollInterval,
		"batch_size", w.config.BatchSize,
	)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	w.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// ProcessNow runs one poll cycle immediately.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.tick(ctx)
}

func (w *Worker) tick(ctx context.Context) {
	now := w.config.Now().UTC()

	if w.config.StaleAfter > 0 {
		requeued, err := w.queue.RequeueStale(ctx, now.Add(-w.config.StaleAfter))
		if err != nil {
			slog.Error("Failed to requeue stale email jobs", "error", err)
		} else if requeued > 0 {
			slog.Warn("Requeued stale email jobs", "count", requeued)
		}
	}

	jobs, err := w.queue.Claim(ctx, now, w.config.BatchSize)
	if err != nil {
		slog.Error("Failed to claim email jobs", "error", err)
	}
	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		w.deliver(ctx, job)
	}
}

func (w *Worker) deliver(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With(
		"job_id", job.ID,
		"template", job.TemplateType,
		"attempt", job.Attempts+1,
	)

	html, text, err := w.render(job)
	if err != nil {
		logger.Error("Failed to render email template", "error", err)
		w.fail(ctx, logger, job, err, true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		var emailErr *domainerror.EmailError
		permanent := errors.As(err, &emailErr) && emailErr.Code == domainerror.ErrCodePermanentEmailFailure
		logger.Error("Failed to send email", "error", err, "permanent", permanent)
		w.fail(ctx, logger, job, err, permanent)
		return
	}

	job.MarkSent(result.MessageID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as sent", "error", err)
		return
	}
	observability.RecordEmail(string(job.TemplateType), "sent")
	logger.Info("Email sent", "message_id", result.MessageID)
}

func (w *Worker) render(job *entity.EmailJob) (string, string, error) {
	var data interface{}
	switch job.TemplateType {
	case entity.TemplateWelcome:
		data = templates.WelcomeData{
			UserName:     job.TemplateString("user_name"),
			DashboardURL: job.TemplateString("dashboard_url"),
		}
	case entity.TemplateGoalExceeded:
		data = templates.GoalExceededData{
			UserName:     job.TemplateString("user_name"),
			GoalTitle:    job.TemplateString("goal_title"),
			Period:       job.TemplateString("period"),
			TargetValue:  job.TemplateString("target_value"),
			CurrentValue: job.TemplateString("current_value"),
			GoalsURL:     job.TemplateString("goals_url"),
		}
	default:
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeUnknownTemplate,
			"unknown template type",
			domainerror.ErrUnknownTemplate,
		)
	}
	return w.renderer.Render(string(job.TemplateType), data)
}

func (w *Worker) fail(ctx context.Context, logger *slog.Logger, job *entity.EmailJob, err error, permanent bool) {
	job.MarkFailed(err, permanent)
	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		logger.Error("Failed to update job after failure", "error", updateErr)
	}

	if job.Status == entity.EmailStatusFailed {
		observability.RecordEmail(string(job.TemplateType), "failed")
		logger.Warn("Email job gave up", "attempts", job.Attempts, "last_error", job.LastError)
		return
	}
	observability.RecordEmail(string(job.TemplateType), "retry")
	logger.Info("Email job scheduled for retry", "scheduled_at", job.ScheduledAt)
}
