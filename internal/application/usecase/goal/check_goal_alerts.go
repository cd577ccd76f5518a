package goal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/application/usecase/entry"
	"github.com/carbon-tracker/backend/internal/application/usecase/footprint"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

const alertTimeout = 10 * time.Second

// CheckGoalAlertsInput describes an entry that was just added.
type CheckGoalAlertsInput struct {
	UserID  uuid.UUID
	Entry   *entity.Entry
	Entries []*entity.Entry // every entry of the user, including Entry
}

// CheckGoalAlertsOutput lists the goals an alert was queued for.
type CheckGoalAlertsOutput struct {
	Exceeded []*entity.GoalProgress
}

// CheckGoalAlertsUseCase queues an email for every alerting goal that a new
// entry pushed over its target.
type CheckGoalAlertsUseCase struct {
	goalRepo     adapter.GoalRepository
	userRepo     adapter.UserRepository
	emailService adapter.EmailService
	now          func() time.Time
}

// NewCheckGoalAlertsUseCase creates a new CheckGoalAlertsUseCase instance.
func NewCheckGoalAlertsUseCase(
	goalRepo adapter.GoalRepository,
	userRepo adapter.UserRepository,
	emailService adapter.EmailService,
	now func() time.Time,
) *CheckGoalAlertsUseCase {
	if now == nil {
		now = time.Now
	}
	return &CheckGoalAlertsUseCase{
		goalRepo:     goalRepo,
		userRepo:     userRepo,
		emailService: emailService,
		now:          now,
	}
}

// Execute evaluates the user's alerting goals against the new entry.
func (uc *CheckGoalAlertsUseCase) Execute(ctx context.Context, input CheckGoalAlertsInput) (*CheckGoalAlertsOutput, error) {
	output := &CheckGoalAlertsOutput{}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.GoalAlerts || !user.EmailNotifications {
		return output, nil
	}

	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	snap := footprint.NewSnapshot(input.Entries, nil)
	today := entity.DateOf(uc.now().UTC())
	category := snap.CategoryOf(input.Entry)

	for _, g := range goals {
		if !g.AlertOnExceed {
			continue
		}
		if g.Category != "" && g.Category != category {
			continue
		}
		if !input.Entry.OccurredOn.Between(windowStart(g.Period, today), today) {
			continue
		}

		progress := evaluate(snap, g, today)
		before := progress.CurrentValue - input.Entry.CO2e
		if progress.Achieved || before > g.TargetValue {
			continue
		}

		err := uc.emailService.QueueGoalExceededEmail(ctx, adapter.QueueGoalExceededInput{
			GoalID:       g.ID,
			WindowStart:  progress.WindowStart.String(),
			UserEmail:    user.Email,
			UserName:     user.Name,
			GoalTitle:    g.Title,
			Period:       string(g.Period),
			TargetValue:  g.TargetValue,
			CurrentValue: progress.CurrentValue,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to queue goal alert: %w", err)
		}
		output.Exceeded = append(output.Exceeded, progress)
	}

	return output, nil
}

// Observer returns an entry store observer that checks alerts after every
// entry added by a signed-in user.
func (uc *CheckGoalAlertsUseCase) Observer() func(entry.Change) {
	return func(c entry.Change) {
		if c.Kind != entry.ChangeAdded || !c.Identity.IsAuthenticated() || c.Entry == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), alertTimeout)
		defer cancel()

		out, err := uc.Execute(ctx, CheckGoalAlertsInput{
			UserID:  c.Identity.UserID,
			Entry:   c.Entry,
			Entries: c.Entries,
		})
		if err != nil {
			slog.Error("Goal alert check failed", "user_id", c.Identity.UserID, "error", err)
			return
		}
		if len(out.Exceeded) > 0 {
			slog.Info("Goal alerts queued", "user_id", c.Identity.UserID, "count", len(out.Exceeded))
		}
	}
}
