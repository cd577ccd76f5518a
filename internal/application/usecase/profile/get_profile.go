// Package profile contains the user profile use cases.
package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/application/usecase/footprint"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// GetProfileInput represents the input for reading a profile.
type GetProfileInput struct {
	UserID uuid.UUID
}

// GetProfileOutput is the profile page: account, public profile and stats.
type GetProfileOutput struct {
	User    *entity.User
	Profile *entity.Profile
	Stats   entity.ProfileStats
}

// GetProfileUseCase reads the profile page of a user.
type GetProfileUseCase struct {
	userRepo         adapter.UserRepository
	profileRepo      adapter.ProfileRepository
	entryRepo        adapter.EntryRepository
	activityTypeRepo adapter.ActivityTypeRepository
	now              func() time.Time
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(
	userRepo adapter.UserRepository,
	profileRepo adapter.ProfileRepository,
	entryRepo adapter.EntryRepository,
	activityTypeRepo adapter.ActivityTypeRepository,
	now func() time.Time,
) *GetProfileUseCase {
	if now == nil {
		now = time.Now
	}
	return &GetProfileUseCase{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		entryRepo:        entryRepo,
		activityTypeRepo: activityTypeRepo,
		now:              now,
	}
}

// Execute loads the profile. A user who never saved a profile gets one
// derived from the account, joined on the account creation date.
func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", err)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	profile, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	if profile == nil {
		profile = &entity.Profile{
			UserID:      user.ID,
			DisplayName: user.Name,
			CreatedAt:   user.CreatedAt,
			UpdatedAt:   user.UpdatedAt,
		}
	}

	entries, err := uc.entryRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	types, err := uc.activityTypeRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity types: %w", err)
	}

	snap := footprint.NewSnapshot(entries, types)
	return &GetProfileOutput{
		User:    user,
		Profile: profile,
		Stats:   Stats(snap, entity.DateOf(uc.now().UTC())),
	}, nil
}

// Stats computes the profile statistics over the most recent entries.
func Stats(snap footprint.Snapshot, today entity.Date) entity.ProfileStats {
	recent := snap.RecentEntries(footprint.StreakWindow)

	stats := entity.ProfileStats{
		TotalCO2e:     snap.TotalFootprint(),
		RecentEntries: len(recent),
		Streak:        snap.Streak(today),
	}
	if len(recent) > 0 {
		stats.AveragePerEntry = entity.SumCO2e(recent) / float64(len(recent))
	}
	return stats
}
