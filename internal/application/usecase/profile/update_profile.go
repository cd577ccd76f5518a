package profile

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

const (
	maxDisplayNameLength = 100
	maxAvatarURLLength   = 500
	maxBioLength         = 500
	maxLocationLength    = 100
)

// UpdateProfileInput replaces the public profile fields of a user.
type UpdateProfileInput struct {
	UserID      uuid.UUID
	DisplayName string
	AvatarURL   string
	Bio         string
	Location    string
}

// UpdateProfileUseCase upserts a user's public profile.
type UpdateProfileUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(profileRepo adapter.ProfileRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{profileRepo: profileRepo}
}

// Execute validates and stores the profile.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*entity.Profile, error) {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"display_name", input.DisplayName, maxDisplayNameLength},
		{"avatar_url", input.AvatarURL, maxAvatarURLLength},
		{"bio", input.Bio, maxBioLength},
		{"location", input.Location, maxLocationLength},
	}
	for _, f := range fields {
		if utf8.RuneCountInString(strings.TrimSpace(f.value)) > f.max {
			return nil, domainerror.NewProfileError(
				domainerror.ErrCodeProfileFieldTooLong,
				fmt.Sprintf("%s must be at most %d characters", f.name, f.max),
				domainerror.ErrProfileFieldTooLong,
			)
		}
	}

	existing, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	now := time.Now().UTC()
	profile := &entity.Profile{
		UserID:      input.UserID,
		DisplayName: strings.TrimSpace(input.DisplayName),
		AvatarURL:   strings.TrimSpace(input.AvatarURL),
		Bio:         strings.TrimSpace(input.Bio),
		Location:    strings.TrimSpace(input.Location),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if existing != nil {
		profile.CreatedAt = existing.CreatedAt
	}

	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}
