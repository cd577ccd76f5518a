package dto

import (
	"time"

	"github.com/carbon-tracker/backend/internal/application/usecase/profile"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// UpdateProfileRequest represents the request body for a profile update.
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
}

// ProfileStatsResponse summarizes a user's logging activity.
type ProfileStatsResponse struct {
	TotalCO2e       float64 `json:"total_co2e"`
	RecentEntries   int     `json:"recent_entries"`
	AveragePerEntry float64 `json:"average_per_entry"`
	Streak          int     `json:"streak"`
}

// ProfileResponse represents the profile page.
type ProfileResponse struct {
	User        *UserResponse         `json:"user,omitempty"`
	DisplayName string                `json:"display_name"`
	AvatarURL   string                `json:"avatar_url"`
	Bio         string                `json:"bio"`
	Location    string                `json:"location"`
	JoinedAt    time.Time             `json:"joined_at"`
	Stats       *ProfileStatsResponse `json:"stats,omitempty"`
}

// ToProfileResponse converts the profile page.
func ToProfileResponse(output *profile.GetProfileOutput) ProfileResponse {
	response := toProfileFields(output.Profile)
	user := ToUserResponse(output.User)
	response.User = &user
	response.JoinedAt = output.User.CreatedAt
	response.Stats = &ProfileStatsResponse{
		TotalCO2e:       Round2(output.Stats.TotalCO2e),
		RecentEntries:   output.Stats.RecentEntries,
		AveragePerEntry: Round2(output.Stats.AveragePerEntry),
		Streak:          output.Stats.Streak,
	}
	return response
}

// ToUpdatedProfileResponse converts a saved profile.
func ToUpdatedProfileResponse(p *entity.Profile) ProfileResponse {
	response := toProfileFields(p)
	response.JoinedAt = p.CreatedAt
	return response
}

func toProfileFields(p *entity.Profile) ProfileResponse {
	return ProfileResponse{
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		Bio:         p.Bio,
		Location:    p.Location,
	}
}
