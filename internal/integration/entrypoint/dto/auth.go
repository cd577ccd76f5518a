package dto

import (
	"time"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"max=100"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the request body for signing out. The refresh
// token is only needed by authenticated sessions.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse represents the response for authentication endpoints.
type AuthResponse struct {
	AccessToken   string                 `json:"access_token"`
	RefreshToken  string                 `json:"refresh_token"`
	User          UserResponse           `json:"user"`
	Notifications []NotificationResponse `json:"notifications"`
}

// TokenResponse represents the response for token refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	EmailNotifications bool      `json:"email_notifications"`
	GoalAlerts         bool      `json:"goal_alerts"`
	CreatedAt          time.Time `json:"created_at"`
}

// SessionResponse describes the identity behind a request.
type SessionResponse struct {
	Kind           string `json:"kind"`
	UserID         string `json:"user_id,omitempty"`
	Email          string `json:"email,omitempty"`
	GuestSessionID string `json:"guest_session_id,omitempty"`
}

// GuestSessionResponse is returned when a guest session starts.
type GuestSessionResponse struct {
	GuestSessionID string                 `json:"guest_session_id"`
	Session        SessionResponse        `json:"session"`
	Notifications  []NotificationResponse `json:"notifications"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:                 user.ID.String(),
		Email:              user.Email,
		Name:               user.Name,
		EmailNotifications: user.EmailNotifications,
		GoalAlerts:         user.GoalAlerts,
		CreatedAt:          user.CreatedAt,
	}
}

// ToSessionResponse converts an identity to a SessionResponse DTO.
func ToSessionResponse(identity entity.Identity) SessionResponse {
	response := SessionResponse{Kind: string(identity.Kind)}
	if identity.Kind == "" {
		response.Kind = string(entity.IdentityAnonymous)
	}
	switch {
	case identity.IsAuthenticated():
		response.UserID = identity.UserID.String()
		response.Email = identity.Email
	case identity.IsGuest():
		response.GuestSessionID = identity.GuestSessionID
	}
	return response
}
