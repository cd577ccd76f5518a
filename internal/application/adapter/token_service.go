// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPair represents an access and refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// TokenClaims represents the claims contained in a JWT token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// RefreshTokenState is the server-side state of an issued refresh token.
type RefreshTokenState string

const (
	RefreshTokenActive  RefreshTokenState = "active"
	RefreshTokenRevoked RefreshTokenState = "revoked"
	RefreshTokenExpired RefreshTokenState = "expired"
	RefreshTokenUnknown RefreshTokenState = "unknown"
)

// TokenService issues and checks the remote session tokens.
type TokenService interface {
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string) (*TokenPair, error)
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	// InvalidateRefreshToken revokes a refresh token. Revoking twice is not an error.
	InvalidateRefreshToken(ctx context.Context, token string) error

	// RevokeUserSessions revokes every refresh token issued to the user.
	RevokeUserSessions(ctx context.Context, userID uuid.UUID) error

	// RefreshTokenState reports what the server knows about a refresh token.
	RefreshTokenState(ctx context.Context, token string) (RefreshTokenState, error)
}
