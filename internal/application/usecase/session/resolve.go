// Package session resolves and manages the identity behind a request.
package session

import (
	"context"
	"log/slog"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// ResolveInput carries the two identity signals a client can present.
type ResolveInput struct {
	GuestSessionID string
	AccessToken    string
}

// ResolveUseCase turns request credentials into an identity. The guest flag
// is checked first, then the remote session; with neither the identity is anonymous.
type ResolveUseCase struct {
	guests       adapter.GuestStore
	tokenService adapter.TokenService
}

// NewResolveUseCase creates a new ResolveUseCase instance.
func NewResolveUseCase(guests adapter.GuestStore, tokenService adapter.TokenService) *ResolveUseCase {
	return &ResolveUseCase{
		guests:       guests,
		tokenService: tokenService,
	}
}

// Execute resolves the identity. It never fails: unreadable signals degrade to anonymous.
func (uc *ResolveUseCase) Execute(ctx context.Context, input ResolveInput) entity.Identity {
	if input.GuestSessionID != "" {
		isGuest, err := uc.guests.IsGuest(ctx, input.GuestSessionID)
		if err != nil {
			slog.Warn("Failed to read guest flag", "error", err)
		}
		if isGuest {
			return entity.GuestIdentity(input.GuestSessionID)
		}
	}

	if input.AccessToken != "" {
		claims, err := uc.tokenService.ValidateAccessToken(ctx, input.AccessToken)
		if err == nil {
			return entity.AuthenticatedIdentity(claims.UserID, claims.Email)
		}
	}

	return entity.AnonymousIdentity()
}
