package session

import (
	"context"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// SignOutInput represents the input for ending a session.
type SignOutInput struct {
	Identity     entity.Identity
	RefreshToken string
	Notifier     adapter.Notifier
}

// SignOutUseCase ends guest and remote sessions.
type SignOutUseCase struct {
	guests       adapter.GuestStore
	tokenService adapter.TokenService
}

// NewSignOutUseCase creates a new SignOutUseCase instance.
func NewSignOutUseCase(guests adapter.GuestStore, tokenService adapter.TokenService) *SignOutUseCase {
	return &SignOutUseCase{
		guests:       guests,
		tokenService: tokenService,
	}
}

// Execute clears the guest flag of a guest session, or revokes the refresh
// token of an authenticated one. Guest entries are left to expire.
func (uc *SignOutUseCase) Execute(ctx context.Context, input SignOutInput) error {
	notifier := input.Notifier
	if notifier == nil {
		notifier = adapter.NopNotifier{}
	}

	switch {
	case input.Identity.IsGuest():
		if err := uc.guests.ClearGuest(ctx, input.Identity.GuestSessionID); err != nil {
			notifier.Notify(entity.Failure("Error signing out", err.Error()))
			return domainerror.NewAuthError(domainerror.ErrCodeSessionStoreFailed, "failed to end guest session", err)
		}
		notifier.Notify(entity.Info("Guest session ended", "Create an account to save your data."))

	default:
		if input.RefreshToken != "" {
			if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
				notifier.Notify(entity.Failure("Error signing out", err.Error()))
				return domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "failed to revoke refresh token", err)
			}
		}
		notifier.Notify(entity.Info("Signed out", "You've been signed out successfully."))
	}

	return nil
}
