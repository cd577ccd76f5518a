package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// SignInAsGuestOutput represents the output of starting a guest session.
type SignInAsGuestOutput struct {
	Identity entity.Identity
}

// SignInAsGuestUseCase starts a guest session on a new device session id.
type SignInAsGuestUseCase struct {
	guests adapter.GuestStore
}

// NewSignInAsGuestUseCase creates a new SignInAsGuestUseCase instance.
func NewSignInAsGuestUseCase(guests adapter.GuestStore) *SignInAsGuestUseCase {
	return &SignInAsGuestUseCase{guests: guests}
}

// Execute sets the guest flag for a fresh session id.
func (uc *SignInAsGuestUseCase) Execute(ctx context.Context, notifier adapter.Notifier) (*SignInAsGuestOutput, error) {
	if notifier == nil {
		notifier = adapter.NopNotifier{}
	}
	sessionID := uuid.NewString()

	if err := uc.guests.SetGuest(ctx, sessionID); err != nil {
		notifier.Notify(entity.Failure("Error signing in", err.Error()))
		return nil, domainerror.NewAuthError(domainerror.ErrCodeSessionStoreFailed, "failed to start guest session", err)
	}

	notifier.Notify(entity.Info("Welcome Guest!", "You're exploring in guest mode. Sign up to save your data."))
	return &SignInAsGuestOutput{Identity: entity.GuestIdentity(sessionID)}, nil
}
