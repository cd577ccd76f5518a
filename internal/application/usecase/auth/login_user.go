// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Email    string
	Password string
	Notifier adapter.Notifier
}

// LoginUserOutput represents the output of user login.
type LoginUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// LoginUserUseCase handles user login logic.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the user login.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	notifier := input.Notifier
	if notifier == nil {
		notifier = adapter.NopNotifier{}
	}

	out, err := uc.login(ctx, input)
	if err != nil {
		notifier.Notify(entity.Failure("Error signing in", err.Error()))
		return nil, err
	}

	notifier.Notify(entity.Info("Welcome back!", "You've successfully signed in."))
	return out, nil
}

func (uc *LoginUserUseCase) login(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	// same error for unknown email and wrong password
	invalid := domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid email or password",
		domainerror.ErrInvalidCredentials,
	)

	user, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, invalid
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, invalid
	}
	uc.upgradeHash(ctx, user, input.Password)

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &LoginUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// upgradeHash re-hashes the password after a successful login when the stored
// hash uses an older cost. Failures only cost the upgrade, never the login.
func (uc *LoginUserUseCase) upgradeHash(ctx context.Context, user *entity.User, password string) {
	if !uc.passwordService.NeedsRehash(user.PasswordHash) {
		return
	}
	hash, err := uc.passwordService.HashPassword(password)
	if err == nil {
		err = uc.userRepo.UpdatePasswordHash(ctx, user.ID, hash)
	}
	if err != nil {
		slog.Warn("Failed to upgrade password hash", "user_id", user.ID, "error", err)
		return
	}
	user.PasswordHash = hash
}
