package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carbon-tracker/backend/internal/application/usecase/auth"
	"github.com/carbon-tracker/backend/internal/application/usecase/session"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/middleware"
)

// AuthController handles sign-up, sign-in and session endpoints.
type AuthController struct {
	registerUseCase      *auth.RegisterUserUseCase
	loginUseCase         *auth.LoginUserUseCase
	refreshTokenUseCase  *auth.RefreshTokenUseCase
	signOutUseCase       *session.SignOutUseCase
	signInAsGuestUseCase *session.SignInAsGuestUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	registerUseCase *auth.RegisterUserUseCase,
	loginUseCase *auth.LoginUserUseCase,
	refreshTokenUseCase *auth.RefreshTokenUseCase,
	signOutUseCase *session.SignOutUseCase,
	signInAsGuestUseCase *session.SignInAsGuestUseCase,
) *AuthController {
	return &AuthController{
		registerUseCase:      registerUseCase,
		loginUseCase:         loginUseCase,
		refreshTokenUseCase:  refreshTokenUseCase,
		signOutUseCase:       signOutUseCase,
		signInAsGuestUseCase: signInAsGuestUseCase,
	}
}

// Register handles POST /auth/register requests.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingFields), err)
		return
	}

	notifications := middleware.GetNotifications(ctx)
	output, err := c.registerUseCase.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Notifier: notifications,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		AccessToken:   output.AccessToken,
		RefreshToken:  output.RefreshToken,
		User:          dto.ToUserResponse(output.User),
		Notifications: dto.ToNotificationResponses(notifications.Items()),
	})
}

// Login handles POST /auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingFields), err)
		return
	}

	notifications := middleware.GetNotifications(ctx)
	output, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:    req.Email,
		Password: req.Password,
		Notifier: notifications,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:   output.AccessToken,
		RefreshToken:  output.RefreshToken,
		User:          dto.ToUserResponse(output.User),
		Notifications: dto.ToNotificationResponses(notifications.Items()),
	})
}

// RefreshToken handles POST /auth/refresh requests.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingToken), err)
		return
	}

	output, err := c.refreshTokenUseCase.Execute(ctx.Request.Context(), auth.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	})
}

// Logout handles POST /auth/logout requests for both guest and signed-in sessions.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	// an empty body is fine for guests
	_ = ctx.ShouldBindJSON(&req)

	notifications := middleware.GetNotifications(ctx)
	err := c.signOutUseCase.Execute(ctx.Request.Context(), session.SignOutInput{
		Identity:     middleware.GetIdentity(ctx),
		RefreshToken: req.RefreshToken,
		Notifier:     notifications,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message:       "Successfully logged out",
		Notifications: dto.ToNotificationResponses(notifications.Items()),
	})
}

// Guest handles POST /auth/guest requests.
func (c *AuthController) Guest(ctx *gin.Context) {
	notifications := middleware.GetNotifications(ctx)
	output, err := c.signInAsGuestUseCase.Execute(ctx.Request.Context(), notifications)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.GuestSessionResponse{
		GuestSessionID: output.Identity.GuestSessionID,
		Session:        dto.ToSessionResponse(output.Identity),
		Notifications:  dto.ToNotificationResponses(notifications.Items()),
	})
}

// Session handles GET /auth/session requests.
func (c *AuthController) Session(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToSessionResponse(middleware.GetIdentity(ctx)))
}
