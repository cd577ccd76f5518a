package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carbon-tracker/backend/internal/application/usecase/profile"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/middleware"
)

// ProfileController handles the profile page. Routes run behind Authenticate.
type ProfileController struct {
	getUseCase    *profile.GetProfileUseCase
	updateUseCase *profile.UpdateProfileUseCase
}

// NewProfileController creates a new profile controller instance.
func NewProfileController(getUseCase *profile.GetProfileUseCase, updateUseCase *profile.UpdateProfileUseCase) *ProfileController {
	return &ProfileController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
	}
}

// Get handles GET /profile requests.
func (c *ProfileController) Get(ctx *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	output, err := c.getUseCase.Execute(ctx.Request.Context(), profile.GetProfileInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(output))
}

// Update handles PUT /profile requests.
func (c *ProfileController) Update(ctx *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeProfileFieldTooLong), err)
		return
	}

	saved, err := c.updateUseCase.Execute(ctx.Request.Context(), profile.UpdateProfileInput{
		UserID:      userID,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
		Bio:         req.Bio,
		Location:    req.Location,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUpdatedProfileResponse(saved))
}
