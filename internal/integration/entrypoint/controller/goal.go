package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/usecase/goal"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/middleware"
)

// GoalController handles goal endpoints. Routes run behind Authenticate.
type GoalController struct {
	listUseCase   *goal.ListGoalsUseCase
	createUseCase *goal.CreateGoalUseCase
	getUseCase    *goal.GetGoalUseCase
	updateUseCase *goal.UpdateGoalUseCase
	deleteUseCase *goal.DeleteGoalUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	listUseCase *goal.ListGoalsUseCase,
	createUseCase *goal.CreateGoalUseCase,
	getUseCase *goal.GetGoalUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
) *GoalController {
	return &GoalController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

func goalID(ctx *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, domainerror.NewGoalError(domainerror.ErrCodeGoalNotFound, "goal not found", domainerror.ErrGoalNotFound)
	}
	return id, nil
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	output, err := c.listUseCase.Execute(ctx.Request.Context(), goal.ListGoalsInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(ctx)

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingGoalFields), err)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), goal.CreateGoalInput{
		UserID:        userID,
		Title:         req.Title,
		TargetValue:   req.TargetValue,
		Period:        entity.GoalPeriod(req.Period),
		Category:      req.Category,
		AlertOnExceed: req.AlertOnExceed,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(ctx)
	id, err := goalID(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	progress, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{GoalID: id, UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalProgressResponse(progress))
}

// Update handles PATCH /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(ctx)
	id, err := goalID(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingGoalFields), err)
		return
	}

	input := goal.UpdateGoalInput{
		GoalID:        id,
		UserID:        userID,
		Title:         req.Title,
		TargetValue:   req.TargetValue,
		Category:      req.Category,
		AlertOnExceed: req.AlertOnExceed,
	}
	if req.Period != nil {
		period := entity.GoalPeriod(*req.Period)
		input.Period = &period
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(ctx)
	id, err := goalID(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{GoalID: id, UserID: userID}); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
