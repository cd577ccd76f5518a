package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/carbon-tracker/backend/internal/application/usecase/dashboard"
	"github.com/carbon-tracker/backend/internal/application/usecase/entry"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/middleware"
)

// defaultHistoryLimit is the number of recent entries the history groups.
const defaultHistoryLimit = 50

// EntryController handles the activity log endpoints for guests and signed-in users.
type EntryController struct {
	stores         *entry.Factory
	historyUseCase *dashboard.GetHistoryUseCase
}

// NewEntryController creates a new entry controller instance.
func NewEntryController(stores *entry.Factory, historyUseCase *dashboard.GetHistoryUseCase) *EntryController {
	return &EntryController{
		stores:         stores,
		historyUseCase: historyUseCase,
	}
}

// List handles GET /entries requests, grouping entries by day.
func (c *EntryController) List(ctx *gin.Context) {
	limit, err := parseLimitQuery(ctx, defaultHistoryLimit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	notifications := middleware.GetNotifications(ctx)
	groups, err := c.historyUseCase.Execute(ctx.Request.Context(), dashboard.GetHistoryInput{
		Request: dashboard.Request{Identity: middleware.GetIdentity(ctx), Notifier: notifications},
		Limit:   limit,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEntryHistoryResponse(groups, notifications.Items()))
}

// Create handles POST /entries requests.
func (c *EntryController) Create(ctx *gin.Context) {
	var req dto.CreateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		invalidBody(ctx, string(domainerror.ErrCodeMissingEntryFields), err)
		return
	}

	var occurredOn entity.Date
	if raw := strings.TrimSpace(req.OccurredOn); raw != "" {
		d, err := entity.ParseDate(raw)
		if err != nil {
			respondError(ctx, domainerror.NewDashboardError(
				domainerror.ErrCodeInvalidDateFormat,
				"occurred_on must be a YYYY-MM-DD date",
				domainerror.ErrInvalidDateFormat,
			))
			return
		}
		occurredOn = d
	}

	notifications := middleware.GetNotifications(ctx)
	store, err := c.stores.Open(ctx.Request.Context(), middleware.GetIdentity(ctx), notifications)
	if err != nil {
		respondError(ctx, err)
		return
	}

	created, err := store.AddEntry(ctx.Request.Context(), entry.AddEntryInput{
		ActivityTypeID: strings.TrimSpace(req.ActivityTypeID),
		Amount:         req.Amount,
		OccurredOn:     occurredOn,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.EntryMutationResponse{
		Entry:         dto.ToEntryResponse(created),
		Notifications: dto.ToNotificationResponses(notifications.Items()),
	})
}

// Delete handles DELETE /entries/:id requests. Unknown ids succeed.
func (c *EntryController) Delete(ctx *gin.Context) {
	notifications := middleware.GetNotifications(ctx)
	store, err := c.stores.Open(ctx.Request.Context(), middleware.GetIdentity(ctx), notifications)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := store.DeleteEntry(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message:       "Entry deleted",
		Notifications: dto.ToNotificationResponses(notifications.Items()),
	})
}
