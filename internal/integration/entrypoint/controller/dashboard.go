package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carbon-tracker/backend/internal/application/usecase/dashboard"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	overviewUseCase  *dashboard.GetOverviewUseCase
	monthlyUseCase   *dashboard.GetMonthlyComparisonUseCase
	analyticsUseCase *dashboard.GetAnalyticsUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	overviewUseCase *dashboard.GetOverviewUseCase,
	monthlyUseCase *dashboard.GetMonthlyComparisonUseCase,
	analyticsUseCase *dashboard.GetAnalyticsUseCase,
) *DashboardController {
	return &DashboardController{
		overviewUseCase:  overviewUseCase,
		monthlyUseCase:   monthlyUseCase,
		analyticsUseCase: analyticsUseCase,
	}
}

// Overview handles GET /dashboard/overview requests.
func (c *DashboardController) Overview(ctx *gin.Context) {
	req, notifications := request(ctx)
	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOverviewResponse(output, notifications.Items()))
}

// Monthly handles GET /dashboard/monthly requests.
func (c *DashboardController) Monthly(ctx *gin.Context) {
	req, notifications := request(ctx)
	months, err := c.monthlyUseCase.Execute(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyComparisonResponse(months, notifications.Items()))
}

// Analytics handles GET /dashboard/analytics requests.
func (c *DashboardController) Analytics(ctx *gin.Context) {
	req, notifications := request(ctx)
	analytics, err := c.analyticsUseCase.Execute(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAnalyticsResponse(analytics, notifications.Items()))
}
