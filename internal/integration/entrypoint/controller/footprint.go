package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carbon-tracker/backend/internal/application/usecase/dashboard"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/middleware"
)

// defaultRecentLimit is the number of entries GET /footprint/recent returns.
const defaultRecentLimit = 10

// FootprintController exposes the aggregation queries over the caller's entries.
type FootprintController struct {
	dailyUseCase  *dashboard.GetDailySummaryUseCase
	weeklyUseCase *dashboard.GetWeeklySummaryUseCase
	rangeUseCase  *dashboard.GetEntriesInRangeUseCase
	recentUseCase *dashboard.GetRecentEntriesUseCase
	totalUseCase  *dashboard.GetTotalUseCase
	trendUseCase  *dashboard.GetTrendUseCase
	seriesUseCase *dashboard.GetDailySeriesUseCase
}

// NewFootprintController creates a new footprint controller instance.
func NewFootprintController(
	dailyUseCase *dashboard.GetDailySummaryUseCase,
	weeklyUseCase *dashboard.GetWeeklySummaryUseCase,
	rangeUseCase *dashboard.GetEntriesInRangeUseCase,
	recentUseCase *dashboard.GetRecentEntriesUseCase,
	totalUseCase *dashboard.GetTotalUseCase,
	trendUseCase *dashboard.GetTrendUseCase,
	seriesUseCase *dashboard.GetDailySeriesUseCase,
) *FootprintController {
	return &FootprintController{
		dailyUseCase:  dailyUseCase,
		weeklyUseCase: weeklyUseCase,
		rangeUseCase:  rangeUseCase,
		recentUseCase: recentUseCase,
		totalUseCase:  totalUseCase,
		trendUseCase:  trendUseCase,
		seriesUseCase: seriesUseCase,
	}
}

func request(ctx *gin.Context) (dashboard.Request, *middleware.NotificationCollector) {
	notifications := middleware.GetNotifications(ctx)
	return dashboard.Request{Identity: middleware.GetIdentity(ctx), Notifier: notifications}, notifications
}

// Daily handles GET /footprint/daily?date= requests.
func (c *FootprintController) Daily(ctx *gin.Context) {
	date, err := parseDateQuery(ctx, "date")
	if err != nil {
		respondError(ctx, err)
		return
	}

	req, notifications := request(ctx)
	summary, err := c.dailyUseCase.Execute(ctx.Request.Context(), dashboard.GetDailySummaryInput{Request: req, Date: date})
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := dto.ToDailySummaryResponse(*summary, true)
	response.Notifications = dto.ToNotificationResponses(notifications.Items())
	ctx.JSON(http.StatusOK, response)
}

// Weekly handles GET /footprint/weekly?start_date= requests.
func (c *FootprintController) Weekly(ctx *gin.Context) {
	start, err := parseDateQuery(ctx, "start_date")
	if err != nil {
		respondError(ctx, err)
		return
	}

	req, notifications := request(ctx)
	summary, err := c.weeklyUseCase.Execute(ctx.Request.Context(), dashboard.GetWeeklySummaryInput{Request: req, StartDate: start})
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := dto.ToWeeklySummaryResponse(*summary)
	response.Notifications = dto.ToNotificationResponses(notifications.Items())
	ctx.JSON(http.StatusOK, response)
}

// Range handles GET /footprint/range?start_date=&end_date= requests.
func (c *FootprintController) Range(ctx *gin.Context) {
	start, err := parseDateQuery(ctx, "start_date")
	if err != nil {
		respondError(ctx, err)
		return
	}
	end, err := parseDateQuery(ctx, "end_date")
	if err != nil {
		respondError(ctx, err)
		return
	}

	req, notifications := request(ctx)
	output, err := c.rangeUseCase.Execute(ctx.Request.Context(), dashboard.GetEntriesInRangeInput{
		Request:   req,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRangeResponse(output, notifications.Items()))
}

// Recent handles GET /footprint/recent?limit= requests.
func (c *FootprintController) Recent(ctx *gin.Context) {
	limit, err := parseLimitQuery(ctx, defaultRecentLimit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	req, notifications := request(ctx)
	entries, err := c.recentUseCase.Execute(ctx.Request.Context(), dashboard.GetRecentEntriesInput{Request: req, Limit: limit})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEntryListResponse(entries, notifications.Items()))
}

// Total handles GET /footprint/total requests.
func (c *FootprintController) Total(ctx *gin.Context) {
	req, notifications := request(ctx)
	output, err := c.totalUseCase.Execute(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TotalResponse{
		TotalCO2e:        output.TotalCO2e,
		TotalCO2eRounded: dto.Round2(output.TotalCO2e),
		EntryCount:       output.EntryCount,
		Notifications:    dto.ToNotificationResponses(notifications.Items()),
	})
}

// Trend handles GET /footprint/trend requests.
func (c *FootprintController) Trend(ctx *gin.Context) {
	req, notifications := request(ctx)
	trend, err := c.trendUseCase.Execute(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := dto.ToTrendResponse(*trend)
	response.Notifications = dto.ToNotificationResponses(notifications.Items())
	ctx.JSON(http.StatusOK, response)
}

// Series handles GET /footprint/series?start_date=&end_date= requests.
func (c *FootprintController) Series(ctx *gin.Context) {
	start, err := parseDateQuery(ctx, "start_date")
	if err != nil {
		respondError(ctx, err)
		return
	}
	end, err := parseDateQuery(ctx, "end_date")
	if err != nil {
		respondError(ctx, err)
		return
	}

	req, notifications := request(ctx)
	days, err := c.seriesUseCase.Execute(ctx.Request.Context(), dashboard.GetDailySeriesInput{
		Request:   req,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSeriesResponse(days, notifications.Items()))
}
