// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/middleware"
)

// respondError writes err as a JSON error with the status its code maps to.
// Notifications collected for the request are always included.
func respondError(ctx *gin.Context, err error) {
	notifications := dto.ToNotificationResponses(middleware.GetNotifications(ctx).Items())

	status, code, message := classifyError(err)
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "path", ctx.FullPath(), "error", err)
	}

	ctx.JSON(status, dto.ErrorResponse{
		Error:         message,
		Code:          code,
		Notifications: notifications,
	})
}

func classifyError(err error) (status int, code, message string) {
	var (
		entryErr     *domainerror.EntryError
		authErr      *domainerror.AuthError
		goalErr      *domainerror.GoalError
		dashboardErr *domainerror.DashboardError
		profileErr   *domainerror.ProfileError
	)

	switch {
	case errors.As(err, &entryErr):
		return statusForEntryError(entryErr.Code), string(entryErr.Code), entryErr.Message
	case errors.As(err, &authErr):
		return statusForAuthError(authErr.Code), string(authErr.Code), authErr.Message
	case errors.As(err, &goalErr):
		return statusForGoalError(goalErr.Code), string(goalErr.Code), goalErr.Message
	case errors.As(err, &dashboardErr):
		if dashboardErr.Code == domainerror.ErrCodeDashboardInternalError {
			return http.StatusInternalServerError, string(dashboardErr.Code), dashboardErr.Message
		}
		return http.StatusBadRequest, string(dashboardErr.Code), dashboardErr.Message
	case errors.As(err, &profileErr):
		if profileErr.Code == domainerror.ErrCodeProfileInternalError {
			return http.StatusInternalServerError, string(profileErr.Code), profileErr.Message
		}
		return http.StatusBadRequest, string(profileErr.Code), profileErr.Message
	}

	return http.StatusInternalServerError, "", "An internal error occurred"
}

func statusForEntryError(code domainerror.EntryErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeMissingEntryFields,
		domainerror.ErrCodeUnknownActivityType:
		return http.StatusBadRequest
	case domainerror.ErrCodeAuthenticationRequired:
		return http.StatusUnauthorized
	case domainerror.ErrCodeEntryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func statusForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeUserNotFound,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken,
		domainerror.ErrCodeGuestSessionNotFound:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeSessionStoreFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func statusForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTargetValue,
		domainerror.ErrCodeInvalidGoalPeriod,
		domainerror.ErrCodeMissingGoalFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(ctx *gin.Context, key string) (entity.Date, error) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return entity.Date{}, nil
	}
	d, err := entity.ParseDate(raw)
	if err != nil {
		return entity.Date{}, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateFormat,
			key+" must be a YYYY-MM-DD date",
			domainerror.ErrInvalidDateFormat,
		)
	}
	return d, nil
}

// parseLimitQuery reads an optional integer limit, falling back to def.
func parseLimitQuery(ctx *gin.Context, def int) (int, error) {
	raw := strings.TrimSpace(ctx.Query("limit"))
	if raw == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidLimit,
			"limit must be an integer",
			domainerror.ErrInvalidLimit,
		)
	}
	return limit, nil
}

// invalidBody answers a request whose JSON body could not be bound.
func invalidBody(ctx *gin.Context, code string, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Code:    code,
		Details: err.Error(),
	})
}
