package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/carbon-tracker/backend/internal/application/usecase/catalog"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
)

// CatalogController handles the emission catalog endpoints.
type CatalogController struct {
	listUseCase     *catalog.ListActivityTypesUseCase
	estimateUseCase *catalog.EstimateEmissionUseCase
}

// NewCatalogController creates a new catalog controller instance.
func NewCatalogController(
	listUseCase *catalog.ListActivityTypesUseCase,
	estimateUseCase *catalog.EstimateEmissionUseCase,
) *CatalogController {
	return &CatalogController{
		listUseCase:     listUseCase,
		estimateUseCase: estimateUseCase,
	}
}

// List handles GET /activity-types requests.
func (c *CatalogController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToActivityTypeListResponse(output.ActivityTypes))
}

// Estimate handles GET /activity-types/:id/estimate?amount= requests.
func (c *CatalogController) Estimate(ctx *gin.Context) {
	amount, err := strconv.ParseFloat(ctx.Query("amount"), 64)
	if err != nil {
		respondError(ctx, domainerror.NewEntryError(domainerror.ErrCodeInvalidAmount, "amount must be a number", domainerror.ErrInvalidAmount))
		return
	}

	output, err := c.estimateUseCase.Execute(ctx.Request.Context(), catalog.EstimateEmissionInput{
		ActivityTypeID: ctx.Param("id"),
		Amount:         amount,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEstimateResponse(output))
}
