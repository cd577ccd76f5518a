package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// EstimateEmissionInput represents the input for previewing an entry's emissions.
type EstimateEmissionInput struct {
	ActivityTypeID string
	Amount         float64
}

// EstimateEmissionOutput represents the preview.
type EstimateEmissionOutput struct {
	ActivityType *entity.ActivityType
	Amount       float64
	CO2e         float64
}

// EstimateEmissionUseCase computes what an entry would emit without storing it.
type EstimateEmissionUseCase struct {
	repo adapter.ActivityTypeRepository
}

// NewEstimateEmissionUseCase creates a new EstimateEmissionUseCase instance.
func NewEstimateEmissionUseCase(repo adapter.ActivityTypeRepository) *EstimateEmissionUseCase {
	return &EstimateEmissionUseCase{repo: repo}
}

// Execute returns amount × emission factor of the activity type.
func (uc *EstimateEmissionUseCase) Execute(ctx context.Context, input EstimateEmissionInput) (*EstimateEmissionOutput, error) {
	if math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) || input.Amount <= 0 {
		return nil, domainerror.NewEntryError(domainerror.ErrCodeInvalidAmount, "invalid amount", domainerror.ErrInvalidAmount)
	}

	activityType, err := uc.repo.FindByID(ctx, input.ActivityTypeID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUnknownActivityType) {
			return nil, domainerror.NewEntryError(
				domainerror.ErrCodeUnknownActivityType,
				fmt.Sprintf("activity type %q is not in the catalog", input.ActivityTypeID),
				domainerror.ErrUnknownActivityType,
			)
		}
		return nil, fmt.Errorf("failed to find activity type: %w", err)
	}

	return &EstimateEmissionOutput{
		ActivityType: activityType,
		Amount:       input.Amount,
		CO2e:         activityType.Estimate(input.Amount),
	}, nil
}
