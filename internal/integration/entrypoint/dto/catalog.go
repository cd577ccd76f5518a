package dto

import (
	"github.com/carbon-tracker/backend/internal/application/usecase/catalog"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// ActivityTypeResponse represents a catalog entry in API responses.
type ActivityTypeResponse struct {
	ID             string  `json:"id"`
	Slug           string  `json:"slug"`
	Name           string  `json:"name"`
	Unit           string  `json:"unit"`
	EmissionFactor float64 `json:"emission_factor"`
	Icon           string  `json:"icon"`
	Category       string  `json:"category"`
}

// ActivityTypeListResponse represents the catalog listing.
type ActivityTypeListResponse struct {
	ActivityTypes []ActivityTypeResponse `json:"activity_types"`
}

// EstimateResponse previews the emissions of an amount.
type EstimateResponse struct {
	ActivityType ActivityTypeResponse `json:"activity_type"`
	Amount       float64              `json:"amount"`
	CO2e         float64              `json:"co2e"`
	CO2eRounded  float64              `json:"co2e_rounded"`
}

// ToActivityTypeResponse converts an ActivityType to its DTO.
func ToActivityTypeResponse(t *entity.ActivityType) ActivityTypeResponse {
	return ActivityTypeResponse{
		ID:             t.ID,
		Slug:           t.Slug,
		Name:           t.Name,
		Unit:           t.Unit,
		EmissionFactor: t.EmissionFactor,
		Icon:           t.Icon,
		Category:       t.Category,
	}
}

// ToActivityTypeListResponse converts the catalog to its DTO.
func ToActivityTypeListResponse(types []*entity.ActivityType) ActivityTypeListResponse {
	out := make([]ActivityTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, ToActivityTypeResponse(t))
	}
	return ActivityTypeListResponse{ActivityTypes: out}
}

// ToEstimateResponse converts an estimate to its DTO.
func ToEstimateResponse(output *catalog.EstimateEmissionOutput) EstimateResponse {
	return EstimateResponse{
		ActivityType: ToActivityTypeResponse(output.ActivityType),
		Amount:       output.Amount,
		CO2e:         output.CO2e,
		CO2eRounded:  Round2(output.CO2e),
	}
}
