// Package catalog contains the emission catalog use cases.
package catalog

import (
	"context"
	"fmt"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// ListActivityTypesOutput represents the output of listing the catalog.
type ListActivityTypesOutput struct {
	ActivityTypes []*entity.ActivityType
}

// ListActivityTypesUseCase lists the catalog ordered by name.
type ListActivityTypesUseCase struct {
	repo adapter.ActivityTypeRepository
}

// NewListActivityTypesUseCase creates a new ListActivityTypesUseCase instance.
func NewListActivityTypesUseCase(repo adapter.ActivityTypeRepository) *ListActivityTypesUseCase {
	return &ListActivityTypesUseCase{repo: repo}
}

// Execute lists every activity type.
func (uc *ListActivityTypesUseCase) Execute(ctx context.Context) (*ListActivityTypesOutput, error) {
	types, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity types: %w", err)
	}
	return &ListActivityTypesOutput{ActivityTypes: types}, nil
}
