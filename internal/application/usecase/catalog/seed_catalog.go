package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// SeedCatalogOutput represents the output of seeding the catalog.
type SeedCatalogOutput struct {
	Upserted int
}

// SeedCatalogUseCase validates a catalog and writes it to the store.
type SeedCatalogUseCase struct {
	repo adapter.ActivityTypeRepository
}

// NewSeedCatalogUseCase creates a new SeedCatalogUseCase instance.
func NewSeedCatalogUseCase(repo adapter.ActivityTypeRepository) *SeedCatalogUseCase {
	return &SeedCatalogUseCase{repo: repo}
}

// Execute upserts types by id. Existing entries keep the co2e they were created with.
func (uc *SeedCatalogUseCase) Execute(ctx context.Context, types []*entity.ActivityType) (*SeedCatalogOutput, error) {
	if err := validateCatalog(types); err != nil {
		return nil, err
	}

	if err := uc.repo.Upsert(ctx, types); err != nil {
		return nil, fmt.Errorf("failed to upsert activity types: %w", err)
	}

	slog.Info("Emission catalog seeded", "activity_types", len(types))
	return &SeedCatalogOutput{Upserted: len(types)}, nil
}

func validateCatalog(types []*entity.ActivityType) error {
	if len(types) == 0 {
		return fmt.Errorf("catalog is empty")
	}

	seen := make(map[string]bool, len(types))
	for i, t := range types {
		switch {
		case strings.TrimSpace(t.ID) == "":
			return fmt.Errorf("activity type %d: id is required", i)
		case seen[t.ID]:
			return fmt.Errorf("activity type %s: duplicate id", t.ID)
		case strings.TrimSpace(t.Name) == "":
			return fmt.Errorf("activity type %s: name is required", t.ID)
		case strings.TrimSpace(t.Unit) == "":
			return fmt.Errorf("activity type %s: unit is required", t.ID)
		case t.EmissionFactor < 0:
			return fmt.Errorf("activity type %s: emission factor must not be negative", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}
