package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

type memoryCatalog struct {
	types    map[string]*entity.ActivityType
	upserted int
}

func (m *memoryCatalog) FindAll(context.Context) ([]*entity.ActivityType, error) {
	out := make([]*entity.ActivityType, 0, len(m.types))
	for _, t := range m.types {
		out = append(out, t)
	}
	return out, nil
}

func (m *memoryCatalog) FindByID(_ context.Context, id string) (*entity.ActivityType, error) {
	if t, ok := m.types[id]; ok {
		return t, nil
	}
	return nil, domainerror.ErrUnknownActivityType
}

func (m *memoryCatalog) Upsert(_ context.Context, types []*entity.ActivityType) error {
	for _, t := range types {
		m.types[t.ID] = t
	}
	m.upserted += len(types)
	return nil
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{types: map[string]*entity.ActivityType{
		"2": {ID: "2", Name: "Electricity", Unit: "kWh", EmissionFactor: 0.42, Category: entity.CategoryEnergy},
	}}
}

func TestEstimateEmission(t *testing.T) {
	uc := NewEstimateEmissionUseCase(newMemoryCatalog())

	tests := []struct {
		name     string
		input    EstimateEmissionInput
		want     float64
		wantCode domainerror.EntryErrorCode
	}{
		{name: "known type", input: EstimateEmissionInput{ActivityTypeID: "2", Amount: 10}, want: 4.2},
		{name: "unknown type", input: EstimateEmissionInput{ActivityTypeID: "99", Amount: 10}, wantCode: domainerror.ErrCodeUnknownActivityType},
		{name: "zero amount", input: EstimateEmissionInput{ActivityTypeID: "2", Amount: 0}, wantCode: domainerror.ErrCodeInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.Execute(context.Background(), tt.input)
			if tt.wantCode != "" {
				var entryErr *domainerror.EntryError
				require.ErrorAs(t, err, &entryErr)
				assert.Equal(t, tt.wantCode, entryErr.Code)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, out.CO2e, 1e-9)
		})
	}
}

func TestSeedCatalog(t *testing.T) {
	repo := newMemoryCatalog()
	uc := NewSeedCatalogUseCase(repo)

	out, err := uc.Execute(context.Background(), []*entity.ActivityType{
		{ID: "2", Name: "Electricity", Unit: "kWh", EmissionFactor: 0.5, Category: entity.CategoryEnergy},
		{ID: "8", Name: "Natural Gas", Unit: "therms", EmissionFactor: 5.3, Category: entity.CategoryEnergy},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Upserted)
	assert.Len(t, repo.types, 2)
	assert.Equal(t, 0.5, repo.types["2"].EmissionFactor)

	_, err = uc.Execute(context.Background(), []*entity.ActivityType{
		{ID: "1", Name: "A", Unit: "u"},
		{ID: "1", Name: "B", Unit: "u"},
	})
	assert.ErrorContains(t, err, "duplicate id")

	_, err = uc.Execute(context.Background(), []*entity.ActivityType{{ID: "1", Name: "A", Unit: "u", EmissionFactor: -1}})
	assert.Error(t, err)

	_, err = uc.Execute(context.Background(), nil)
	assert.Error(t, err)
}
