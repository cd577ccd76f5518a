package guest

import (
	"time"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// entryRecord is the serialized form of an entry in a guest snapshot.
type entryRecord struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id"`
	ActivityTypeID string              `json:"activity_type_id"`
	Amount         float64             `json:"amount"`
	OccurredOn     entity.Date         `json:"occurred_on"`
	CO2e           float64             `json:"co2e"`
	CreatedAt      time.Time           `json:"created_at"`
	ActivityType   *activityTypeRecord `json:"activity_types,omitempty"`
}

type activityTypeRecord struct {
	ID             string  `json:"id"`
	Slug           string  `json:"slug"`
	Name           string  `json:"name"`
	Unit           string  `json:"unit"`
	EmissionFactor float64 `json:"emission_factor"`
	Icon           string  `json:"icon"`
	Category       string  `json:"category"`
}

func (r *entryRecord) toEntity() *entity.Entry {
	e := &entity.Entry{
		ID:             r.ID,
		UserID:         r.UserID,
		ActivityTypeID: r.ActivityTypeID,
		Amount:         r.Amount,
		OccurredOn:     r.OccurredOn,
		CO2e:           r.CO2e,
		CreatedAt:      r.CreatedAt,
	}
	if t := r.ActivityType; t != nil {
		e.ActivityType = &entity.ActivityType{
			ID:             t.ID,
			Slug:           t.Slug,
			Name:           t.Name,
			Unit:           t.Unit,
			EmissionFactor: t.EmissionFactor,
			Icon:           t.Icon,
			Category:       t.Category,
		}
	}
	return e
}

func entryRecordFromEntity(e *entity.Entry) entryRecord {
	r := entryRecord{
		ID:             e.ID,
		UserID:         e.UserID,
		ActivityTypeID: e.ActivityTypeID,
		Amount:         e.Amount,
		OccurredOn:     e.OccurredOn,
		CO2e:           e.CO2e,
		CreatedAt:      e.CreatedAt,
	}
	if t := e.ActivityType; t != nil {
		r.ActivityType = &activityTypeRecord{
			ID:             t.ID,
			Slug:           t.Slug,
			Name:           t.Name,
			Unit:           t.Unit,
			EmissionFactor: t.EmissionFactor,
			Icon:           t.Icon,
			Category:       t.Category,
		}
	}
	return r
}
