// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"
)

// GuestUserID is the owner id of every entry logged in a guest session.
const GuestUserID = "guest"

// Entry is a single logged activity occurrence.
//
// CO2e is a frozen snapshot computed at creation time; later catalog changes
// never alter it. Entries are never updated in place.
type Entry struct {
	ID             string
	UserID         string
	ActivityTypeID string
	Amount         float64
	OccurredOn     Date
	CO2e           float64
	CreatedAt      time.Time
	ActivityType   *ActivityType // Joined on read, may be nil
}

// NewEntry creates an Entry and computes its emissions from the activity type.
func NewEntry(id, userID string, activityType *ActivityType, amount float64, occurredOn Date, createdAt time.Time) *Entry {
	return &Entry{
		ID:             id,
		UserID:         userID,
		ActivityTypeID: activityType.ID,
		Amount:         amount,
		OccurredOn:     occurredOn,
		CO2e:           CalculateCO2e(amount, activityType.EmissionFactor),
		CreatedAt:      createdAt,
		ActivityType:   activityType,
	}
}

// Clone returns a shallow copy of the entry. The joined activity type is shared.
func (e *Entry) Clone() *Entry {
	c := *e
	return &c
}

// SumCO2e sums the emissions of the given entries.
func SumCO2e(entries []*Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.CO2e
	}
	return total
}
