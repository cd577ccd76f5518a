// Package footprint derives emission summaries from a snapshot of entries.
// Every function here is pure: the snapshot is never mutated, and any
// reordering happens on copies.
package footprint

import (
	"sort"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// DefaultRecentLimit is the number of entries returned by RecentEntries when
// callers do not ask for a specific limit.
const DefaultRecentLimit = 10

// Snapshot is an immutable view of one identity's entries and the catalog.
type Snapshot struct {
	Entries       []*entity.Entry
	ActivityTypes []*entity.ActivityType

	catalog entity.Catalog
}

// NewSnapshot copies the given slices into a new Snapshot.
func NewSnapshot(entries []*entity.Entry, activityTypes []*entity.ActivityType) Snapshot {
	e := make([]*entity.Entry, len(entries))
	for i, entry := range entries {
		e[i] = entry.Clone()
	}
	t := make([]*entity.ActivityType, len(activityTypes))
	copy(t, activityTypes)

	return Snapshot{
		Entries:       e,
		ActivityTypes: t,
		catalog:       entity.NewCatalog(t),
	}
}

// activityTypeOf resolves the type of an entry: the joined type first, the catalog second.
func (s Snapshot) activityTypeOf(e *entity.Entry) (*entity.ActivityType, bool) {
	if e.ActivityType != nil {
		return e.ActivityType, true
	}
	if s.catalog != nil {
		return s.catalog.Lookup(e.ActivityTypeID)
	}
	for _, t := range s.ActivityTypes {
		if t.ID == e.ActivityTypeID {
			return t, true
		}
	}
	return nil, false
}

// newestFirst returns a copy of entries sorted by creation time, newest first.
func newestFirst(entries []*entity.Entry) []*entity.Entry {
	sorted := make([]*entity.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}

func filter(entries []*entity.Entry, keep func(*entity.Entry) bool) []*entity.Entry {
	out := make([]*entity.Entry, 0)
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// categoryShares sums entries per category and ranks them by emissions, highest first.
// Entries whose type cannot be resolved are left out of the ranking.
func (s Snapshot) categoryShares(entries []*entity.Entry, total float64) []entity.CategoryShare {
	totals := make(map[string]float64)
	for _, e := range entries {
		t, ok := s.activityTypeOf(e)
		if !ok {
			continue
		}
		totals[t.Category] += e.CO2e
	}

	shares := make([]entity.CategoryShare, 0, len(totals))
	for category, co2e := range totals {
		pct := 0.0
		if total > 0 {
			pct = co2e / total * 100
		}
		shares = append(shares, entity.CategoryShare{Category: category, CO2e: co2e, Percentage: pct})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].CO2e == shares[j].CO2e {
			return shares[i].Category < shares[j].Category
		}
		return shares[i].CO2e > shares[j].CO2e
	})
	return shares
}
