package entry

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/application/usecase/footprint"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

// AddEntryInput represents the input for logging a new activity.
type AddEntryInput struct {
	ActivityTypeID string
	Amount         float64
	OccurredOn     entity.Date
}

// Store holds the entries of one identity. Every mutation reaches the
// backing store before the in-memory list changes, so a failed write leaves
// the list exactly as it was.
type Store struct {
	mu sync.Mutex

	identity      entity.Identity
	backend       backend
	activityTypes adapter.ActivityTypeRepository
	notifier      adapter.Notifier
	now           func() time.Time

	loading atomic.Bool
	entries []*entity.Entry
	catalog []*entity.ActivityType

	subMu       sync.Mutex
	subscribers map[int]func(Change)
	nextSubID   int
}

// Identity returns the identity the store is bound to.
func (s *Store) Identity() entity.Identity {
	return s.identity
}

// Loading reports whether a load is in progress.
func (s *Store) Loading() bool {
	return s.loading.Load()
}

// Entries returns a copy of the in-memory entry list.
func (s *Store) Entries() []*entity.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEntries(s.entries)
}

// ActivityTypes returns the catalog as of the last load.
func (s *Store) ActivityTypes() []*entity.ActivityType {
	s.mu.Lock()
	defer s.mu.Unlock()
	types := make([]*entity.ActivityType, len(s.catalog))
	copy(types, s.catalog)
	return types
}

// Snapshot returns an immutable view for the aggregation functions.
func (s *Store) Snapshot() footprint.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return footprint.NewSnapshot(s.entries, s.catalog)
}

// Load refreshes the catalog and the identity's entries. On failure the
// previous state is kept and a notification is emitted.
func (s *Store) Load(ctx context.Context) error {
	s.loading.Store(true)
	s.mu.Lock()

	catalog, entries, err := s.fetch(ctx)
	if err == nil {
		s.catalog = catalog
		s.entries = entries
	}
	snapshot := cloneEntries(s.entries)
	s.mu.Unlock()
	s.loading.Store(false)

	if err != nil {
		s.notifier.Notify(entity.Failure("Error loading data", err.Error()))
		return domainerror.NewEntryError(domainerror.ErrCodeStoreUnavailable, "failed to load entries", fmt.Errorf("%w: %w", domainerror.ErrStoreUnavailable, err))
	}

	s.publish(Change{Kind: ChangeLoaded, Entries: snapshot})
	return nil
}

func (s *Store) fetch(ctx context.Context) ([]*entity.ActivityType, []*entity.Entry, error) {
	catalog, err := s.activityTypes.FindAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load activity types: %w", err)
	}

	if s.backend == nil {
		return catalog, []*entity.Entry{}, nil
	}

	entries, err := s.backend.load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load entries: %w", err)
	}
	if entries == nil {
		entries = []*entity.Entry{}
	}
	return catalog, entries, nil
}

// AddEntry validates and logs a new activity, then prepends it to the list.
func (s *Store) AddEntry(ctx context.Context, input AddEntryInput) (*entity.Entry, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	if s.backend == nil {
		s.notifier.Notify(entity.Failure("Authentication required", "Please sign in to add entries."))
		return nil, domainerror.NewEntryError(domainerror.ErrCodeAuthenticationRequired, "authentication required", domainerror.ErrAuthenticationRequired)
	}

	s.mu.Lock()
	activityType := s.lookup(input.ActivityTypeID)
	if activityType == nil {
		s.mu.Unlock()
		s.notifier.Notify(entity.Failure("Unknown activity", "The selected activity type does not exist."))
		return nil, domainerror.NewEntryError(
			domainerror.ErrCodeUnknownActivityType,
			fmt.Sprintf("activity type %q is not in the catalog", input.ActivityTypeID),
			domainerror.ErrUnknownActivityType,
		)
	}

	now := s.now().UTC()
	e := entity.NewEntry(
		s.backend.newID(s.entries, now),
		s.identity.OwnerID(),
		activityType,
		input.Amount,
		input.OccurredOn,
		now,
	)

	stored, entries, err := s.backend.insert(ctx, e)
	if err != nil {
		s.mu.Unlock()
		s.notifier.Notify(entity.Failure("Error adding entry", err.Error()))
		return nil, domainerror.NewEntryError(domainerror.ErrCodeStoreUnavailable, "failed to add entry", fmt.Errorf("%w: %w", domainerror.ErrStoreUnavailable, err))
	}
	if stored.ActivityType == nil {
		stored.ActivityType = activityType
	}

	if entries != nil {
		s.entries = entries
	} else {
		s.entries = append([]*entity.Entry{stored}, s.entries...)
	}
	snapshot := cloneEntries(s.entries)
	s.mu.Unlock()

	if s.identity.IsGuest() {
		s.notifier.Notify(entity.Info("Entry added (Guest Mode)", fmt.Sprintf("Added %s activity. Sign up to save permanently.", activityType.Name)))
	} else {
		s.notifier.Notify(entity.Info("Entry added", fmt.Sprintf("Added %s activity.", activityType.Name)))
	}

	s.publish(Change{Kind: ChangeAdded, Entry: stored.Clone(), Entries: snapshot})
	return stored.Clone(), nil
}

// DeleteEntry removes an entry. Deleting an id that is not held succeeds
// without changing anything. Anonymous sessions cannot delete.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	if s.backend == nil {
		return nil
	}

	s.mu.Lock()
	remaining := make([]*entity.Entry, 0, len(s.entries))
	var removed *entity.Entry
	for _, e := range s.entries {
		if e.ID == id {
			removed = e
			continue
		}
		remaining = append(remaining, e)
	}

	entries, err := s.backend.remove(ctx, id)
	if err != nil {
		s.mu.Unlock()
		s.notifier.Notify(entity.Failure("Error deleting entry", err.Error()))
		return domainerror.NewEntryError(domainerror.ErrCodeStoreUnavailable, "failed to delete entry", fmt.Errorf("%w: %w", domainerror.ErrStoreUnavailable, err))
	}

	if entries != nil {
		s.entries = entries
	} else {
		s.entries = remaining
	}
	snapshot := cloneEntries(s.entries)
	s.mu.Unlock()

	s.notifier.Notify(entity.Info("Entry deleted", "Activity entry has been removed."))

	change := Change{Kind: ChangeDeleted, Entries: snapshot}
	if removed != nil {
		change.Entry = removed.Clone()
	}
	s.publish(change)
	return nil
}

func (s *Store) validate(input AddEntryInput) error {
	if input.ActivityTypeID == "" || input.OccurredOn.IsZero() {
		s.notifier.Notify(entity.Failure("Missing Information", "Please fill in all fields"))
		return domainerror.NewEntryError(domainerror.ErrCodeMissingEntryFields, "missing required fields", domainerror.ErrMissingEntryFields)
	}
	if math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) || input.Amount <= 0 {
		s.notifier.Notify(entity.Failure("Invalid Amount", "Please enter a valid positive number"))
		return domainerror.NewEntryError(domainerror.ErrCodeInvalidAmount, "invalid amount", domainerror.ErrInvalidAmount)
	}
	return nil
}

func (s *Store) lookup(id string) *entity.ActivityType {
	for _, t := range s.catalog {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func cloneEntries(entries []*entity.Entry) []*entity.Entry {
	out := make([]*entity.Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
