package entry

import (
	"context"
	"time"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/application/usecase/footprint"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// Factory builds stores bound to a session identity.
type Factory struct {
	activityTypes adapter.ActivityTypeRepository
	entries       adapter.EntryRepository
	guests        adapter.GuestStore
	now           func() time.Time
	observers     []func(Change)
}

// Option configures a Factory.
type Option func(*Factory)

// WithClock overrides the time source used for entry ids and creation times.
func WithClock(now func() time.Time) Option {
	return func(f *Factory) {
		f.now = now
	}
}

// WithObserver subscribes fn to every store the factory creates.
func WithObserver(fn func(Change)) Option {
	return func(f *Factory) {
		f.observers = append(f.observers, fn)
	}
}

// NewFactory creates a new Factory.
func NewFactory(
	activityTypes adapter.ActivityTypeRepository,
	entries adapter.EntryRepository,
	guests adapter.GuestStore,
	opts ...Option,
) *Factory {
	f := &Factory{
		activityTypes: activityTypes,
		entries:       entries,
		guests:        guests,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// New creates an empty store for identity. Authenticated identities use the
// remote store, guests the device store, and anonymous sessions get none.
func (f *Factory) New(identity entity.Identity, notifier adapter.Notifier) *Store {
	if notifier == nil {
		notifier = adapter.NopNotifier{}
	}

	s := &Store{
		identity:      identity,
		activityTypes: f.activityTypes,
		notifier:      notifier,
		now:           f.now,
		entries:       []*entity.Entry{},
		catalog:       []*entity.ActivityType{},
	}

	switch {
	case identity.IsAuthenticated():
		s.backend = &remoteBackend{repo: f.entries, userID: identity.UserID}
	case identity.IsGuest():
		s.backend = &guestBackend{store: f.guests, sessionID: identity.GuestSessionID}
	}

	for _, fn := range f.observers {
		s.Subscribe(fn)
	}
	return s
}

// Open creates a store for identity and loads it. The store is returned even
// when loading fails, holding an empty list.
func (f *Factory) Open(ctx context.Context, identity entity.Identity, notifier adapter.Notifier) (*Store, error) {
	s := f.New(identity, notifier)
	if err := s.Load(ctx); err != nil {
		return s, err
	}
	return s, nil
}

// LoadSnapshot opens the identity's store and returns its snapshot.
func (f *Factory) LoadSnapshot(ctx context.Context, identity entity.Identity, notifier adapter.Notifier) (footprint.Snapshot, error) {
	s, err := f.Open(ctx, identity, notifier)
	if err != nil {
		return footprint.Snapshot{}, err
	}
	return s.Snapshot(), nil
}
