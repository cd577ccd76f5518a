package entry

import (
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// ChangeKind identifies what happened to a store.
type ChangeKind string

const (
	ChangeLoaded  ChangeKind = "loaded"
	ChangeAdded   ChangeKind = "added"
	ChangeDeleted ChangeKind = "deleted"
)

// Change is delivered to subscribers after every successful operation.
type Change struct {
	Kind     ChangeKind
	Identity entity.Identity
	Entry    *entity.Entry // Added or deleted entry, nil on load
	Entries  []*entity.Entry
}

// Subscribe registers fn to be called after every successful change. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if s.subscribers == nil {
		s.subscribers = make(map[int]func(Change))
	}
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) publish(c Change) {
	c.Identity = s.identity

	s.subMu.Lock()
	fns := make([]func(Change), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}
