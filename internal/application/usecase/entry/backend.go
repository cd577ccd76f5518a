// Package entry contains the entry store: the in-memory list of one
// identity's entries, kept in step with its backing store.
package entry

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// backend is the persistence side of a Store. Each implementation is bound
// to a single identity.
type backend interface {
	// load returns the identity's entries, newest first.
	load(ctx context.Context) ([]*entity.Entry, error)

	// newID returns the id for an entry about to be inserted.
	newID(current []*entity.Entry, now time.Time) string

	// insert persists e and returns the stored entry. When the backend
	// rewrites the whole list it also returns that list, which replaces the
	// in-memory one; otherwise the list is nil.
	insert(ctx context.Context, e *entity.Entry) (*entity.Entry, []*entity.Entry, error)

	// remove deletes id. The returned list follows the same rule as insert.
	remove(ctx context.Context, id string) ([]*entity.Entry, error)
}

// remoteBackend stores entries of an authenticated user in the database.
type remoteBackend struct {
	repo   adapter.EntryRepository
	userID uuid.UUID
}

func (b *remoteBackend) load(ctx context.Context) ([]*entity.Entry, error) {
	return b.repo.FindByUserID(ctx, b.userID)
}

func (b *remoteBackend) newID([]*entity.Entry, time.Time) string {
	return uuid.NewString()
}

func (b *remoteBackend) insert(ctx context.Context, e *entity.Entry) (*entity.Entry, []*entity.Entry, error) {
	stored, err := b.repo.Create(ctx, e)
	return stored, nil, err
}

func (b *remoteBackend) remove(ctx context.Context, id string) ([]*entity.Entry, error) {
	return nil, b.repo.Delete(ctx, id, b.userID)
}

// guestBackend stores the whole entry list of a guest session as one snapshot.
// Writes are applied to the snapshot as stored at write time, so concurrent
// requests of the same session never drop each other's changes.
type guestBackend struct {
	store     adapter.GuestStore
	sessionID string
}

func (b *guestBackend) load(ctx context.Context) ([]*entity.Entry, error) {
	return b.store.LoadEntries(ctx, b.sessionID)
}

// newID derives the id from the creation time, bumped until it is unique in the list.
func (b *guestBackend) newID(current []*entity.Entry, now time.Time) string {
	taken := make(map[string]bool, len(current))
	for _, e := range current {
		taken[e.ID] = true
	}
	n := now.UnixNano()
	for {
		id := "guest-" + strconv.FormatInt(n, 10)
		if !taken[id] {
			return id
		}
		n++
	}
}

func (b *guestBackend) insert(ctx context.Context, e *entity.Entry) (*entity.Entry, []*entity.Entry, error) {
	var stored *entity.Entry
	entries, err := b.store.UpdateEntries(ctx, b.sessionID, func(current []*entity.Entry) ([]*entity.Entry, error) {
		stored = e.Clone()
		if hasID(current, stored.ID) {
			stored.ID = b.newID(current, stored.CreatedAt)
		}
		updated := make([]*entity.Entry, 0, len(current)+1)
		updated = append(updated, stored)
		return append(updated, current...), nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to save guest entries: %w", err)
	}
	return stored, entries, nil
}

func (b *guestBackend) remove(ctx context.Context, id string) ([]*entity.Entry, error) {
	entries, err := b.store.UpdateEntries(ctx, b.sessionID, func(current []*entity.Entry) ([]*entity.Entry, error) {
		remaining := make([]*entity.Entry, 0, len(current))
		for _, e := range current {
			if e.ID != id {
				remaining = append(remaining, e)
			}
		}
		return remaining, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save guest entries: %w", err)
	}
	return entries, nil
}

func hasID(entries []*entity.Entry, id string) bool {
	for _, e := range entries {
		if e.ID == id {
			return true
		}
	}
	return false
}
