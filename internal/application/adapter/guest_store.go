// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

// GuestStore is the device-local storage of guest sessions: a guest flag and
// a serialized snapshot of the guest's entries.
type GuestStore interface {
	// IsGuest reports whether the guest flag is set for the session.
	IsGuest(ctx context.Context, sessionID string) (bool, error)

	// SetGuest sets the guest flag for the session.
	SetGuest(ctx context.Context, sessionID string) error

	// ClearGuest removes the guest flag. Stored entries are left to expire.
	ClearGuest(ctx context.Context, sessionID string) error

	// LoadEntries returns the stored snapshot. A missing or malformed snapshot yields an empty list.
	LoadEntries(ctx context.Context, sessionID string) ([]*entity.Entry, error)

	// UpdateEntries reads the stored snapshot, passes it to fn and writes the
	// list fn returns, as one atomic step per session. fn runs again on the
	// fresh snapshot when another writer got in between, so it must not have
	// side effects. The written list is returned.
	UpdateEntries(ctx context.Context, sessionID string, fn func(current []*entity.Entry) ([]*entity.Entry, error)) ([]*entity.Entry, error)
}
