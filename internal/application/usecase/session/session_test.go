package session

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbon-tracker/backend/internal/application/adapter"
	"github.com/carbon-tracker/backend/internal/domain/entity"
	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
)

type fakeGuests struct {
	adapter.GuestStore
	flags map[string]bool
	err   error
}

func newFakeGuests() *fakeGuests {
	return &fakeGuests{flags: map[string]bool{}}
}

func (f *fakeGuests) IsGuest(_ context.Context, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.flags[id], nil
}

func (f *fakeGuests) SetGuest(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.flags[id] = true
	return nil
}

func (f *fakeGuests) ClearGuest(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.flags, id)
	return nil
}

type fakeTokens struct {
	adapter.TokenService
	userID      uuid.UUID
	invalidated []string
}

func (f *fakeTokens) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token != "valid" {
		return nil, domainerror.ErrInvalidToken
	}
	return &adapter.TokenClaims{UserID: f.userID, Email: "ada@example.com"}, nil
}

func (f *fakeTokens) InvalidateRefreshToken(_ context.Context, token string) error {
	f.invalidated = append(f.invalidated, token)
	return nil
}

type notifications []entity.Notification

func (n *notifications) Notify(item entity.Notification) { *n = append(*n, item) }

func TestResolve(t *testing.T) {
	guests := newFakeGuests()
	guests.flags["device-1"] = true
	tokens := &fakeTokens{userID: uuid.New()}
	uc := NewResolveUseCase(guests, tokens)
	ctx := context.Background()

	tests := []struct {
		name  string
		input ResolveInput
		want  entity.IdentityKind
	}{
		{"nothing", ResolveInput{}, entity.IdentityAnonymous},
		{"guest flag", ResolveInput{GuestSessionID: "device-1"}, entity.IdentityGuest},
		{"guest flag wins over token", ResolveInput{GuestSessionID: "device-1", AccessToken: "valid"}, entity.IdentityGuest},
		{"unknown guest falls through to token", ResolveInput{GuestSessionID: "device-2", AccessToken: "valid"}, entity.IdentityAuthenticated},
		{"invalid token", ResolveInput{AccessToken: "expired"}, entity.IdentityAnonymous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, uc.Execute(ctx, tt.input).Kind)
		})
	}

	t.Run("authenticated identity carries the user", func(t *testing.T) {
		identity := uc.Execute(ctx, ResolveInput{AccessToken: "valid"})
		assert.Equal(t, tokens.userID, identity.UserID)
		assert.Equal(t, "ada@example.com", identity.Email)
	})

	t.Run("guest store failure degrades", func(t *testing.T) {
		broken := newFakeGuests()
		broken.err = errors.New("redis down")
		identity := NewResolveUseCase(broken, tokens).Execute(ctx, ResolveInput{GuestSessionID: "device-1"})
		assert.True(t, identity.IsAnonymous())
	})
}

func TestSignInAsGuest(t *testing.T) {
	guests := newFakeGuests()
	uc := NewSignInAsGuestUseCase(guests)

	var notes notifications
	out, err := uc.Execute(context.Background(), &notes)
	require.NoError(t, err)

	assert.True(t, out.Identity.IsGuest())
	assert.True(t, guests.flags[out.Identity.GuestSessionID])
	require.Len(t, notes, 1)
	assert.Equal(t, "Welcome Guest!", notes[0].Title)

	t.Run("store failure", func(t *testing.T) {
		broken := newFakeGuests()
		broken.err = errors.New("redis down")

		_, err := NewSignInAsGuestUseCase(broken).Execute(context.Background(), nil)

		var authErr *domainerror.AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, domainerror.ErrCodeSessionStoreFailed, authErr.Code)
	})
}

func TestSignOut(t *testing.T) {
	ctx := context.Background()

	t.Run("guest", func(t *testing.T) {
		guests := newFakeGuests()
		guests.flags["device-1"] = true
		tokens := &fakeTokens{}
		uc := NewSignOutUseCase(guests, tokens)

		require.NoError(t, uc.Execute(ctx, SignOutInput{Identity: entity.GuestIdentity("device-1"), RefreshToken: "ignored"}))

		assert.False(t, guests.flags["device-1"])
		assert.Empty(t, tokens.invalidated)
	})

	t.Run("authenticated", func(t *testing.T) {
		tokens := &fakeTokens{}
		uc := NewSignOutUseCase(newFakeGuests(), tokens)

		var notes notifications
		err := uc.Execute(ctx, SignOutInput{
			Identity:     entity.AuthenticatedIdentity(uuid.New(), "ada@example.com"),
			RefreshToken: "refresh-1",
			Notifier:     &notes,
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"refresh-1"}, tokens.invalidated)
		require.Len(t, notes, 1)
		assert.Equal(t, "Signed out", notes[0].Title)
	})
}
