// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/google/uuid"

// IdentityKind is the tri-state identity signal.
type IdentityKind string

const (
	IdentityAnonymous     IdentityKind = "none"
	IdentityGuest         IdentityKind = "guest"
	IdentityAuthenticated IdentityKind = "authenticated"
)

// Identity describes who the current session belongs to.
type Identity struct {
	Kind           IdentityKind
	UserID         uuid.UUID // Authenticated only
	Email          string    // Authenticated only
	GuestSessionID string    // Guest only
}

// AnonymousIdentity returns the identity of a session with neither a guest flag nor a remote session.
func AnonymousIdentity() Identity {
	return Identity{Kind: IdentityAnonymous}
}

// GuestIdentity returns a guest identity for the given device session.
func GuestIdentity(sessionID string) Identity {
	return Identity{Kind: IdentityGuest, GuestSessionID: sessionID}
}

// AuthenticatedIdentity returns a signed-in identity.
func AuthenticatedIdentity(userID uuid.UUID, email string) Identity {
	return Identity{Kind: IdentityAuthenticated, UserID: userID, Email: email}
}

// IsGuest reports whether the identity is a guest session.
func (i Identity) IsGuest() bool {
	return i.Kind == IdentityGuest
}

// IsAuthenticated reports whether the identity is a signed-in user.
func (i Identity) IsAuthenticated() bool {
	return i.Kind == IdentityAuthenticated
}

// IsAnonymous reports whether nobody is signed in.
func (i Identity) IsAnonymous() bool {
	return i.Kind == "" || i.Kind == IdentityAnonymous
}

// OwnerID returns the entry owner id for this identity.
func (i Identity) OwnerID() string {
	switch i.Kind {
	case IdentityAuthenticated:
		return i.UserID.String()
	case IdentityGuest:
		return GuestUserID
	default:
		return ""
	}
}
