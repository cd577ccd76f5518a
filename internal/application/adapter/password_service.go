// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordService hashes and verifies account passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) error
	ValidatePasswordStrength(password string) error
	// NeedsRehash reports whether hashedPassword was made with weaker settings
	// than the service currently uses.
	NeedsRehash(hashedPassword string) bool
}
