// Package error defines domain-specific errors for the Carbon Tracker application.
package error

import "errors"

var (
	// ErrProfileFieldTooLong is returned when a profile field exceeds its maximum length.
	ErrProfileFieldTooLong = errors.New("profile field is too long")
)

// ProfileErrorCode defines error codes for profile errors.
type ProfileErrorCode string

const (
	ErrCodeProfileFieldTooLong  ProfileErrorCode = "PRF-010001"
	ErrCodeProfileInternalError ProfileErrorCode = "PRF-990001"
)

// ProfileError represents a profile error with code and message.
type ProfileError struct {
	Code    ProfileErrorCode
	Message string
	Err     error
}

func (e *ProfileError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ProfileError) Unwrap() error {
	return e.Err
}

// NewProfileError creates a new ProfileError.
func NewProfileError(code ProfileErrorCode, message string, err error) *ProfileError {
	return &ProfileError{Code: code, Message: message, Err: err}
}
