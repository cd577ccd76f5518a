// Package error defines domain-specific errors for the Carbon Tracker application.
package error

import "errors"

// Entry domain errors.
var (
	// ErrInvalidAmount is returned when an amount is not a finite number greater than zero.
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// ErrMissingEntryFields is returned when the activity type or date of an entry is missing.
	ErrMissingEntryFields = errors.New("activity type, amount and date are required")

	// ErrUnknownActivityType is returned when an entry references an activity type outside the catalog.
	ErrUnknownActivityType = errors.New("unknown activity type")

	// ErrAuthenticationRequired is returned when an anonymous session tries to write entries.
	ErrAuthenticationRequired = errors.New("please sign in to add entries")

	// ErrStoreUnavailable is returned when the backing store cannot be read or written.
	ErrStoreUnavailable = errors.New("entry store unavailable")

	// ErrEntryNotFound is returned when an entry lookup finds nothing.
	ErrEntryNotFound = errors.New("entry not found")
)

// EntryErrorCode defines error codes for entry errors.
// Format: ENT-XXYYYY where XX is category and YYYY is specific error.
type EntryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount          EntryErrorCode = "ENT-010001"
	ErrCodeMissingEntryFields     EntryErrorCode = "ENT-010002"
	ErrCodeUnknownActivityType    EntryErrorCode = "ENT-010003"
	ErrCodeAuthenticationRequired EntryErrorCode = "ENT-010004"

	// Store errors (02XXXX)
	ErrCodeStoreUnavailable EntryErrorCode = "ENT-020001"
	ErrCodeEntryNotFound    EntryErrorCode = "ENT-020002"
)

// EntryError is an entry store failure carrying a code and the user-facing message.
type EntryError struct {
	Code    EntryErrorCode
	Message string
	Err     error
}

func (e *EntryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// NewEntryError creates a new EntryError.
func NewEntryError(code EntryErrorCode, message string, err error) *EntryError {
	return &EntryError{Code: code, Message: message, Err: err}
}
