// Package error defines domain-specific errors for the Carbon Tracker application.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal does not exist or belongs to someone else.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrInvalidTargetValue is returned when the target is not greater than zero.
	ErrInvalidTargetValue = errors.New("target value must be greater than zero")

	// ErrInvalidGoalPeriod is returned when the goal period is not daily, weekly or monthly.
	ErrInvalidGoalPeriod = errors.New("invalid goal period")

	// ErrMissingGoalTitle is returned when a goal has no title.
	ErrMissingGoalTitle = errors.New("goal title is required")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	ErrCodeGoalNotFound       GoalErrorCode = "GOL-010001"
	ErrCodeInvalidTargetValue GoalErrorCode = "GOL-010003"
	ErrCodeInvalidGoalPeriod  GoalErrorCode = "GOL-010007"
	ErrCodeMissingGoalFields  GoalErrorCode = "GOL-010008"

	ErrCodeGoalInternalError GoalErrorCode = "GOL-990001"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{Code: code, Message: message, Err: err}
}
