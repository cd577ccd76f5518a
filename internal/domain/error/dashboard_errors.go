// Package error defines domain-specific errors for the Carbon Tracker application.
package error

import "errors"

// Footprint query errors, shared by the footprint and dashboard endpoints.
var (
	ErrMissingStartDate  = errors.New("start_date is required")
	ErrMissingEndDate    = errors.New("end_date is required")
	ErrInvalidDateRange  = errors.New("end_date must not be before start_date")
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidLimit      = errors.New("limit must be an integer")
	ErrRangeTooLarge     = errors.New("date range must not exceed 366 days")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingStartDate  DashboardErrorCode = "DSH-010001"
	ErrCodeMissingEndDate    DashboardErrorCode = "DSH-010002"
	ErrCodeInvalidDateRange  DashboardErrorCode = "DSH-010003"
	ErrCodeInvalidDateFormat DashboardErrorCode = "DSH-010006"
	ErrCodeInvalidLimit      DashboardErrorCode = "DSH-010007"
	ErrCodeRangeTooLarge     DashboardErrorCode = "DSH-010008"

	// Internal errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DSH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{Code: code, Message: message, Err: err}
}
