package errors

import "errors"

var (
	// ErrHoursNotFound means no weekly or date-specific hours exist for a
	// date. Callers treat this as closed, never as open.
	ErrHoursNotFound = errors.New("no service hours configured for date")

	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")
)
