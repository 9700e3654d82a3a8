package hours

import "errors"

var (
	ErrBusinessNotFound = errors.New("hours: business not found")
	ErrAccessDenied     = errors.New("hours: access denied")
	ErrInvalidInput     = errors.New("hours: invalid input data")
	ErrInternal         = errors.New("hours: internal error")
)
