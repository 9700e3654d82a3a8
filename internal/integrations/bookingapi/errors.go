package bookingapi

import "errors"

var (
	// ErrValidation is returned for 400 and 422 responses.
	ErrValidation = errors.New("bookingapi: request rejected")

	ErrNotFound     = errors.New("bookingapi: not found")
	ErrSlotConflict = errors.New("bookingapi: slot already taken")

	// ErrTransient covers network failures, timeouts and 5xx responses. Safe to retry.
	ErrTransient = errors.New("bookingapi: service unavailable")

	ErrInvalidResponse = errors.New("bookingapi: invalid response")
)
