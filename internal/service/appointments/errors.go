package appointments

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")
	ErrBusinessNotFound    = errors.New("appointments: business not found")

	// ErrAccessDenied is returned when the user does not own the business
	ErrAccessDenied = errors.New("appointments: access denied")

	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInvalidTransition is returned when the lifecycle forbids the status change
	ErrInvalidTransition = errors.New("appointments: status transition is not allowed")

	// ErrSlotConflict is returned when reactivating would overlap another appointment
	ErrSlotConflict = errors.New("appointments: slot overlaps an active appointment")

	ErrInternal = errors.New("appointments: internal error")
)
