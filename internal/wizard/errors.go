package wizard

import "errors"

var (
	ErrValidation   = errors.New("wizard: missing or invalid field")
	ErrNotFound     = errors.New("wizard: business, service or staff no longer exists")
	ErrSlotConflict = errors.New("wizard: the selected time is already booked")
	ErrTransient    = errors.New("wizard: service temporarily unavailable")

	// ErrBusy rejects selectors while a catalog load or a submission is in flight.
	ErrBusy = errors.New("wizard: operation in progress")

	ErrWrongStep = errors.New("wizard: event not allowed in current step")
)
