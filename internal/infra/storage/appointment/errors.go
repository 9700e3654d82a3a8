package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotConflict is returned when the exclusion constraint on a staff member's
	// active appointments rejects an insert or status change.
	ErrSlotConflict = errors.New("appointment.repository: slot overlaps an active appointment")

	ErrBuildQuery = errors.New("appointment.repository: failed to build query")
	ErrExecQuery  = errors.New("appointment.repository: failed to execute query")
	ErrScanRow    = errors.New("appointment.repository: failed to scan row")
)
