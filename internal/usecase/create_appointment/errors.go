package create_appointment

import "errors"

var (
	// ErrInvalidInput is returned when a required field is missing or malformed
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	ErrBusinessNotFound = errors.New("create_appointment: business not found")
	ErrServiceNotFound  = errors.New("create_appointment: service not found")
	ErrStaffNotFound    = errors.New("create_appointment: staff member not found")

	// ErrStaffDoesNotOfferService is returned when the chosen staff member has
	// no specialty matching the service
	ErrStaffDoesNotOfferService = errors.New("create_appointment: staff member does not offer this service")

	// ErrInvalidTimeRange is returned when start plus duration crosses midnight
	ErrInvalidTimeRange = errors.New("create_appointment: appointment must end on the same day")

	ErrInvalidDate          = errors.New("create_appointment: date is in the past")
	ErrOutsideBusinessHours = errors.New("create_appointment: time is outside business hours")

	// ErrSlotConflict is returned when the interval overlaps an active
	// appointment of the staff member
	ErrSlotConflict = errors.New("create_appointment: slot is no longer available")

	ErrInternal = errors.New("create_appointment: internal error")
)
