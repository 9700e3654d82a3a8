package get_available_slots

import "errors"

var (
	ErrBusinessNotFound         = errors.New("get_available_slots: business not found")
	ErrServiceNotFound          = errors.New("get_available_slots: service not found")
	ErrStaffNotFound            = errors.New("get_available_slots: staff member not found")
	ErrStaffDoesNotOfferService = errors.New("get_available_slots: staff member does not offer this service")
	ErrInvalidDate              = errors.New("get_available_slots: invalid date")
	ErrInvalidInput             = errors.New("get_available_slots: invalid input data")
	ErrInternal                 = errors.New("get_available_slots: internal error")
)
