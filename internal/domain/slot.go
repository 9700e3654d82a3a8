package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// AvailableSlot is a start time at which the service can be booked.
type AvailableSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	// StaffIDs lists staff members free for the whole slot. Empty when the
	// business has no staff offering the service.
	StaffIDs []string
}
