package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// slotParams describes one day of slot generation.
type slotParams struct {
	hours        *domain.BusinessHours
	date         time.Time
	now          time.Time
	duration     int
	step         int
	minNotice    int
	staff        []*domain.StaffMember
	appointments []*domain.Appointment
}

// generateSlots walks every opening window of the weekday in step increments
// and keeps a start when the whole service fits in the window. With candidate
// staff, a start is kept only if at least one of them has no active appointment
// overlapping [start, start+duration). Today's starts earlier than now plus the
// minimum notice are dropped.
func generateSlots(p slotParams) ([]domain.AvailableSlot, error) {
	slots := make([]domain.AvailableSlot, 0)

	var earliest types.TimeString
	if isSameDay(p.date, p.now) {
		minutes := p.now.Hour()*60 + p.now.Minute() + p.minNotice
		if p.now.Second() > 0 || p.now.Nanosecond() > 0 {
			minutes++
		}
		t, err := types.FromMinutes(minutes)
		if err != nil {
			// Notice pushes past midnight: nothing left today.
			return slots, nil
		}
		earliest = t
	}

	for _, window := range p.hours.For(p.date.Weekday()) {
		start := window.Open
		for start.IsBefore(window.Close) {
			end, err := start.AddMinutes(p.duration)
			if err != nil || end.IsAfter(window.Close) {
				break
			}

			if earliest.IsZero() || !start.IsBefore(earliest) {
				if free, ok := freeStaff(p.staff, p.appointments, start, end); ok {
					slots = append(slots, domain.AvailableSlot{StartTime: start, EndTime: end, StaffIDs: free})
				}
			}

			start, err = start.AddMinutes(p.step)
			if err != nil {
				break
			}
		}
	}
	return slots, nil
}

// freeStaff returns the candidates without an overlapping appointment.
// Without candidates every start is free.
func freeStaff(staff []*domain.StaffMember, appointments []*domain.Appointment, start, end types.TimeString) ([]string, bool) {
	if len(staff) == 0 {
		return []string{}, true
	}

	free := make([]string, 0, len(staff))
	for _, member := range staff {
		busy := false
		for _, a := range appointments {
			if a.StaffID == nil || *a.StaffID != member.ID || !a.IsActive() {
				continue
			}
			if a.Overlaps(start, end) {
				busy = true
				break
			}
		}
		if !busy {
			free = append(free, member.ID)
		}
	}
	return free, len(free) > 0
}
