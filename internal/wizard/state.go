package wizard

import "strings"

type Step int

const (
	StepSelectBusiness Step = iota + 1
	StepSelectService
	StepSelectStaff
	StepDateTimeAndContact
	StepConfirmed
)

func (s Step) String() string {
	switch s {
	case StepSelectBusiness:
		return "select_business"
	case StepSelectService:
		return "select_service"
	case StepSelectStaff:
		return "select_staff"
	case StepDateTimeAndContact:
		return "date_time_contact"
	case StepConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Draft is the in-progress selection. Fields are filled in step order.
type Draft struct {
	BusinessID    string
	ServiceID     string
	StaffID       string
	Date          string
	Time          string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
}

// Missing lists the empty fields required for submission.
func (d Draft) Missing() []string {
	required := []struct {
		name  string
		value string
	}{
		{"businessId", d.BusinessID},
		{"serviceId", d.ServiceID},
		{"date", d.Date},
		{"time", d.Time},
		{"customerName", d.CustomerName},
		{"customerEmail", d.CustomerEmail},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

type Service struct {
	ID              string
	Name            string
	DurationMinutes int
	Price           string
	Category        string
}

type StaffMember struct {
	ID          string
	Name        string
	Specialties []string
}

// Offers reports whether the staff member can perform service: no
// specialties at all, or one matching the category or the name.
func (m StaffMember) Offers(service Service) bool {
	if len(m.Specialties) == 0 {
		return true
	}
	for _, sp := range m.Specialties {
		if (service.Category != "" && strings.EqualFold(sp, service.Category)) || strings.EqualFold(sp, service.Name) {
			return true
		}
	}
	return false
}

// Appointment is the confirmation reference returned by the reservation call.
type Appointment struct {
	ID          string
	Date        string
	StartTime   string
	EndTime     string
	Status      string
	ServiceName string
	StaffName   string
}

// State is an immutable snapshot of one wizard. Transition never mutates its argument.
type State struct {
	Step  Step
	Draft Draft

	// Generation is bumped whenever an in-flight operation is issued or superseded.
	Generation uint64
	Loading    bool
	Submitting bool

	Services    []Service
	Staff       []StaffMember
	Appointment *Appointment
	LastError   error
}

func NewState() State {
	return State{Step: StepSelectBusiness}
}

// Busy reports whether a catalog load or a submission is outstanding.
func (s State) Busy() bool {
	return s.Loading || s.Submitting
}

func (s State) service(id string) (Service, bool) {
	for _, sv := range s.Services {
		if sv.ID == id {
			return sv, true
		}
	}
	return Service{}, false
}

func (s State) staffMember(id string) (StaffMember, bool) {
	for _, m := range s.Staff {
		if m.ID == id {
			return m, true
		}
	}
	return StaffMember{}, false
}

// OfferingStaff returns the loaded staff members that offer the selected service.
func (s State) OfferingStaff() []StaffMember {
	service, ok := s.service(s.Draft.ServiceID)
	if !ok {
		return nil
	}
	out := make([]StaffMember, 0, len(s.Staff))
	for _, m := range s.Staff {
		if m.Offers(service) {
			out = append(out, m)
		}
	}
	return out
}
