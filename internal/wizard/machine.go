package wizard

import (
	"fmt"
	"strings"
)

// Transition applies ev to s. It is pure: on error the returned state equals s
// and no effect is emitted. Async results whose token does not match the
// current generation are ignored without error.
func Transition(s State, ev Event) (State, []Effect, error) {
	switch e := ev.(type) {
	case SelectBusiness:
		return selectBusiness(s, e)
	case CatalogLoaded:
		return catalogLoaded(s, e), nil, nil
	case CatalogFailed:
		if !s.Loading || e.Token != s.Generation {
			return s, nil, nil
		}
		s.Loading = false
		s.LastError = e.Err
		return s, nil, nil
	case RetryCatalog:
		if s.Step != StepSelectBusiness || s.Draft.BusinessID == "" {
			return s, nil, ErrWrongStep
		}
		if s.Busy() {
			return s, nil, ErrBusy
		}
		return startLoad(s)
	case SelectService:
		return selectService(s, e)
	case SelectStaff:
		return selectStaff(s, e)
	case SetDate:
		return setField(s, func(d *Draft) { d.Date = strings.TrimSpace(e.Date) })
	case SetTime:
		return setField(s, func(d *Draft) { d.Time = strings.TrimSpace(e.Time) })
	case SetContact:
		return setField(s, func(d *Draft) {
			d.CustomerName = strings.TrimSpace(e.Name)
			d.CustomerEmail = strings.TrimSpace(e.Email)
			d.CustomerPhone = strings.TrimSpace(e.Phone)
		})
	case SetNotes:
		return setField(s, func(d *Draft) { d.Notes = e.Notes })
	case Submit:
		return submit(s)
	case SubmitSucceeded:
		if !s.Submitting || e.Token != s.Generation {
			return s, nil, nil
		}
		appointment := e.Appointment
		return State{
			Step:        StepConfirmed,
			Generation:  s.Generation,
			Appointment: &appointment,
		}, nil, nil
	case SubmitFailed:
		if !s.Submitting || e.Token != s.Generation {
			return s, nil, nil
		}
		s.Submitting = false
		s.LastError = e.Err
		return s, nil, nil
	case Back:
		return back(s)
	case Leave:
		// The counter survives so late results of the discarded draft stay stale.
		next := NewState()
		next.Generation = s.Generation + 1
		return next, nil, nil
	default:
		return s, nil, fmt.Errorf("%w: unknown event %T", ErrWrongStep, ev)
	}
}

func selectBusiness(s State, e SelectBusiness) (State, []Effect, error) {
	if s.Step != StepSelectBusiness {
		return s, nil, ErrWrongStep
	}
	if s.Submitting {
		return s, nil, ErrBusy
	}
	id := strings.TrimSpace(e.BusinessID)
	if id == "" {
		return s, nil, fmt.Errorf("%w: business is required", ErrValidation)
	}

	// A different business invalidates everything chosen after it.
	if id != s.Draft.BusinessID {
		s.Draft = Draft{BusinessID: id}
		s.Services = nil
		s.Staff = nil
	}
	// A load still in flight for the previous choice is superseded here.
	return startLoad(s)
}

func startLoad(s State) (State, []Effect, error) {
	s.Generation++
	s.Loading = true
	s.LastError = nil
	return s, []Effect{LoadCatalog{Token: s.Generation, BusinessID: s.Draft.BusinessID}}, nil
}

func catalogLoaded(s State, e CatalogLoaded) State {
	if !s.Loading || e.Token != s.Generation {
		return s
	}
	s.Loading = false
	s.LastError = nil
	s.Services = e.Services
	s.Staff = e.Staff
	s.Step = StepSelectService

	// Selections kept from an earlier visit must still exist in the fresh catalog.
	service, ok := s.service(s.Draft.ServiceID)
	if !ok {
		s.Draft.ServiceID = ""
		s.Draft.StaffID = ""
		return s
	}
	if m, ok := s.staffMember(s.Draft.StaffID); !ok || !m.Offers(service) {
		s.Draft.StaffID = ""
	}
	return s
}

func selectService(s State, e SelectService) (State, []Effect, error) {
	if s.Busy() {
		return s, nil, ErrBusy
	}
	if s.Step != StepSelectService {
		return s, nil, ErrWrongStep
	}
	service, ok := s.service(e.ServiceID)
	if !ok {
		return s, nil, fmt.Errorf("%w: unknown service %q", ErrValidation, e.ServiceID)
	}

	s.Draft.ServiceID = service.ID
	if m, ok := s.staffMember(s.Draft.StaffID); !ok || !m.Offers(service) {
		s.Draft.StaffID = ""
	}
	s.LastError = nil
	s.Step = StepSelectStaff
	return s, nil, nil
}

func selectStaff(s State, e SelectStaff) (State, []Effect, error) {
	if s.Busy() {
		return s, nil, ErrBusy
	}
	if s.Step != StepSelectStaff {
		return s, nil, ErrWrongStep
	}
	m, ok := s.staffMember(e.StaffID)
	if !ok {
		return s, nil, fmt.Errorf("%w: unknown staff member %q", ErrValidation, e.StaffID)
	}
	service, _ := s.service(s.Draft.ServiceID)
	if !m.Offers(service) {
		return s, nil, fmt.Errorf("%w: %s does not offer %s", ErrValidation, m.Name, service.Name)
	}

	s.Draft.StaffID = m.ID
	s.LastError = nil
	s.Step = StepDateTimeAndContact
	return s, nil, nil
}

func setField(s State, apply func(*Draft)) (State, []Effect, error) {
	if s.Submitting {
		return s, nil, ErrBusy
	}
	if s.Step != StepDateTimeAndContact {
		return s, nil, ErrWrongStep
	}
	apply(&s.Draft)
	return s, nil, nil
}

func submit(s State) (State, []Effect, error) {
	if s.Submitting {
		return s, nil, ErrBusy
	}
	if s.Step != StepDateTimeAndContact {
		return s, nil, ErrWrongStep
	}
	if missing := s.Draft.Missing(); len(missing) > 0 {
		return s, nil, fmt.Errorf("%w: %s required", ErrValidation, strings.Join(missing, ", "))
	}

	s.Generation++
	s.Submitting = true
	s.LastError = nil
	return s, []Effect{Reserve{Token: s.Generation, Draft: s.Draft}}, nil
}

func back(s State) (State, []Effect, error) {
	if s.Step == StepSelectBusiness || s.Step == StepConfirmed {
		return s, nil, ErrWrongStep
	}
	// A reservation cannot be withdrawn; its result must land.
	if s.Submitting {
		return s, nil, ErrBusy
	}
	s.LastError = nil
	s.Step--
	return s, nil, nil
}
