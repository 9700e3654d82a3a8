package wizard

// Event is an input of Transition.
type Event interface {
	isEvent()
}

type SelectBusiness struct{ BusinessID string }

type CatalogLoaded struct {
	Token    uint64
	Services []Service
	Staff    []StaffMember
}

type CatalogFailed struct {
	Token uint64
	Err   error
}

type RetryCatalog struct{}

type SelectService struct{ ServiceID string }

type SelectStaff struct{ StaffID string }

type SetDate struct{ Date string }

type SetTime struct{ Time string }

type SetContact struct {
	Name  string
	Email string
	Phone string
}

type SetNotes struct{ Notes string }

type Submit struct{}

type SubmitSucceeded struct {
	Token       uint64
	Appointment Appointment
}

type SubmitFailed struct {
	Token uint64
	Err   error
}

type Back struct{}

type Leave struct{}

func (SelectBusiness) isEvent()  {}
func (CatalogLoaded) isEvent()   {}
func (CatalogFailed) isEvent()   {}
func (RetryCatalog) isEvent()    {}
func (SelectService) isEvent()   {}
func (SelectStaff) isEvent()     {}
func (SetDate) isEvent()         {}
func (SetTime) isEvent()         {}
func (SetContact) isEvent()      {}
func (SetNotes) isEvent()        {}
func (Submit) isEvent()          {}
func (SubmitSucceeded) isEvent() {}
func (SubmitFailed) isEvent()    {}
func (Back) isEvent()            {}
func (Leave) isEvent()           {}

// Effect is a side effect requested by Transition and executed by Session.
type Effect interface {
	isEffect()
}

// LoadCatalog asks for the services and staff of a business.
type LoadCatalog struct {
	Token      uint64
	BusinessID string
}

// Reserve asks for one reservation of Draft.
type Reserve struct {
	Token uint64
	Draft Draft
}

func (LoadCatalog) isEffect() {}
func (Reserve) isEffect()     {}
