package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

type fakeStore struct {
	businesses   map[string]*domain.Business
	services     map[string]*domain.Service
	staff        []*domain.StaffMember
	appointments []*domain.Appointment
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*domain.Business, error) {
	if b, ok := f.businesses[id]; ok {
		return b, nil
	}
	return nil, businessRepo.ErrBusinessNotFound
}

func (f *fakeStore) GetService(_ context.Context, _, serviceID string) (*domain.Service, error) {
	if s, ok := f.services[serviceID]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f *fakeStore) GetStaff(_ context.Context, _, staffID string) (*domain.StaffMember, error) {
	for _, s := range f.staff {
		if s.ID == staffID {
			return s, nil
		}
	}
	return nil, catalogRepo.ErrStaffNotFound
}

func (f *fakeStore) ListStaff(context.Context, string) ([]*domain.StaffMember, error) {
	return f.staff, nil
}

func (f *fakeStore) ListActiveForSlots(_ context.Context, _ string, staffID *string, _ time.Time) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range f.appointments {
		if staffID != nil && (a.StaffID == nil || *a.StaffID != *staffID) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeStore) Resolve(_ context.Context, businessID string) (*domain.BusinessHours, error) {
	return &domain.BusinessHours{BusinessID: businessID, Windows: domain.DefaultHours(), IsDefault: true}, nil
}

// 2030-01-07 is a Monday.
var monday = time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)

func newStore() *fakeStore {
	return &fakeStore{
		businesses: map[string]*domain.Business{"b1": {ID: "b1", Name: "Bright Smile Dental"}},
		services: map[string]*domain.Service{
			"s1":   {ID: "s1", BusinessID: "b1", Name: "Cleaning", DurationMinutes: 60, Category: ptr.Ptr("Dental"), IsActive: true},
			"s30":  {ID: "s30", BusinessID: "b1", Name: "Checkup", DurationMinutes: 30, IsActive: true},
			"spa":  {ID: "spa", BusinessID: "b1", Name: "Massage", DurationMinutes: 30, Category: ptr.Ptr("Spa"), IsActive: true},
			"gone": {ID: "gone", BusinessID: "b1", Name: "Old", DurationMinutes: 30, IsActive: false},
		},
		staff: []*domain.StaffMember{
			{ID: "st1", BusinessID: "b1", Name: "Dr. Lee", Specialties: []string{"Dental"}, IsActive: true},
		},
	}
}

func newUseCase(store *fakeStore, now time.Time, minNotice int) *UseCase {
	return NewUseCase(store, store, store, store, Options{SlotStepMinutes: 30, MinNoticeMinutes: minNotice}, nopLogger{}).
		WithTimeProvider(fixedClock(now))
}

func starts(slots []domain.AvailableSlot) []types.TimeString {
	out := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime)
	}
	return out
}

func TestDefaultHoursReproduceLegacyList(t *testing.T) {
	uc := newUseCase(newStore(), monday.AddDate(0, 0, -3), 0)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: "b1", ServiceID: "s30", Date: monday})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{
		"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
	}, starts(resp.Slots))
}

func TestSlotsRespectDurationAndAppointments(t *testing.T) {
	store := newStore()
	store.appointments = []*domain.Appointment{
		{ID: "a1", StaffID: ptr.Ptr("st1"), StartTime: "09:00", EndTime: "10:00", Status: domain.StatusScheduled},
		{ID: "a2", StaffID: ptr.Ptr("st1"), StartTime: "13:00", EndTime: "14:00", Status: domain.StatusCancelled},
	}
	uc := newUseCase(store, monday.AddDate(0, 0, -1), 0)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID: "b1", ServiceID: "s1", StaffID: ptr.Ptr("st1"), Date: monday,
	})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, []types.TimeString{
		"10:00", "10:30", "11:00",
		"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00",
	}, starts(resp.Slots))
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[2].StartTime)
	assert.Equal(t, types.TimeString("12:00"), resp.Slots[2].EndTime)
	assert.Equal(t, []string{"st1"}, resp.Slots[0].StaffIDs)
}

func TestSlotsWithoutStaffUseAnyOfferingMember(t *testing.T) {
	store := newStore()
	store.staff = append(store.staff, &domain.StaffMember{ID: "st2", BusinessID: "b1", Name: "Sam", IsActive: true})
	store.appointments = []*domain.Appointment{
		{ID: "a1", StaffID: ptr.Ptr("st1"), StartTime: "09:00", EndTime: "10:00", Status: domain.StatusConfirmed},
		{ID: "a2", StaffID: ptr.Ptr("st2"), StartTime: "09:00", EndTime: "09:30", Status: domain.StatusScheduled},
	}
	uc := newUseCase(store, monday.AddDate(0, 0, -1), 0)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: "b1", ServiceID: "s1", Date: monday})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("09:30"), resp.Slots[0].StartTime)
	assert.Equal(t, []string{"st2"}, resp.Slots[0].StaffIDs)
	assert.Equal(t, []string{"st1", "st2"}, resp.Slots[1].StaffIDs)
}

func TestTodayHonoursMinimumNotice(t *testing.T) {
	uc := newUseCase(newStore(), monday.Add(10*time.Hour+10*time.Minute), 30)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: "b1", ServiceID: "s30", Date: monday})
	require.NoError(t, err)

	got := starts(resp.Slots)
	require.NotEmpty(t, got)
	assert.Equal(t, types.TimeString("11:00"), got[0])
}

func TestClosedDayHasNoSlots(t *testing.T) {
	uc := newUseCase(newStore(), monday, 0)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: "b1", ServiceID: "s30", Date: monday.AddDate(0, 0, 5)})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestSlotErrors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"missing service", Request{BusinessID: "b1", Date: monday}, ErrInvalidInput},
		{"past date", Request{BusinessID: "b1", ServiceID: "s1", Date: monday.AddDate(0, 0, -1)}, ErrInvalidDate},
		{"unknown business", Request{BusinessID: "bx", ServiceID: "s1", Date: monday}, ErrBusinessNotFound},
		{"unknown service", Request{BusinessID: "b1", ServiceID: "sx", Date: monday}, ErrServiceNotFound},
		{"inactive service", Request{BusinessID: "b1", ServiceID: "gone", Date: monday}, ErrServiceNotFound},
		{"unknown staff", Request{BusinessID: "b1", ServiceID: "s1", StaffID: ptr.Ptr("nobody"), Date: monday}, ErrStaffNotFound},
		{"staff mismatch", Request{BusinessID: "b1", ServiceID: "spa", StaffID: ptr.Ptr("st1"), Date: monday}, ErrStaffDoesNotOfferService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(newStore(), monday, 0)
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
