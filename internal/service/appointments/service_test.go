package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeAppointments struct {
	byID       map[string]*domain.Appointment
	lastFilter domain.AppointmentsFilter
	updateErr  error
	updates    int
}

func (f *fakeAppointments) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	if a, ok := f.byID[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (f *fakeAppointments) List(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.lastFilter = filter
	var out []*domain.Appointment
	for _, a := range f.byID {
		if a.BusinessID == filter.BusinessID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointments) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus) error {
	f.updates++
	if f.updateErr != nil {
		return f.updateErr
	}
	f.byID[id].Status = status
	return nil
}

type fakeCustomers struct {
	list []*domain.Customer
	err  error
}

func (f *fakeCustomers) ListByBusiness(_ context.Context, businessID string) ([]*domain.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Customer
	for _, c := range f.list {
		if c.BusinessID == businessID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeBusinesses map[string]*domain.Business

func (f fakeBusinesses) GetByID(_ context.Context, id string) (*domain.Business, error) {
	if b, ok := f[id]; ok {
		return b, nil
	}
	return nil, businessRepo.ErrBusinessNotFound
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newFixture() (*Service, *fakeAppointments) {
	repo := &fakeAppointments{byID: map[string]*domain.Appointment{
		"a1": {
			ID:         "a1",
			BusinessID: "b1",
			CustomerID: "c1",
			StaffID:    ptr.Ptr("st1"),
			Date:       time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC),
			StartTime:  "09:00",
			EndTime:    "10:00",
			Status:     domain.StatusScheduled,
			Customer:   &domain.Customer{ID: "c1", Name: "Jane", Email: ptr.Ptr("jane@example.com")},
			Staff:      &domain.StaffRef{ID: "st1", Name: "Dr. Adams"},
		},
	}}
	businesses := fakeBusinesses{"b1": {ID: "b1", OwnerID: "owner-1"}}
	customers := &fakeCustomers{list: []*domain.Customer{
		{ID: "c1", BusinessID: "b1", Name: "Jane", Email: ptr.Ptr("jane@example.com")},
		{ID: "c2", BusinessID: "b2", Name: "Other"},
	}}
	return NewService(repo, customers, businesses, inlineTx{}, nopLogger{}), repo
}

func TestGetByID(t *testing.T) {
	svc, _ := newFixture()

	resp, err := svc.GetByID(context.Background(), "a1", "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "2030-01-07", resp.Date)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "10:00", resp.EndTime)
	assert.Equal(t, "Jane", resp.Customer.Name)
	assert.Equal(t, "Dr. Adams", resp.Staff.Name)
	assert.Nil(t, resp.Service)

	_, err = svc.GetByID(context.Background(), "a1", "stranger")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), "missing", "owner-1")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListByBusiness(t *testing.T) {
	svc, repo := newFixture()
	date := time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)

	resp, err := svc.ListByBusiness(context.Background(), &models.ListAppointmentsRequest{
		BusinessID: "b1",
		UserID:     "owner-1",
		Date:       &date,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)
	assert.Equal(t, &date, repo.lastFilter.Date)
	assert.False(t, repo.lastFilter.IncludeInactive)

	_, err = svc.ListByBusiness(context.Background(), &models.ListAppointmentsRequest{BusinessID: "nope", UserID: "owner-1"})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestListByBusinessEmptyIsNotNil(t *testing.T) {
	svc, repo := newFixture()
	delete(repo.byID, "a1")

	resp, err := svc.ListByBusiness(context.Background(), &models.ListAppointmentsRequest{BusinessID: "b1", UserID: "owner-1"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Appointments)
	assert.Empty(t, resp.Appointments)
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	svc, repo := newFixture()
	ctx := context.Background()

	for _, next := range []domain.AppointmentStatus{domain.StatusConfirmed, domain.StatusInProgress, domain.StatusCompleted} {
		resp, err := svc.UpdateStatus(ctx, "a1", &models.UpdateStatusRequest{UserID: "owner-1", Status: string(next)})
		require.NoError(t, err)
		assert.Equal(t, string(next), resp.Status)
	}

	_, err := svc.UpdateStatus(ctx, "a1", &models.UpdateStatusRequest{UserID: "owner-1", Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 3, repo.updates)
}

func TestUpdateStatusErrors(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		userID    string
		status    string
		updateErr error
		wantErr   error
	}{
		{name: "unknown status", id: "a1", userID: "owner-1", status: "archived", wantErr: ErrInvalidInput},
		{name: "not owner", id: "a1", userID: "stranger", status: "confirmed", wantErr: ErrAccessDenied},
		{name: "not found", id: "missing", userID: "owner-1", status: "confirmed", wantErr: ErrAppointmentNotFound},
		{name: "back to scheduled", id: "a1", userID: "owner-1", status: "scheduled", wantErr: ErrInvalidTransition},
		{name: "slot conflict", id: "a1", userID: "owner-1", status: "confirmed", updateErr: appointmentRepo.ErrSlotConflict, wantErr: ErrSlotConflict},
		{name: "repository failure", id: "a1", userID: "owner-1", status: "confirmed", updateErr: errors.New("boom"), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newFixture()
			repo.updateErr = tt.updateErr

			_, err := svc.UpdateStatus(context.Background(), tt.id, &models.UpdateStatusRequest{UserID: tt.userID, Status: tt.status})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCancel(t *testing.T) {
	svc, repo := newFixture()

	resp, err := svc.Cancel(context.Background(), "a1", "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, domain.StatusCancelled, repo.byID["a1"].Status)

	_, err = svc.Cancel(context.Background(), "a1", "owner-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestListCustomers(t *testing.T) {
	svc, _ := newFixture()

	resp, err := svc.ListCustomers(context.Background(), "b1", "owner-1")
	require.NoError(t, err)
	require.Len(t, resp.Customers, 1)
	assert.Equal(t, "Jane", resp.Customers[0].Name)
	assert.Equal(t, "jane@example.com", ptr.Value(resp.Customers[0].Email))

	_, err = svc.ListCustomers(context.Background(), "b1", "stranger")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ListCustomers(context.Background(), "nope", "owner-1")
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestListCustomersRepositoryError(t *testing.T) {
	repo := &fakeAppointments{byID: map[string]*domain.Appointment{}}
	svc := NewService(repo, &fakeCustomers{err: errors.New("connection reset")},
		fakeBusinesses{"b1": {ID: "b1", OwnerID: "owner-1"}}, inlineTx{}, nopLogger{})

	_, err := svc.ListCustomers(context.Background(), "b1", "owner-1")
	assert.ErrorIs(t, err, ErrInternal)
}
