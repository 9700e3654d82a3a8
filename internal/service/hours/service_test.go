package hours

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	"github.com/m04kA/SMC-AppointmentService/internal/service/hours/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeHoursRepo struct {
	windows  map[string][]domain.HoursWindow
	getErr   error
	replaced int
}

func (f *fakeHoursRepo) Get(_ context.Context, businessID string) ([]domain.HoursWindow, error) {
	return f.windows[businessID], f.getErr
}

func (f *fakeHoursRepo) Replace(_ context.Context, businessID string, windows []domain.HoursWindow) error {
	f.replaced++
	f.windows[businessID] = windows
	return nil
}

type fakeBusinessRepo map[string]*domain.Business

func (f fakeBusinessRepo) GetByID(_ context.Context, id string) (*domain.Business, error) {
	if b, ok := f[id]; ok {
		return b, nil
	}
	return nil, businessRepo.ErrBusinessNotFound
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService(repo *fakeHoursRepo) *Service {
	businesses := fakeBusinessRepo{"b1": {ID: "b1", OwnerID: "owner-1"}}
	return NewService(repo, businesses, inlineTx{}, nil, nopLogger{})
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	svc := newService(&fakeHoursRepo{windows: map[string][]domain.HoursWindow{}})

	h, err := svc.Resolve(context.Background(), "b1")
	require.NoError(t, err)
	assert.True(t, h.IsDefault)
	assert.True(t, h.Fits(time.Wednesday, "09:00", "10:00"))
	assert.False(t, h.IsOpen(time.Saturday))
}

func TestResolveUsesStoredTable(t *testing.T) {
	repo := &fakeHoursRepo{windows: map[string][]domain.HoursWindow{
		"b1": {{Weekday: time.Saturday, Open: "10:00", Close: "14:00"}},
	}}
	svc := newService(repo)

	h, err := svc.Resolve(context.Background(), "b1")
	require.NoError(t, err)
	assert.False(t, h.IsDefault)
	assert.True(t, h.IsOpen(time.Saturday))
	assert.False(t, h.IsOpen(time.Monday))
}

func TestResolveRepositoryError(t *testing.T) {
	svc := newService(&fakeHoursRepo{getErr: errors.New("db down")})

	_, err := svc.Resolve(context.Background(), "b1")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestReplace(t *testing.T) {
	repo := &fakeHoursRepo{windows: map[string][]domain.HoursWindow{}}
	svc := newService(repo)

	resp, err := svc.Replace(context.Background(), "b1", "owner-1", &models.ReplaceHoursRequest{
		Windows: []models.WindowDTO{
			{Weekday: 6, Open: "10:00 AM", Close: "2:00 PM"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.replaced)
	assert.False(t, resp.IsDefault)
	assert.Equal(t, []models.WindowDTO{{Weekday: 6, Open: "10:00", Close: "14:00"}}, resp.Windows)
}

func TestReplaceRejectsNonOwner(t *testing.T) {
	repo := &fakeHoursRepo{windows: map[string][]domain.HoursWindow{}}
	svc := newService(repo)

	_, err := svc.Replace(context.Background(), "b1", "intruder", &models.ReplaceHoursRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, repo.replaced)
}

func TestReplaceRejectsInvalidWindows(t *testing.T) {
	repo := &fakeHoursRepo{windows: map[string][]domain.HoursWindow{}}
	svc := newService(repo)

	_, err := svc.Replace(context.Background(), "b1", "owner-1", &models.ReplaceHoursRequest{
		Windows: []models.WindowDTO{{Weekday: 1, Open: "17:00", Close: "09:00"}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Replace(context.Background(), "b1", "owner-1", &models.ReplaceHoursRequest{
		Windows: []models.WindowDTO{{Weekday: 9, Open: "09:00", Close: "17:00"}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, repo.replaced)
}

func TestGetUnknownBusiness(t *testing.T) {
	svc := newService(&fakeHoursRepo{windows: map[string][]domain.HoursWindow{}})

	_, err := svc.Get(context.Background(), "nope", "owner-1")
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}
