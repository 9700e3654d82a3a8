package get_business_customers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
}

func (f *fakeService) ListCustomers(_ context.Context, businessID, userID string) (*models.CustomerListResponse, error) {
	switch {
	case f.err != nil:
		return nil, f.err
	case businessID != "b1":
		return nil, appointments.ErrBusinessNotFound
	case userID != "owner-1":
		return nil, appointments.ErrAccessDenied
	}
	return &models.CustomerListResponse{Customers: []models.CustomerResponse{
		{ID: "c1", Name: "Jane", Email: ptr.Ptr("jane@example.com")},
	}}, nil
}

func serve(svc *fakeService, target, userID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/businesses/{businessId}/customers", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve(&fakeService{}, "/api/v1/businesses/b1/customers", "owner-1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"customers":[{"id":"c1","name":"Jane","email":"jane@example.com"}]}`, rec.Body.String())
}

func TestHandleErrors(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{}, "/api/v1/businesses/b9/customers", "owner-1").Code)
	assert.Equal(t, http.StatusForbidden, serve(&fakeService{}, "/api/v1/businesses/b1/customers", "stranger").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(&fakeService{}, "/api/v1/businesses/b1/customers", "").Code)
	assert.Equal(t, http.StatusInternalServerError,
		serve(&fakeService{err: errors.New("boom")}, "/api/v1/businesses/b1/customers", "owner-1").Code)
}
