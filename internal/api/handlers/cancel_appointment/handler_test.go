package cancel_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
}

func (f fakeService) Cancel(_ context.Context, id, _ string) (*models.AppointmentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: "cancelled"}, nil
}

func serve(svc fakeService) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/appointments/{appointmentId}/cancel", NewHandler(svc, nopLogger{}).Handle)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/a1/cancel", nil)
	req.Header.Set(middleware.UserIDHeader, "owner-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve(fakeService{})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)

	assert.Equal(t, http.StatusUnprocessableEntity, serve(fakeService{err: appointments.ErrInvalidTransition}).Code)
	assert.Equal(t, http.StatusNotFound, serve(fakeService{err: appointments.ErrAppointmentNotFound}).Code)
	assert.Equal(t, http.StatusForbidden, serve(fakeService{err: appointments.ErrAccessDenied}).Code)
}
