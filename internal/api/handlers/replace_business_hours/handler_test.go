package replace_business_hours

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/hours"
	"github.com/m04kA/SMC-AppointmentService/internal/service/hours/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err     error
	lastReq *models.ReplaceHoursRequest
}

func (f *fakeService) Replace(_ context.Context, businessID, _ string, req *models.ReplaceHoursRequest) (*models.HoursResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.HoursResponse{BusinessID: businessID, Windows: req.Windows}, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/businesses/{businessId}/hours", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/businesses/b1/hours", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, "owner-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"windows":[{"weekday":6,"open":"10:00","close":"14:00"}]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.lastReq.Windows, 1)
	assert.Equal(t, 6, svc.lastReq.Windows[0].Weekday)
}

func TestHandleErrors(t *testing.T) {
	invalid := &fakeService{err: fmt.Errorf("%w: windows overlap", hours.ErrInvalidInput)}
	assert.Equal(t, http.StatusBadRequest, serve(invalid, `{"windows":[]}`).Code)
	assert.Equal(t, http.StatusForbidden, serve(&fakeService{err: hours.ErrAccessDenied}, `{"windows":[]}`).Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: hours.ErrBusinessNotFound}, `{"windows":[]}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, ``).Code)
}
