package list_businesses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	resp *models.BusinessListResponse
	err  error
}

func (f fakeService) ListBusinesses(context.Context) (*models.BusinessListResponse, error) {
	return f.resp, f.err
}

func TestHandle(t *testing.T) {
	h := NewHandler(fakeService{resp: &models.BusinessListResponse{
		Businesses: []models.BusinessResponse{{ID: "b1", Name: "Bright Smile Dental", Type: "clinic"}},
	}}, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/businesses", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.BusinessListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Bright Smile Dental", body.Businesses[0].Name)
}

func TestHandleError(t *testing.T) {
	h := NewHandler(fakeService{err: errors.New("db down")}, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/businesses", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
