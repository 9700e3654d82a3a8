package list_services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct{}

func (fakeService) ListServices(_ context.Context, businessID string) (*models.ServiceListResponse, error) {
	switch businessID {
	case "b1":
		return &models.ServiceListResponse{Services: []models.ServiceResponse{
			{ID: "s1", BusinessID: "b1", Name: "Teeth Cleaning", DurationMinutes: 60, Price: decimal.RequireFromString("120.00")},
		}}, nil
	case "broken":
		return nil, fmt.Errorf("%w: boom", catalog.ErrInternal)
	}
	return nil, catalog.ErrBusinessNotFound
}

func serve(path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/businesses/{businessId}/services", NewHandler(fakeService{}, nopLogger{}).Handle)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve("/api/v1/businesses/b1/services")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Services []struct {
			Name  string `json:"name"`
			Price string `json:"price"`
		} `json:"services"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Services, 1)
	assert.Equal(t, "Teeth Cleaning", body.Services[0].Name)
	assert.Equal(t, "120", body.Services[0].Price)
}

func TestHandleErrors(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, serve("/api/v1/businesses/nope/services").Code)
	assert.Equal(t, http.StatusInternalServerError, serve("/api/v1/businesses/broken/services").Code)
}
