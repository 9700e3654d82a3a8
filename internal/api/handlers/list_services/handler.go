package list_services

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog"
)

const msgBusinessNotFound = "business not found"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	resp, err := h.service.ListServices(r.Context(), businessID)
	if err != nil {
		if errors.Is(err, catalog.ErrBusinessNotFound) {
			h.logger.Warn("GET /businesses/{id}/services - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)
			return
		}
		h.logger.Error("GET /businesses/{id}/services - Failed to list services: business_id=%s, error=%v", businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/services - Listed %d services: business_id=%s", len(resp.Services), businessID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
