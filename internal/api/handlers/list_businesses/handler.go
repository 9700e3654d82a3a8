package list_businesses

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

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

// Handle GET /api/v1/businesses
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListBusinesses(r.Context())
	if err != nil {
		h.logger.Error("GET /businesses - Failed to list businesses: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses - Listed %d businesses", len(resp.Businesses))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
