package replace_business_hours

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/hours"
	"github.com/m04kA/SMC-AppointmentService/internal/service/hours/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgBusinessNotFound   = "business not found"
	msgMissingUserID      = "missing user ID"
	msgForbidden          = "access denied"
)

type Handler struct {
	service HoursService
	logger  Logger
}

func NewHandler(service HoursService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/businesses/{businessId}/hours
// An empty windows list resets the business to the default table.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID := mux.Vars(r)["businessId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /businesses/{id}/hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.ReplaceHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Replace(r.Context(), businessID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, hours.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{id}/hours - Invalid hours: business_id=%s, error=%v", businessID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, hours.ErrBusinessNotFound):
			h.logger.Warn("PUT /businesses/{id}/hours - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, hours.ErrAccessDenied):
			h.logger.Warn("PUT /businesses/{id}/hours - Access denied: business_id=%s, user_id=%s", businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /businesses/{id}/hours - Failed to replace hours: business_id=%s, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/hours - Hours replaced: business_id=%s, windows=%d", businessID, len(resp.Windows))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
