package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgPastDate           = "the selected date or time has already passed"
	msgBusinessNotFound   = "business not found"
	msgServiceNotFound    = "service not found"
	msgStaffNotFound      = "staff member not found"
	msgStaffDoesNotOffer  = "staff member does not offer this service"
	msgInvalidTimeRange   = "appointment must end on the same day"
	msgOutsideHours       = "the selected time is outside business hours"
	msgSlotConflict       = "the selected time slot is no longer available"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if msg, ok := malformedReference(&req); ok {
		h.logger.Warn("POST /appointments - Malformed id: business_id=%s, service_id=%s, staff_id=%v",
			req.BusinessID, req.ServiceID, req.StaffID)
		handlers.RespondNotFound(w, msg)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Validation failed: business_id=%s, error=%v", req.BusinessID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Past date: business_id=%s, date=%s", req.BusinessID, req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createAppointment.ErrBusinessNotFound):
			h.logger.Warn("POST /appointments - Business not found: business_id=%s", req.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: business_id=%s, service_id=%s", req.BusinessID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: business_id=%s", req.BusinessID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrStaffDoesNotOfferService):
			h.logger.Warn("POST /appointments - Staff does not offer service: business_id=%s, service_id=%s",
				req.BusinessID, req.ServiceID)
			handlers.RespondUnprocessable(w, msgStaffDoesNotOffer)

		case errors.Is(err, createAppointment.ErrInvalidTimeRange):
			h.logger.Warn("POST /appointments - Crosses midnight: business_id=%s, time=%s", req.BusinessID, req.Time)
			handlers.RespondUnprocessable(w, msgInvalidTimeRange)

		case errors.Is(err, createAppointment.ErrOutsideBusinessHours):
			h.logger.Warn("POST /appointments - Outside business hours: business_id=%s, date=%s, time=%s",
				req.BusinessID, req.Date, req.Time)
			handlers.RespondUnprocessable(w, msgOutsideHours)

		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: business_id=%s, date=%s, time=%s",
				req.BusinessID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotConflict)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: business_id=%s, error=%v", req.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%s, business_id=%s",
		result.Appointment.ID, req.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainAppointment(result.Appointment))
}

// malformedReference reports the first referenced id that cannot exist.
func malformedReference(req *CreateAppointmentRequest) (string, bool) {
	switch {
	case handlers.IsMalformedID(req.BusinessID):
		return msgBusinessNotFound, true
	case handlers.IsMalformedID(req.ServiceID):
		return msgServiceNotFound, true
	case req.StaffID != nil && handlers.IsMalformedID(*req.StaffID):
		return msgStaffNotFound, true
	}
	return "", false
}
