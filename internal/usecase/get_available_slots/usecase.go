package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type Options struct {
	SlotStepMinutes  int
	MinNoticeMinutes int
}

type UseCase struct {
	businessRepo    BusinessRepository
	catalogRepo     CatalogRepository
	appointmentRepo AppointmentRepository
	hours           HoursProvider
	opts            Options
	timeProvider    TimeProvider
	logger          Logger
}

func NewUseCase(
	businessRepo BusinessRepository,
	catalogRepo CatalogRepository,
	appointmentRepo AppointmentRepository,
	hours HoursProvider,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.SlotStepMinutes <= 0 {
		opts.SlotStepMinutes = domain.DefaultSlotStepMinutes
	}
	return &UseCase{
		businessRepo:    businessRepo,
		catalogRepo:     catalogRepo,
		appointmentRepo: appointmentRepo,
		hours:           hours,
		opts:            opts,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider replaces the clock. Used by tests.
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute lists the start times at which the service can be booked on the date.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%s, service=%s, staff=%v, date=%s",
		req.BusinessID, req.ServiceID, req.StaffID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	if _, err := uc.businessRepo.GetByID(ctx, req.BusinessID); err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%s not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %w", ErrInternal, err)
	}

	service, err := uc.catalogRepo.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%s is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	candidates, err := uc.candidateStaff(ctx, req, service)
	if err != nil {
		return nil, err
	}

	hours, err := uc.hours.Resolve(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve hours: %w", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.ListActiveForSlots(ctx, req.BusinessID, req.StaffID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}

	slots, err := generateSlots(slotParams{
		hours:        hours,
		date:         req.Date,
		now:          now,
		duration:     service.DurationMinutes,
		step:         uc.opts.SlotStepMinutes,
		minNotice:    uc.opts.MinNoticeMinutes,
		staff:        candidates,
		appointments: appointments,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %w", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for business=%s, service=%s, date=%s",
		len(slots), req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		BusinessID:      req.BusinessID,
		ServiceID:       req.ServiceID,
		StaffID:         req.StaffID,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}

// candidateStaff maps the shared staff selection onto this use case's errors.
func (uc *UseCase) candidateStaff(ctx context.Context, req *Request, service *domain.Service) ([]*domain.StaffMember, error) {
	candidates, err := domain.CandidateStaff(ctx, uc.catalogRepo, service, req.StaffID)
	switch {
	case err == nil:
		return candidates, nil
	case errors.Is(err, catalogRepo.ErrStaffNotFound), errors.Is(err, domain.ErrStaffInactive):
		uc.logger.Warn("GetAvailableSlots: staff id=%s not found", ptr.Value(req.StaffID))
		return nil, ErrStaffNotFound
	case errors.Is(err, domain.ErrStaffDoesNotOffer):
		uc.logger.Warn("GetAvailableSlots: staff id=%s does not offer service id=%s", ptr.Value(req.StaffID), service.ID)
		return nil, ErrStaffDoesNotOfferService
	default:
		uc.logger.Error("GetAvailableSlots: failed to load staff: %v", err)
		return nil, fmt.Errorf("%w: failed to load staff: %w", ErrInternal, err)
	}
}
