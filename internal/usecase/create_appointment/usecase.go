package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/events"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var tracer = otel.Tracer("smc.internal.usecase.create_appointment")

type UseCase struct {
	businessRepo    BusinessRepository
	catalogRepo     CatalogRepository
	customerRepo    CustomerRepository
	appointmentRepo AppointmentRepository
	hours           HoursProvider
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

func NewUseCase(
	businessRepo BusinessRepository,
	catalogRepo CatalogRepository,
	customerRepo CustomerRepository,
	appointmentRepo AppointmentRepository,
	hours HoursProvider,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &UseCase{
		businessRepo:    businessRepo,
		catalogRepo:     catalogRepo,
		customerRepo:    customerRepo,
		appointmentRepo: appointmentRepo,
		hours:           hours,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider replaces the clock. Used by tests.
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute reserves the slot described by req.
//
// The customer lookup, the overlap check and the insert run in one
// serializable transaction; the staff member's active appointments for the
// day are locked so concurrent submissions for the same staff serialize.
// When no staff member is requested the first free member offering the
// service is assigned.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := tracer.Start(ctx, "create_appointment.Execute")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	uc.logger.Info("CreateAppointment: business=%s, service=%s, staff=%v, date=%s, time=%s",
		req.BusinessID, req.ServiceID, req.StaffID, req.Date, req.Time)

	d, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("business.id", req.BusinessID),
		attribute.String("service.id", req.ServiceID),
	)

	if _, err := uc.businessRepo.GetByID(ctx, req.BusinessID); err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateAppointment: business id=%s not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get business id=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %w", ErrInternal, err)
	}

	service, err := uc.catalogRepo.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateAppointment: service id=%s is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	candidates, err := uc.candidateStaff(ctx, req, service)
	if err != nil {
		return nil, err
	}

	endTime, err := d.startTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateAppointment: %s + %d min crosses midnight", d.startTime, service.DurationMinutes)
		return nil, ErrInvalidTimeRange
	}

	now := uc.timeProvider.Now()
	if isDateInPast(d.date, now) {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date)
		return nil, ErrInvalidDate
	}
	if isSameDay(d.date, now) && d.startTime.IsBefore(types.NewTimeString(now)) {
		uc.logger.Warn("CreateAppointment: time %s today has already passed", d.startTime)
		return nil, ErrInvalidDate
	}

	hours, err := uc.hours.Resolve(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to resolve hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve hours: %w", ErrInternal, err)
	}
	if !hours.Fits(d.date.Weekday(), d.startTime, endTime) {
		uc.logger.Warn("CreateAppointment: %s-%s on %s is outside business hours",
			d.startTime, endTime, d.date.Weekday())
		return nil, ErrOutsideBusinessHours
	}

	var (
		created         *domain.Appointment
		customerCreated bool
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		customer, isNew, err := uc.customerRepo.FindOrCreate(txCtx, &domain.Customer{
			BusinessID: req.BusinessID,
			Name:       req.CustomerName,
			Email:      &req.CustomerEmail,
			Phone:      req.CustomerPhone,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to resolve customer: %v", err)
			return fmt.Errorf("%w: failed to resolve customer: %w", ErrInternal, err)
		}

		existing, err := uc.appointmentRepo.ListActiveForSlots(txCtx, req.BusinessID, req.StaffID, d.date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		staffID, err := pickStaff(candidates, existing, d.startTime, endTime)
		if err != nil {
			return err
		}

		appointment, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			BusinessID: req.BusinessID,
			CustomerID: customer.ID,
			StaffID:    staffID,
			ServiceID:  &service.ID,
			Date:       d.date,
			StartTime:  d.startTime,
			EndTime:    endTime,
			Status:     domain.StatusScheduled,
			Notes:      req.Notes,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotConflict) {
				return ErrSlotConflict
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		created = appointment
		customerCreated = isNew
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			uc.logger.Warn("CreateAppointment: slot %s %s-%s is taken", req.Date, d.startTime, endTime)
			uc.metrics.IncSlotConflicts()
			return nil, ErrSlotConflict
		}
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	uc.metrics.IncAppointmentsCreated()
	span.SetAttributes(attribute.String("appointment.id", created.ID))

	joined, err := uc.appointmentRepo.GetByID(ctx, created.ID)
	if err != nil {
		// The row is committed; answer with what the insert returned.
		uc.logger.Warn("CreateAppointment: failed to reload appointment id=%s: %v", created.ID, err)
		joined = created
	}

	uc.publish(ctx, joined, now)

	uc.logger.Info("CreateAppointment: created appointment id=%s, staff=%v, %s %s-%s",
		joined.ID, joined.StaffID, req.Date, joined.StartTime, joined.EndTime)

	return &Response{Appointment: joined, CustomerCreated: customerCreated}, nil
}

// candidateStaff maps the shared staff selection onto this use case's errors.
func (uc *UseCase) candidateStaff(ctx context.Context, req *Request, service *domain.Service) ([]*domain.StaffMember, error) {
	candidates, err := domain.CandidateStaff(ctx, uc.catalogRepo, service, req.StaffID)
	switch {
	case err == nil:
		return candidates, nil
	case errors.Is(err, catalogRepo.ErrStaffNotFound), errors.Is(err, domain.ErrStaffInactive):
		uc.logger.Warn("CreateAppointment: staff id=%s not found", ptr.Value(req.StaffID))
		return nil, ErrStaffNotFound
	case errors.Is(err, domain.ErrStaffDoesNotOffer):
		uc.logger.Warn("CreateAppointment: staff id=%s does not offer service id=%s", ptr.Value(req.StaffID), service.ID)
		return nil, ErrStaffDoesNotOfferService
	default:
		uc.logger.Error("CreateAppointment: failed to load staff: %v", err)
		return nil, fmt.Errorf("%w: failed to load staff: %w", ErrInternal, err)
	}
}

// pickStaff returns the first candidate free over [start, end). With no
// candidates the appointment stays unassigned.
func pickStaff(candidates []*domain.StaffMember, existing []*domain.Appointment, start, end types.TimeString) (*string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	for _, member := range candidates {
		if !hasOverlap(existing, member.ID, start, end) {
			id := member.ID
			return &id, nil
		}
	}
	return nil, ErrSlotConflict
}

// publish is best effort: the appointment is already committed.
func (uc *UseCase) publish(ctx context.Context, a *domain.Appointment, now time.Time) {
	event := events.NewAppointmentScheduled(uuid.NewString(), a, now)
	if err := uc.publisher.PublishAppointmentScheduled(ctx, event); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish event for appointment id=%s: %v", a.ID, err)
		trace.SpanFromContext(ctx).AddEvent("publish_failed")
	}
}
