package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service serves the owner dashboard: reading appointments and moving them
// through their lifecycle. Every operation is restricted to the business owner.
type Service struct {
	appointmentRepo AppointmentRepository
	customerRepo    CustomerRepository
	businessRepo    BusinessRepository
	txManager       TransactionManager
	logger          Logger
}

func NewService(
	appointmentRepo AppointmentRepository,
	customerRepo CustomerRepository,
	businessRepo BusinessRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		customerRepo:    customerRepo,
		businessRepo:    businessRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

func (s *Service) GetByID(ctx context.Context, id, userID string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%s", id, userID)

	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, "GetByID", appointment.BusinessID, userID); err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appointment), nil
}

// ListByBusiness returns the appointments of a business, active ones only
// unless IncludeInactive is set.
func (s *Service) ListByBusiness(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListByBusiness: business=%s, user=%s, date=%v, includeInactive=%t",
		req.BusinessID, req.UserID, req.Date, req.IncludeInactive)

	if err := s.checkOwner(ctx, "ListByBusiness", req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	appointments, err := s.appointmentRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("ListByBusiness: repository error for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: ListByBusiness - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListByBusiness: fetched %d appointments for business=%s", len(appointments), req.BusinessID)
	return models.FromDomainAppointmentList(appointments), nil
}

// ListCustomers returns everyone who has booked with the business, by name.
func (s *Service) ListCustomers(ctx context.Context, businessID, userID string) (*models.CustomerListResponse, error) {
	s.logger.Info("ListCustomers: business=%s, user=%s", businessID, userID)

	if err := s.checkOwner(ctx, "ListCustomers", businessID, userID); err != nil {
		return nil, err
	}

	customers, err := s.customerRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("ListCustomers: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListCustomers - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListCustomers: fetched %d customers for business=%s", len(customers), businessID)
	return models.FromDomainCustomerList(customers), nil
}

// UpdateStatus moves the appointment to req.Status if the lifecycle allows it.
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%s to status=%s by user=%s", id, req.Status, req.UserID)

	next := domain.AppointmentStatus(req.Status)
	if !next.IsValid() {
		s.logger.Warn("UpdateStatus: invalid status=%q", req.Status)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	var updated *domain.Appointment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.getAppointment(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}
		if err := s.checkOwner(txCtx, "UpdateStatus", appointment.BusinessID, req.UserID); err != nil {
			return err
		}

		if !appointment.Status.CanTransitionTo(next) {
			s.logger.Warn("UpdateStatus: appointment id=%s cannot move from %s to %s", id, appointment.Status, next)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, next)
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, next); err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return ErrAppointmentNotFound
			case errors.Is(err, appointmentRepo.ErrSlotConflict):
				return ErrSlotConflict
			}
			s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
		}

		appointment.Status = next
		updated = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: appointment id=%s is now %s", id, next)
	return models.FromDomainAppointment(updated), nil
}

// Cancel is UpdateStatus to cancelled.
func (s *Service) Cancel(ctx context.Context, id, userID string) (*models.AppointmentResponse, error) {
	return s.UpdateStatus(ctx, id, &models.UpdateStatusRequest{
		UserID: userID,
		Status: string(domain.StatusCancelled),
	})
}

func (s *Service) getAppointment(ctx context.Context, op, id string) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return appointment, nil
}

func (s *Service) checkOwner(ctx context.Context, op, businessID, userID string) error {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("%s: business id=%s not found", op, businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("%s: failed to get business id=%s: %v", op, businessID, err)
		return fmt.Errorf("%w: %s - failed to get business: %w", ErrInternal, op, err)
	}

	if !business.IsOwnedBy(userID) {
		s.logger.Warn("%s: user=%s is not the owner of business=%s", op, userID, businessID)
		return ErrAccessDenied
	}
	return nil
}
