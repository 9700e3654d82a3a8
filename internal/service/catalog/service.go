package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

var tracer = otel.Tracer("smc.internal.service.catalog")

// Service answers the read-only catalog queries of the booking flow.
// All methods are idempotent and safe for concurrent use.
type Service struct {
	businessRepo BusinessRepository
	catalog      CatalogReader
	logger       Logger
}

func NewService(businessRepo BusinessRepository, catalog CatalogReader, logger Logger) *Service {
	return &Service{
		businessRepo: businessRepo,
		catalog:      catalog,
		logger:       logger,
	}
}

// ListBusinesses returns every business ordered by name.
func (s *Service) ListBusinesses(ctx context.Context) (*models.BusinessListResponse, error) {
	ctx, span := tracer.Start(ctx, "catalog.ListBusinesses")
	defer span.End()

	businesses, err := s.businessRepo.List(ctx)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("ListBusinesses: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBusinesses - repository error: %w", ErrInternal, err)
	}

	span.SetAttributes(attribute.Int("catalog.count", len(businesses)))
	return models.FromDomainBusinessList(businesses), nil
}

// ListServices returns the active services of a business ordered by category then name.
func (s *Service) ListServices(ctx context.Context, businessID string) (*models.ServiceListResponse, error) {
	ctx, span := tracer.Start(ctx, "catalog.ListServices",
		trace.WithAttributes(attribute.String("business.id", businessID)))
	defer span.End()

	if err := s.ensureBusiness(ctx, "ListServices", businessID); err != nil {
		span.RecordError(err)
		return nil, err
	}

	services, err := s.catalog.ListServices(ctx, businessID)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("ListServices: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %w", ErrInternal, err)
	}

	span.SetAttributes(attribute.Int("catalog.count", len(services)))
	return models.FromDomainServiceList(services), nil
}

// ListStaff returns the active staff members of a business ordered by name.
func (s *Service) ListStaff(ctx context.Context, businessID string) (*models.StaffListResponse, error) {
	ctx, span := tracer.Start(ctx, "catalog.ListStaff",
		trace.WithAttributes(attribute.String("business.id", businessID)))
	defer span.End()

	if err := s.ensureBusiness(ctx, "ListStaff", businessID); err != nil {
		span.RecordError(err)
		return nil, err
	}

	staff, err := s.catalog.ListStaff(ctx, businessID)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("ListStaff: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListStaff - repository error: %w", ErrInternal, err)
	}

	span.SetAttributes(attribute.Int("catalog.count", len(staff)))
	return models.FromDomainStaffList(staff), nil
}

func (s *Service) ensureBusiness(ctx context.Context, op, businessID string) error {
	_, err := s.businessRepo.GetByID(ctx, businessID)
	if err == nil {
		return nil
	}
	if errors.Is(err, businessRepo.ErrBusinessNotFound) {
		s.logger.Warn("%s: business id=%s not found", op, businessID)
		return ErrBusinessNotFound
	}
	s.logger.Error("%s: failed to get business id=%s: %v", op, businessID, err)
	return fmt.Errorf("%w: %s - failed to get business: %w", ErrInternal, op, err)
}
