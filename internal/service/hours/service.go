package hours

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	businessRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/business"
	"github.com/m04kA/SMC-AppointmentService/internal/service/hours/models"
)

// Service manages the weekly opening table of a business. Businesses that
// never configured one use the default table.
type Service struct {
	hoursRepo    HoursRepository
	businessRepo BusinessRepository
	txManager    TransactionManager
	defaults     []domain.HoursWindow
	logger       Logger
}

func NewService(
	hoursRepo HoursRepository,
	businessRepo BusinessRepository,
	txManager TransactionManager,
	defaults []domain.HoursWindow,
	logger Logger,
) *Service {
	if len(defaults) == 0 {
		defaults = domain.DefaultHours()
	}
	return &Service{
		hoursRepo:    hoursRepo,
		businessRepo: businessRepo,
		txManager:    txManager,
		defaults:     defaults,
		logger:       logger,
	}
}

// Resolve returns the effective hours of a business without access checks.
// It is used by slot generation and appointment creation.
func (s *Service) Resolve(ctx context.Context, businessID string) (*domain.BusinessHours, error) {
	windows, err := s.hoursRepo.Get(ctx, businessID)
	if err != nil {
		s.logger.Error("Resolve: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %w", ErrInternal, err)
	}

	if len(windows) == 0 {
		defaults := make([]domain.HoursWindow, len(s.defaults))
		copy(defaults, s.defaults)
		return &domain.BusinessHours{BusinessID: businessID, Windows: defaults, IsDefault: true}, nil
	}
	return &domain.BusinessHours{BusinessID: businessID, Windows: windows}, nil
}

// Get returns the hours table to the business owner.
func (s *Service) Get(ctx context.Context, businessID, userID string) (*models.HoursResponse, error) {
	s.logger.Info("Get: fetching hours for business=%s by user=%s", businessID, userID)

	if err := s.checkOwner(ctx, "Get", businessID, userID); err != nil {
		return nil, err
	}

	h, err := s.Resolve(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainHours(h), nil
}

// Replace stores a new hours table. An empty table reverts the business to the defaults.
func (s *Service) Replace(ctx context.Context, businessID, userID string, req *models.ReplaceHoursRequest) (*models.HoursResponse, error) {
	s.logger.Info("Replace: replacing hours for business=%s by user=%s, windows=%d",
		businessID, userID, len(req.Windows))

	windows, err := req.ToDomainWindows()
	if err != nil {
		s.logger.Warn("Replace: invalid windows for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	h := &domain.BusinessHours{BusinessID: businessID, Windows: windows}
	if err := h.Validate(); err != nil {
		s.logger.Warn("Replace: invalid hours for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.checkOwner(ctx, "Replace", businessID, userID); err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.hoursRepo.Replace(txCtx, businessID, windows)
	})
	if err != nil {
		s.logger.Error("Replace: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: Replace - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Replace: stored %d windows for business=%s", len(windows), businessID)

	resolved, err := s.Resolve(ctx, businessID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainHours(resolved), nil
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
