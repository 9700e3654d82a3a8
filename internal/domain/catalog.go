package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrStaffInactive     = errors.New("domain: staff member is inactive")
	ErrStaffDoesNotOffer = errors.New("domain: staff member does not offer the service")
)

// Service is a bookable offering of a business.
type Service struct {
	ID              string
	BusinessID      string
	Name            string
	Description     *string
	DurationMinutes int
	Price           decimal.Decimal
	Category        *string
	IsActive        bool
}

// StaffMember performs services. An empty Specialties list means the
// member performs every service of the business.
type StaffMember struct {
	ID          string
	BusinessID  string
	Name        string
	Email       *string
	Phone       *string
	Specialties []string
	IsActive    bool
}

// Offers reports whether the staff member performs the service: one of the
// specialties matches the service category or name, case-insensitively.
func (s *StaffMember) Offers(service *Service) bool {
	if service == nil || s.BusinessID != service.BusinessID {
		return false
	}
	if len(s.Specialties) == 0 {
		return true
	}
	for _, specialty := range s.Specialties {
		if service.Category != nil && strings.EqualFold(specialty, *service.Category) {
			return true
		}
		if strings.EqualFold(specialty, service.Name) {
			return true
		}
	}
	return false
}

// StaffLookup reads staff members of a business.
type StaffLookup interface {
	GetStaff(ctx context.Context, businessID, staffID string) (*StaffMember, error)
	ListStaff(ctx context.Context, businessID string) ([]*StaffMember, error)
}

// CandidateStaff returns the requested staff member, or every active member
// offering the service when staffID is nil. Lookup errors are returned as is.
func CandidateStaff(ctx context.Context, lookup StaffLookup, service *Service, staffID *string) ([]*StaffMember, error) {
	if staffID != nil {
		member, err := lookup.GetStaff(ctx, service.BusinessID, *staffID)
		if err != nil {
			return nil, err
		}
		if !member.IsActive {
			return nil, ErrStaffInactive
		}
		if !member.Offers(service) {
			return nil, ErrStaffDoesNotOffer
		}
		return []*StaffMember{member}, nil
	}

	all, err := lookup.ListStaff(ctx, service.BusinessID)
	if err != nil {
		return nil, err
	}
	offering := make([]*StaffMember, 0, len(all))
	for _, member := range all {
		if member.IsActive && member.Offers(service) {
			offering = append(offering, member)
		}
	}
	return offering, nil
}
