package models

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type BusinessResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

type BusinessListResponse struct {
	Businesses []BusinessResponse `json:"businesses"`
}

type ServiceResponse struct {
	ID              string          `json:"id"`
	BusinessID      string          `json:"businessId"`
	Name            string          `json:"name"`
	Description     *string         `json:"description,omitempty"`
	DurationMinutes int             `json:"durationMinutes"`
	Price           decimal.Decimal `json:"price"`
	Category        *string         `json:"category,omitempty"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

type StaffResponse struct {
	ID          string   `json:"id"`
	BusinessID  string   `json:"businessId"`
	Name        string   `json:"name"`
	Email       *string  `json:"email,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Specialties []string `json:"specialties"`
}

type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

func FromDomainBusinessList(businesses []*domain.Business) *BusinessListResponse {
	resp := &BusinessListResponse{Businesses: make([]BusinessResponse, 0, len(businesses))}
	for _, b := range businesses {
		resp.Businesses = append(resp.Businesses, BusinessResponse{
			ID:      b.ID,
			Name:    b.Name,
			Type:    string(b.Type),
			Email:   b.Email,
			Phone:   b.Phone,
			Address: b.Address,
		})
	}
	return resp
}

func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:              s.ID,
			BusinessID:      s.BusinessID,
			Name:            s.Name,
			Description:     s.Description,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
			Category:        s.Category,
		})
	}
	return resp
}

func FromDomainStaffList(staff []*domain.StaffMember) *StaffListResponse {
	resp := &StaffListResponse{Staff: make([]StaffResponse, 0, len(staff))}
	for _, s := range staff {
		specialties := s.Specialties
		if specialties == nil {
			specialties = []string{}
		}
		resp.Staff = append(resp.Staff, StaffResponse{
			ID:          s.ID,
			BusinessID:  s.BusinessID,
			Name:        s.Name,
			Email:       s.Email,
			Phone:       s.Phone,
			Specialties: specialties,
		})
	}
	return resp
}
