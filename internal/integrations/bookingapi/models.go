package bookingapi

import "github.com/shopspring/decimal"

type Business struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Address *string `json:"address,omitempty"`
}

type Service struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	DurationMinutes int             `json:"durationMinutes"`
	Price           decimal.Decimal `json:"price"`
	Category        *string         `json:"category,omitempty"`
}

type StaffMember struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Specialties []string `json:"specialties"`
}

type Slot struct {
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
	StaffIDs  []string `json:"staffIds"`
}

// ReserveRequest is the body of POST /api/v1/appointments.
type ReserveRequest struct {
	BusinessID    string  `json:"businessId"`
	ServiceID     string  `json:"serviceId"`
	StaffID       *string `json:"staffId,omitempty"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Appointment struct {
	ID         string  `json:"id"`
	BusinessID string  `json:"businessId"`
	Customer   *Ref    `json:"customer,omitempty"`
	Staff      *Ref    `json:"staff,omitempty"`
	Service    *Ref    `json:"service,omitempty"`
	Date       string  `json:"date"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	Status     string  `json:"status"`
	Notes      *string `json:"notes,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type businessList struct {
	Businesses []Business `json:"businesses"`
}

type serviceList struct {
	Services []Service `json:"services"`
}

type staffList struct {
	Staff []StaffMember `json:"staff"`
}

type slotList struct {
	Slots []Slot `json:"slots"`
}
