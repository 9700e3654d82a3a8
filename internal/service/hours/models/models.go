package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// WindowDTO is one opening window. Weekday is 0 (Sunday) to 6 (Saturday).
type WindowDTO struct {
	Weekday int    `json:"weekday"`
	Open    string `json:"open"`
	Close   string `json:"close"`
}

type ReplaceHoursRequest struct {
	Windows []WindowDTO `json:"windows"`
}

type HoursResponse struct {
	BusinessID string      `json:"businessId"`
	IsDefault  bool        `json:"isDefault"`
	Windows    []WindowDTO `json:"windows"`
}

// ToDomainWindows parses the request. Times accept "HH:MM" and "h:mm AM/PM".
func (r *ReplaceHoursRequest) ToDomainWindows() ([]domain.HoursWindow, error) {
	windows := make([]domain.HoursWindow, 0, len(r.Windows))
	for i, w := range r.Windows {
		if w.Weekday < 0 || w.Weekday > 6 {
			return nil, fmt.Errorf("windows[%d]: weekday must be 0..6", i)
		}
		open, err := types.NewTimeStringFromString(w.Open)
		if err != nil {
			return nil, fmt.Errorf("windows[%d]: open: %w", i, err)
		}
		closeAt, err := types.NewTimeStringFromString(w.Close)
		if err != nil {
			return nil, fmt.Errorf("windows[%d]: close: %w", i, err)
		}
		windows = append(windows, domain.HoursWindow{Weekday: time.Weekday(w.Weekday), Open: open, Close: closeAt})
	}
	return windows, nil
}

func FromDomainHours(h *domain.BusinessHours) *HoursResponse {
	resp := &HoursResponse{
		BusinessID: h.BusinessID,
		IsDefault:  h.IsDefault,
		Windows:    make([]WindowDTO, 0, len(h.Windows)),
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		for _, w := range h.For(day) {
			resp.Windows = append(resp.Windows, WindowDTO{
				Weekday: int(w.Weekday),
				Open:    w.Open.String(),
				Close:   w.Close.String(),
			})
		}
	}
	return resp
}
