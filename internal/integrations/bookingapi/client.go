package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Client talks to the public part of the appointment API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (c *Client) ListBusinesses(ctx context.Context) ([]Business, error) {
	var out businessList
	if err := c.do(ctx, http.MethodGet, "/api/v1/businesses", nil, &out); err != nil {
		return nil, err
	}
	return out.Businesses, nil
}

func (c *Client) ListServices(ctx context.Context, businessID string) ([]Service, error) {
	var out serviceList
	path := fmt.Sprintf("/api/v1/businesses/%s/services", url.PathEscape(businessID))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Services, nil
}

func (c *Client) ListStaff(ctx context.Context, businessID string) ([]StaffMember, error) {
	var out staffList
	path := fmt.Sprintf("/api/v1/businesses/%s/staff", url.PathEscape(businessID))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Staff, nil
}

// AvailableSlots lists free start times. An empty staffID asks for any staff member.
func (c *Client) AvailableSlots(ctx context.Context, businessID, serviceID, staffID, date string) ([]Slot, error) {
	query := url.Values{}
	query.Set("serviceId", serviceID)
	query.Set("date", date)
	if staffID != "" {
		query.Set("staffId", staffID)
	}

	var out slotList
	path := fmt.Sprintf("/api/v1/businesses/%s/available-slots?%s", url.PathEscape(businessID), query.Encode())
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Slots, nil
}

// Reserve submits one appointment request.
func (c *Client) Reserve(ctx context.Context, req *ReserveRequest) (*Appointment, error) {
	c.log.Info("Reserve: business=%s, service=%s, date=%s, time=%s", req.BusinessID, req.ServiceID, req.Date, req.Time)

	var out Appointment
	if err := c.do(ctx, http.MethodPost, "/api/v1/appointments", req, &out); err != nil {
		c.log.Warn("Reserve: failed for business=%s: %v", req.BusinessID, err)
		return nil, err
	}

	c.log.Info("Reserve: created appointment id=%s", out.ID)
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrValidation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrValidation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrTransient, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("%w: read response: %v", ErrTransient, err)
		}
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	message := strings.TrimSpace(string(raw))
	var parsed errorResponse
	if json.Unmarshal(raw, &parsed) == nil && parsed.Message != "" {
		message = parsed.Message
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrValidation, message)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrSlotConflict, message)
	case resp.StatusCode >= 500, resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d: %s", ErrTransient, resp.StatusCode, message)
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, message)
	}
}
