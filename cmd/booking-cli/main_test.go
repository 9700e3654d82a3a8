package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-AppointmentService/internal/wizard"
)

// bookingServer accepts reservations only for emma@example.com.
func bookingServer(t *testing.T, reserved *[]bookingapi.ReserveRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/api/v1/businesses":
			w.Write([]byte(`{"businesses":[{"id":"b1","name":"Bright Smile Dental","type":"clinic"}]}`))
		case r.URL.Path == "/api/v1/businesses/b1/services":
			w.Write([]byte(`{"services":[{"id":"s1","name":"Teeth Cleaning","durationMinutes":60,"price":"80"}]}`))
		case r.URL.Path == "/api/v1/businesses/b1/staff":
			w.Write([]byte(`{"staff":[{"id":"st1","name":"Dr. Johnson","specialties":[]}]}`))
		case r.URL.Path == "/api/v1/businesses/b1/available-slots":
			w.Write([]byte(`{"slots":[{"startTime":"09:00","endTime":"10:00","staffIds":["st1"]}]}`))
		case r.URL.Path == "/api/v1/appointments" && r.Method == http.MethodPost:
			var req bookingapi.ReserveRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			*reserved = append(*reserved, req)
			if req.CustomerEmail != "emma@example.com" {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"Bad Request","message":"customerEmail must be a valid e-mail"}`))
				return
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"a1","businessId":"b1","date":"2030-01-07","startTime":"09:00","endTime":"10:00","status":"scheduled"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newTestCLI(srv *httptest.Server, script []string, out *bytes.Buffer) *cli {
	client := bookingapi.NewClient(srv.URL, time.Second, nopLogger{})
	adapter := apiAdapter{client: client}
	return &cli{
		in:      bufio.NewScanner(strings.NewReader(strings.Join(script, "\n") + "\n")),
		out:     out,
		client:  client,
		session: wizard.NewSession(adapter, adapter, time.Second, nopLogger{}),
		timeout: time.Second,
	}
}

func TestRejectedEmailIsFixedWithoutRetyping(t *testing.T) {
	var reserved []bookingapi.ReserveRequest
	srv := bookingServer(t, &reserved)
	defer srv.Close()

	var out bytes.Buffer
	c := newTestCLI(srv, []string{
		"1", "1", "1",
		"2030-01-07", "09:00",
		"Emma", "emma@", "555-0100",
		"",
		"c", "", "emma@example.com", "",
	}, &out)

	require.NoError(t, c.run(context.Background()))

	require.Len(t, reserved, 2)
	assert.Equal(t, "emma@", reserved[0].CustomerEmail)
	assert.Equal(t, "emma@example.com", reserved[1].CustomerEmail)
	assert.Equal(t, "Emma", reserved[1].CustomerName, "kept by an empty answer")
	require.NotNil(t, reserved[1].CustomerPhone)
	assert.Equal(t, "555-0100", *reserved[1].CustomerPhone)
	assert.Equal(t, "09:00", reserved[1].Time)

	assert.Contains(t, out.String(), "customerEmail must be a valid e-mail")
	assert.Contains(t, out.String(), "E-mail [emma@]")
	assert.Contains(t, out.String(), "Booked! Appointment a1")
}

func TestRetryAfterFailureResubmitsDraft(t *testing.T) {
	var reserved []bookingapi.ReserveRequest
	srv := bookingServer(t, &reserved)
	defer srv.Close()

	var out bytes.Buffer
	c := newTestCLI(srv, []string{
		"1", "1", "1",
		"2030-01-07", "09:00",
		"Emma", "emma@", "",
		"",
		"y",
		"q",
	}, &out)

	assert.ErrorIs(t, c.run(context.Background()), errQuit)
	require.Len(t, reserved, 2)
	assert.Equal(t, reserved[0], reserved[1])
}
