package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type captureWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *captureWriter) Close() error { return nil }

func scheduled() AppointmentScheduled {
	a := &domain.Appointment{
		ID:         "a1",
		BusinessID: "b1",
		CustomerID: "c1",
		StaffID:    ptr.Ptr("st1"),
		ServiceID:  ptr.Ptr("s1"),
		Date:       time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC),
		StartTime:  "09:00",
		EndTime:    "10:00",
		Customer:   &domain.Customer{Name: "Jane", Email: ptr.Ptr("jane@example.com")},
		Service:    &domain.ServiceRef{ID: "s1", Name: "Cleaning", DurationMinutes: 60},
	}
	return NewAppointmentScheduled("evt-1", a, time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC))
}

func TestPublishAppointmentScheduled(t *testing.T) {
	w := &captureWriter{}
	p := NewKafkaPublisherWithWriter(w, "appointment.scheduled")

	require.NoError(t, p.PublishAppointmentScheduled(context.Background(), scheduled()))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "appointment.scheduled", msg.Topic)
	assert.Equal(t, []byte("a1"), msg.Key)
	assert.Equal(t, kafka.Header{Key: "event_id", Value: []byte("evt-1")}, msg.Headers[0])

	var got AppointmentScheduled
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "2030-01-07", got.Date)
	assert.Equal(t, "09:00", got.StartTime)
	assert.Equal(t, "10:00", got.EndTime)
	assert.True(t, time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC).Equal(got.StartsAt))
	assert.Equal(t, "jane@example.com", got.CustomerEmail)
	assert.Equal(t, "Cleaning", got.ServiceName)
}

func TestPublishWrapsWriterError(t *testing.T) {
	p := NewKafkaPublisherWithWriter(&captureWriter{err: errors.New("broker down")}, "t")

	err := p.PublishAppointmentScheduled(context.Background(), scheduled())
	assert.ErrorIs(t, err, ErrPublish)
}

func TestHeaderCarrierOverwrites(t *testing.T) {
	c := &headerCarrier{}
	c.Set("traceparent", "a")
	c.Set("traceparent", "b")

	assert.Equal(t, "b", c.Get("traceparent"))
	assert.Equal(t, []string{"traceparent"}, c.Keys())
}
