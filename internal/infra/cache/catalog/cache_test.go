package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeSource struct {
	services     []*domain.Service
	staff        []*domain.StaffMember
	err          error
	serviceCalls int
	staffCalls   int
}

func (f *fakeSource) ListServices(_ context.Context, _ string) ([]*domain.Service, error) {
	f.serviceCalls++
	return f.services, f.err
}

func (f *fakeSource) ListStaff(_ context.Context, _ string) ([]*domain.StaffMember, error) {
	f.staffCalls++
	return f.staff, f.err
}

type countingMetrics map[string]int

func (m countingMetrics) ObserveCache(kind, result string) {
	m[kind+":"+result]++
}

func newCache(t *testing.T, src Source) (*Cache, *miniredis.Miniredis, countingMetrics) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	m := countingMetrics{}
	return New(src, client, time.Minute, m, nil), mr, m
}

func TestServicesReadThrough(t *testing.T) {
	src := &fakeSource{services: []*domain.Service{{
		ID: "s1", BusinessID: "b1", Name: "Cleaning", DurationMinutes: 60,
		Price: decimal.RequireFromString("120.50"), Category: ptr.Ptr("Dental"), IsActive: true,
	}}}
	cache, mr, m := newCache(t, src)
	ctx := context.Background()

	first, err := cache.ListServices(ctx, "b1")
	require.NoError(t, err)
	second, err := cache.ListServices(ctx, "b1")
	require.NoError(t, err)

	assert.Equal(t, 1, src.serviceCalls)
	assert.True(t, mr.Exists("catalog:services:b1"))
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Name, second[0].Name)
	assert.True(t, first[0].Price.Equal(second[0].Price))
	assert.Equal(t, "Dental", *second[0].Category)
	assert.Equal(t, 1, m["services:miss"])
	assert.Equal(t, 1, m["services:hit"])
}

func TestEntryExpires(t *testing.T) {
	src := &fakeSource{staff: []*domain.StaffMember{{ID: "st1", BusinessID: "b1", Name: "Dr. Lee", IsActive: true}}}
	cache, mr, _ := newCache(t, src)
	ctx := context.Background()

	_, err := cache.ListStaff(ctx, "b1")
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = cache.ListStaff(ctx, "b1")
	require.NoError(t, err)

	assert.Equal(t, 2, src.staffCalls)
}

func TestInvalidate(t *testing.T) {
	src := &fakeSource{}
	cache, mr, _ := newCache(t, src)
	ctx := context.Background()

	_, err := cache.ListStaff(ctx, "b1")
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, "b1"))

	assert.False(t, mr.Exists("catalog:staff:b1"))
}

func TestRedisDownFallsBackToSource(t *testing.T) {
	src := &fakeSource{staff: []*domain.StaffMember{{ID: "st1"}}}
	cache, mr, m := newCache(t, src)
	mr.Close()

	got, err := cache.ListStaff(context.Background(), "b1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, m["staff:error"])
}

func TestSourceErrorIsReturned(t *testing.T) {
	boom := errors.New("db down")
	cache, mr, _ := newCache(t, &fakeSource{err: boom})

	_, err := cache.ListServices(context.Background(), "b1")
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("catalog:services:b1"))
}
