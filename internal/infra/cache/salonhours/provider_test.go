package salonhours

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
)

type stubClient struct {
	hours *salonservice.WorkingHours
	err   error
	calls int
}

func (s *stubClient) ResolveWorkingHours(_ context.Context, _ int64) (*salonservice.WorkingHours, error) {
	s.calls++
	return s.hours, s.err
}

func strPtr(s string) *string { return &s }

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestProvider_DefaultWindow(t *testing.T) {
	client := &stubClient{hours: &salonservice.WorkingHours{
		SalonID: 7,
		Days: []salonservice.DayOfWeek{
			{Weekday: 1, OpenTime: "10:00", CloseTime: "19:00", BreakStart: strPtr("14:00"), BreakEnd: strPtr("15:00")},
			{Weekday: 0, Closed: true},
			{Weekday: 2, OpenTime: "19:00", CloseTime: "10:00"},
		},
	}}
	_, rdb := newRedis(t)
	p := NewProvider(rdb, client, time.Minute, logger.NewNop())
	ctx := context.Background()

	window, err := p.DefaultWindow(ctx, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, 600, window.StartMinute)
	assert.Equal(t, 1140, window.EndMinute)
	require.True(t, window.HasBreak())
	assert.Equal(t, 840, *window.BreakStartMinute)

	_, err = p.DefaultWindow(ctx, 7, 0)
	assert.ErrorIs(t, err, ErrClosed)

	_, err = p.DefaultWindow(ctx, 7, 3)
	assert.ErrorIs(t, err, ErrNotConfigured)

	// Перепутанные часы считаются отсутствием настройки
	_, err = p.DefaultWindow(ctx, 7, 2)
	assert.ErrorIs(t, err, ErrNotConfigured)

	// Все вызовы после первого обслужены из кэша
	assert.Equal(t, 1, client.calls)
}

func TestProvider_CacheExpiryAndInvalidate(t *testing.T) {
	client := &stubClient{hours: &salonservice.WorkingHours{
		SalonID: 1,
		Days:    []salonservice.DayOfWeek{{Weekday: 3, OpenTime: "09:00", CloseTime: "18:00"}},
	}}
	mr, rdb := newRedis(t)
	p := NewProvider(rdb, client, time.Minute, logger.NewNop())
	ctx := context.Background()

	_, err := p.DefaultWindow(ctx, 1, 3)
	require.NoError(t, err)
	assert.True(t, mr.Exists("salon:hours:1"))

	mr.FastForward(2 * time.Minute)
	_, err = p.DefaultWindow(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)

	require.NoError(t, p.Invalidate(ctx, 1))
	assert.False(t, mr.Exists("salon:hours:1"))
}

func TestProvider_Unavailable(t *testing.T) {
	client := &stubClient{err: errors.New("connection refused")}
	p := NewProvider(nil, client, time.Minute, logger.NewNop())

	_, err := p.DefaultWindow(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestProvider_WithoutRedis(t *testing.T) {
	client := &stubClient{hours: &salonservice.WorkingHours{SalonID: 1}}
	p := NewProvider(nil, client, time.Minute, logger.NewNop())
	ctx := context.Background()

	_, err := p.DefaultWindow(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = p.DefaultWindow(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, 2, client.calls)
}
