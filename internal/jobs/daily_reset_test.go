package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
)

type fakeSalons struct {
	ids []int64
	err error
}

func (f *fakeSalons) ListSalonIDs(context.Context) ([]int64, error) {
	return f.ids, f.err
}

type fakeResetter struct {
	done   map[int64]string
	failOn int64
	days   []time.Time
}

func (f *fakeResetter) EnsureDailyReset(_ context.Context, salonID int64, today time.Time) (bool, error) {
	f.days = append(f.days, today)
	if salonID == f.failOn {
		return false, errors.New("db down")
	}
	day := today.Format("2006-01-02")
	if f.done[salonID] == day {
		return false, nil
	}
	f.done[salonID] = day
	return true, nil
}

func newJob(salons SalonLister, r PriorityResetter, loc *time.Location, now time.Time) *DailyReset {
	j := NewDailyReset(salons, r, loc, logger.NewNop())
	j.now = func() time.Time { return now }
	return j
}

func TestRunOnce_AppliesOncePerDay(t *testing.T) {
	r := &fakeResetter{done: map[int64]string{}}
	j := newJob(&fakeSalons{ids: []int64{1, 2}}, r, time.UTC, time.Date(2024, 3, 10, 0, 1, 0, 0, time.UTC))

	applied, err := j.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	applied, err = j.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, applied)
}

func TestRunOnce_ContinuesAfterSalonFailure(t *testing.T) {
	r := &fakeResetter{done: map[int64]string{}, failOn: 1}
	j := newJob(&fakeSalons{ids: []int64{1, 2, 3}}, r, time.UTC, time.Date(2024, 3, 10, 0, 1, 0, 0, time.UTC))

	applied, err := j.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "salon 1")
	assert.Equal(t, 2, applied)
}

func TestRunOnce_ListFailure(t *testing.T) {
	j := newJob(&fakeSalons{err: errors.New("timeout")}, &fakeResetter{done: map[int64]string{}}, time.UTC, time.Now())

	_, err := j.RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrListSalons)
}

func TestRunOnce_UsesSalonTimezone(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	r := &fakeResetter{done: map[int64]string{}}
	// 22:30 UTC 9 марта = 01:30 10 марта по времени салона
	j := newJob(&fakeSalons{ids: []int64{1}}, r, loc, time.Date(2024, 3, 9, 22, 30, 0, 0, time.UTC))

	_, err := j.RunOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, r.days, 1)
	assert.Equal(t, 10, r.days[0].Day())
	assert.Equal(t, "2024-03-10", r.done[1])
}

func TestStart_InvalidSpec(t *testing.T) {
	j := newJob(&fakeSalons{}, &fakeResetter{done: map[int64]string{}}, time.UTC, time.Now())

	assert.Error(t, j.Start("not a cron"))
	j.Stop()
}

func TestStartStop(t *testing.T) {
	j := newJob(&fakeSalons{}, &fakeResetter{done: map[int64]string{}}, time.UTC, time.Now())

	require.NoError(t, j.Start("1 0 * * *"))
	j.Stop()
}
