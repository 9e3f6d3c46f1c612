package conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

type fakeBookings struct {
	bookings []*domain.Booking
	err      error
	calls    int
}

func (f *fakeBookings) ListActiveByStaff(_ context.Context, staffID int64, from, to time.Time) ([]*domain.Booking, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.StaffID != staffID || b.Status == domain.StatusCancelled {
			continue
		}
		if b.StartAt.Before(to) && b.EndAt.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func booking(id, staffID int64, start, end time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: id, StaffID: staffID, StartAt: start, EndAt: end, Status: status}
}

func TestCheckConflict(t *testing.T) {
	repo := &fakeBookings{bookings: []*domain.Booking{
		booking(1, 7, at(10, 0), at(10, 30), domain.StatusConfirmed),
		booking(2, 7, at(12, 0), at(13, 0), domain.StatusCancelled),
		booking(3, 8, at(10, 0), at(11, 0), domain.StatusConfirmed),
	}}
	svc := NewService(repo, logger.NewNop())
	ctx := context.Background()

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		exclude *int64
		wantID  int64
	}{
		{name: "ends when existing starts", start: at(9, 30), end: at(10, 0)},
		{name: "starts when existing ends", start: at(10, 30), end: at(11, 0)},
		{name: "one minute overlap", start: at(9, 31), end: at(10, 1), wantID: 1},
		{name: "inside existing", start: at(10, 10), end: at(10, 20), wantID: 1},
		{name: "covers existing", start: at(9, 0), end: at(11, 0), wantID: 1},
		{name: "cancelled ignored", start: at(12, 0), end: at(13, 0)},
		{name: "moved booking excluded", start: at(10, 15), end: at(10, 45), exclude: ptr.Ptr(int64(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CheckConflict(ctx, 7, tt.start, tt.end, tt.exclude)
			require.NoError(t, err)
			if tt.wantID == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestCheckConflict_InvalidInterval(t *testing.T) {
	repo := &fakeBookings{}
	svc := NewService(repo, logger.NewNop())

	_, err := svc.CheckConflict(context.Background(), 7, at(10, 0), at(10, 0), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, repo.calls)
}

func TestEnsure(t *testing.T) {
	repo := &fakeBookings{bookings: []*domain.Booking{
		booking(1, 7, at(10, 0), at(10, 30), domain.StatusCheckedIn),
	}}
	svc := NewService(repo, logger.NewNop())

	err := svc.Ensure(context.Background(), 7, at(10, 15), at(10, 45), nil)
	require.ErrorIs(t, err, domain.ErrConflict)

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, int64(1), conflict.Existing.ID)

	assert.NoError(t, svc.Ensure(context.Background(), 7, at(10, 30), at(11, 0), nil))
}

func TestEnsure_RepositoryError(t *testing.T) {
	dbErr := errors.New("deadlock detected")
	svc := NewService(&fakeBookings{err: dbErr}, logger.NewNop())

	err := svc.Ensure(context.Background(), 7, at(10, 0), at(11, 0), nil)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, dbErr)
}

func TestFirstFree(t *testing.T) {
	repo := &fakeBookings{bookings: []*domain.Booking{
		booking(1, 1, at(10, 0), at(11, 0), domain.StatusConfirmed),
		booking(2, 5, at(10, 45), at(11, 30), domain.StatusConfirmed),
	}}
	svc := NewService(repo, logger.NewNop())
	ctx := context.Background()

	notWorking := map[int64]bool{2: true}
	minutes := map[int64]int{5: 60}
	fit := func(_ context.Context, staffID int64) (time.Time, bool, error) {
		m, ok := minutes[staffID]
		if !ok {
			m = 30
		}
		return at(10, 0).Add(time.Duration(m) * time.Minute), !notWorking[staffID], nil
	}

	got, end, err := svc.FirstFree(ctx, []int64{1, 2, 3, 4}, at(10, 0), fit)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got)
	assert.Equal(t, at(10, 30), end)

	// Порядок кандидатов определяет выбор
	got, _, err = svc.FirstFree(ctx, []int64{4, 3}, at(10, 0), fit)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)

	// Интервал мастера 5 длиннее и задевает его бронирование
	got, end, err = svc.FirstFree(ctx, []int64{5, 4}, at(10, 0), fit)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)
	assert.Equal(t, at(10, 30), end)

	_, _, err = svc.FirstFree(ctx, []int64{1, 2}, at(10, 0), fit)
	assert.ErrorIs(t, err, domain.ErrNoStaffAvailable)

	_, _, err = svc.FirstFree(ctx, nil, at(10, 0), fit)
	assert.ErrorIs(t, err, domain.ErrNoStaffAvailable)

	fitErr := errors.New("durations unavailable")
	_, _, err = svc.FirstFree(ctx, []int64{3}, at(10, 0), func(context.Context, int64) (time.Time, bool, error) {
		return time.Time{}, false, fitErr
	})
	assert.ErrorIs(t, err, fitErr)
}
