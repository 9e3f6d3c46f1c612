package move_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/conflicts"
	"github.com/m04kA/SMC-SalonScheduler/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
	"github.com/m04kA/SMC-SalonScheduler/pkg/types"
)

var date = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return date.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func bookings() []*domain.Booking {
	return []*domain.Booking{
		{ID: 1, SalonID: 100, StaffID: 1, ServiceIDs: []int64{10}, StartAt: at(10, 0), EndAt: at(10, 30), Status: domain.StatusConfirmed},
		{ID: 2, SalonID: 100, StaffID: 1, ServiceIDs: []int64{10}, StartAt: at(11, 0), EndAt: at(11, 30), Status: domain.StatusConfirmed},
		{ID: 3, SalonID: 100, StaffID: 2, ServiceIDs: []int64{10}, StartAt: at(15, 0), EndAt: at(16, 0), Status: domain.StatusInProgress},
		{ID: 4, SalonID: 100, StaffID: 1, ServiceIDs: []int64{10}, StartAt: at(9, 0), EndAt: at(9, 30), Status: domain.StatusCompleted},
	}
}

func newUseCase(store *usecasetest.BookingStore, metrics *usecasetest.Metrics) *UseCase {
	log := logger.NewNop()
	staff := usecasetest.Staff{
		{ID: 1, SalonID: 100, IsActive: true},
		{ID: 2, SalonID: 100, IsActive: true},
		{ID: 5, SalonID: 200, IsActive: true},
	}
	return NewUseCase(
		store,
		staff,
		usecasetest.Availability{ServiceMinutes: 45},
		conflicts.NewService(store, log),
		usecasetest.DirectTx{},
		metrics,
		usecasetest.Clock{T: date.Add(8 * time.Hour)},
		log,
	)
}

func timeOf(s string) *types.TimeString {
	ts := types.TimeString(s)
	return &ts
}

func TestExecute_MovesTime(t *testing.T) {
	store := usecasetest.NewBookingStore(bookings()...)
	metrics := &usecasetest.Metrics{}

	moved, err := newUseCase(store, metrics).Execute(context.Background(), &Request{BookingID: 1, StartTime: timeOf("11:30")})
	require.NoError(t, err)

	// Бронирование встаёт вплотную к соседнему 11:00-11:30
	assert.Equal(t, at(11, 30), moved.StartAt)
	assert.Equal(t, at(12, 0), moved.EndAt)
	assert.Equal(t, at(11, 30), store.Get(1).StartAt)
	assert.Equal(t, 1, metrics.Written[flow])
}

func TestExecute_OverlapWithItselfIsAllowed(t *testing.T) {
	store := usecasetest.NewBookingStore(bookings()...)

	moved, err := newUseCase(store, &usecasetest.Metrics{}).Execute(context.Background(), &Request{BookingID: 1, StartTime: timeOf("10:15")})
	require.NoError(t, err)
	assert.Equal(t, at(10, 15), moved.StartAt)
}

func TestExecute_ConflictLeavesOriginalUnchanged(t *testing.T) {
	store := usecasetest.NewBookingStore(bookings()...)
	metrics := &usecasetest.Metrics{}
	before := store.Get(1)

	_, err := newUseCase(store, metrics).Execute(context.Background(), &Request{BookingID: 1, StartTime: timeOf("10:45")})

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(2), conflict.Existing.ID)
	assert.Equal(t, before, store.Get(1))
	assert.Zero(t, store.Updates)
	assert.Equal(t, 1, metrics.Rejected[flow])
}

func TestExecute_ReassignStaff(t *testing.T) {
	store := usecasetest.NewBookingStore(bookings()...)
	uc := newUseCase(store, &usecasetest.Metrics{})
	ctx := context.Background()

	// Новый мастер: длительность пересчитывается (45 минут)
	moved, err := uc.Execute(ctx, &Request{BookingID: 2, StaffID: ptr.Ptr(int64(2))})
	require.NoError(t, err)
	assert.Equal(t, int64(2), moved.StaffID)
	assert.Equal(t, at(11, 45), moved.EndAt)

	// Перетаскивание на занятое время другого мастера
	_, err = uc.Execute(ctx, &Request{BookingID: 1, StaffID: ptr.Ptr(int64(2)), StartTime: timeOf("14:30")})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(1), store.Get(1).StaffID)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"nothing to change", &Request{BookingID: 1}, domain.ErrValidation},
		{"bad time", &Request{BookingID: 1, StartTime: timeOf("25:00")}, domain.ErrValidation},
		{"unknown booking", &Request{BookingID: 99, StartTime: timeOf("12:00")}, ErrBookingNotFound},
		{"completed booking", &Request{BookingID: 4, StartTime: timeOf("12:00")}, domain.ErrInvalidStatus},
		{"in progress booking", &Request{BookingID: 3, StartTime: timeOf("16:00")}, domain.ErrInvalidStatus},
		{"other salon staff", &Request{BookingID: 1, StaffID: ptr.Ptr(int64(5))}, ErrStaffNotFound},
		{"past", &Request{BookingID: 1, StartTime: timeOf("07:00")}, ErrInvalidDate},
		{"break", &Request{BookingID: 1, StartTime: timeOf("12:45")}, ErrOutsideWorkingHours},
		{"previous day", &Request{BookingID: 1, Date: ptr.Ptr(date.AddDate(0, 0, -1))}, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := usecasetest.NewBookingStore(bookings()...)
			_, err := newUseCase(store, &usecasetest.Metrics{}).Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, store.Updates)
		})
	}
}
