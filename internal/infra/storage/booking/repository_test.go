package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-SalonScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
	"github.com/m04kA/SMC-SalonScheduler/pkg/txmanager"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

type fixture struct {
	db    *dbmetrics.DB
	repo  *Repository
	anna  int64
	boris int64
	other int64
}

func newFixture(t *testing.T) *fixture {
	db := storagetest.Open(t)
	return &fixture{
		db:    db,
		repo:  NewRepository(db),
		anna:  storagetest.InsertStaff(t, db, 100, "Anna"),
		boris: storagetest.InsertStaff(t, db, 100, "Boris"),
		other: storagetest.InsertStaff(t, db, 200, "Vera"),
	}
}

func (f *fixture) create(t *testing.T, salonID, staffID int64, start, end time.Time, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b, err := f.repo.Create(context.Background(), &domain.Booking{
		SalonID: salonID, StaffID: staffID, CustomerID: 7, ServiceIDs: []int64{10, 11},
		StartAt: start, EndAt: end, Status: status,
	})
	require.NoError(t, err)
	return b
}

func ids(bookings []*domain.Booking) []int64 {
	out := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}
	return out
}

func TestCreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := f.create(t, 100, f.anna, at(10, 0), at(11, 0), domain.StatusConfirmed)
	require.NotZero(t, created.ID)

	got, err := f.repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, got.ServiceIDs)
	assert.True(t, got.StartAt.Equal(at(10, 0)))
	assert.True(t, got.EndAt.Equal(at(11, 0)))
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Nil(t, got.QueueNumber)

	_, err = f.repo.GetByID(ctx, created.ID+1000)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListActiveByStaff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	early := f.create(t, 100, f.anna, at(10, 0), at(10, 30), domain.StatusConfirmed)
	f.create(t, 100, f.anna, at(10, 30), at(11, 0), domain.StatusCancelled)
	late := f.create(t, 100, f.anna, at(11, 0), at(12, 0), domain.StatusCheckedIn)
	f.create(t, 100, f.boris, at(10, 30), at(11, 0), domain.StatusConfirmed)

	t.Run("half-open bounds and cancelled rows excluded", func(t *testing.T) {
		got, err := f.repo.ListActiveByStaff(ctx, f.anna, at(10, 30), at(11, 0))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("overlapping rows", func(t *testing.T) {
		got, err := f.repo.ListActiveByStaff(ctx, f.anna, at(10, 15), at(11, 30))
		require.NoError(t, err)
		assert.Equal(t, []int64{early.ID, late.ID}, ids(got))
	})

	t.Run("inside transaction", func(t *testing.T) {
		txm := txmanager.NewTransactionManager(f.db)
		err := txm.Do(ctx, func(ctx context.Context) error {
			got, err := f.repo.ListActiveByStaff(ctx, f.anna, day, day.AddDate(0, 0, 1))
			require.NoError(t, err)
			assert.Equal(t, []int64{early.ID, late.ID}, ids(got))
			return nil
		})
		require.NoError(t, err)
	})
}

func TestPromoteDue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := at(12, 0)

	due := f.create(t, 100, f.anna, at(11, 0), at(12, 30), domain.StatusConfirmed)
	onTheDot := f.create(t, 100, f.boris, now, at(12, 30), domain.StatusConfirmed)
	future := f.create(t, 100, f.anna, at(13, 0), at(14, 0), domain.StatusConfirmed)
	waiting := f.create(t, 100, f.boris, at(10, 0), at(10, 30), domain.StatusCheckedIn)
	yesterday := f.create(t, 100, f.anna, at(11, 0).AddDate(0, 0, -1), at(12, 0).AddDate(0, 0, -1), domain.StatusConfirmed)
	otherSalon := f.create(t, 200, f.other, at(11, 0), at(12, 0), domain.StatusConfirmed)

	promoted, err := f.repo.PromoteDue(ctx, 100, day, now)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{due.ID, onTheDot.ID}, promoted)

	got, err := f.repo.GetByID(ctx, due.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	require.NotNil(t, got.StartedAt)
	assert.True(t, got.StartedAt.Equal(now))

	for _, b := range []*domain.Booking{future, yesterday, otherSalon} {
		got, err := f.repo.GetByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusConfirmed, got.Status, "booking=%d", b.ID)
	}
	got, err = f.repo.GetByID(ctx, waiting.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCheckedIn, got.Status)

	promoted, err = f.repo.PromoteDue(ctx, 100, day, now)
	require.NoError(t, err)
	assert.Empty(t, promoted)
}

func TestList_ByCheckInDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Клиент пришёл сегодня на запись завтрашнего дня
	early := f.create(t, 100, f.anna, at(10, 0).AddDate(0, 0, 1), at(11, 0).AddDate(0, 0, 1), domain.StatusConfirmed)
	early.Status = domain.StatusCheckedIn
	early.QueueNumber = ptr.Ptr(1)
	early.CheckInDate = ptr.Ptr(day)
	early.CheckedInAt = ptr.Ptr(at(9, 0))
	_, err := f.repo.Update(ctx, early)
	require.NoError(t, err)

	f.create(t, 100, f.boris, at(12, 0), at(13, 0), domain.StatusCheckedIn)

	got, err := f.repo.List(ctx, domain.BookingFilter{
		SalonID:     100,
		Statuses:    []domain.BookingStatus{domain.StatusCheckedIn},
		CheckInDate: ptr.Ptr(day),
	})
	require.NoError(t, err)
	require.Equal(t, []int64{early.ID}, ids(got))
	require.NotNil(t, got[0].QueueNumber)
	assert.Equal(t, 1, *got[0].QueueNumber)

	got, err = f.repo.List(ctx, domain.BookingFilter{SalonID: 100, From: day, To: day.AddDate(0, 0, 1)})
	require.NoError(t, err)
	assert.Len(t, got, 1, "start_at bounds still apply when set")
}

func TestUpdate_QueueNumberUniquePerSalonDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	checkIn := func(b *domain.Booking, number int) error {
		b.Status = domain.StatusCheckedIn
		b.QueueNumber = ptr.Ptr(number)
		b.CheckInDate = ptr.Ptr(day)
		b.CheckedInAt = ptr.Ptr(at(9, 0))
		_, err := f.repo.Update(ctx, b)
		return err
	}

	require.NoError(t, checkIn(f.create(t, 100, f.anna, at(10, 0), at(11, 0), domain.StatusConfirmed), 1))
	assert.Error(t, checkIn(f.create(t, 100, f.boris, at(10, 0), at(11, 0), domain.StatusConfirmed), 1))
	assert.NoError(t, checkIn(f.create(t, 200, f.other, at(10, 0), at(11, 0), domain.StatusConfirmed), 1))
}
