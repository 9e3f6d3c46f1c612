package shiftboard

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/priority"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

type memBookings struct {
	bookings []*domain.Booking
	listErr  error
}

func (m *memBookings) List(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*domain.Booking
	for _, b := range m.bookings {
		if b.SalonID != filter.SalonID || !b.IsActive() {
			continue
		}
		if !filter.From.IsZero() && b.StartAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !b.StartAt.Before(filter.To) {
			continue
		}
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, b.Status) {
			continue
		}
		if filter.CheckInDate != nil && (b.CheckInDate == nil || !b.CheckInDate.Equal(*filter.CheckInDate)) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *memBookings) PromoteDue(_ context.Context, salonID int64, from, now time.Time) ([]int64, error) {
	var ids []int64
	for _, b := range m.bookings {
		if b.SalonID == salonID && b.Status == domain.StatusConfirmed && !b.StartAt.Before(from) && !b.StartAt.After(now) {
			b.Status = domain.StatusInProgress
			b.StartedAt = ptr.Ptr(now)
			ids = append(ids, b.ID)
		}
	}
	return ids, nil
}

type priorityStub struct {
	entries []priority.Entry
	resets  int
}

func (p *priorityStub) EnsureDailyReset(context.Context, int64, time.Time) (bool, error) {
	p.resets++
	return p.resets == 1, nil
}

func (p *priorityStub) LiveOrder(context.Context, int64, time.Time) ([]priority.Entry, error) {
	out := append([]priority.Entry(nil), p.entries...)
	priority.SortLive(out)
	return out, nil
}

type revenueStub map[int64]float64

func (r revenueStub) SumPaidBySalon(context.Context, int64, time.Time, time.Time) (map[int64]float64, error) {
	return r, nil
}

type queueStub int

func (q queueStub) Current(context.Context, int64, time.Time) (int, error) {
	return int(q), nil
}

type directTx struct{}

func (directTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type promoMetrics struct{ promoted int }

func (m *promoMetrics) AutoPromoted(count int) { m.promoted += count }

func booking(id, staffID int64, start time.Time, minutes int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:      id,
		SalonID: 100,
		StaffID: staffID,
		StartAt: start,
		EndAt:   start.Add(time.Duration(minutes) * time.Minute),
		Status:  status,
	}
}

func checkedIn(b *domain.Booking, number int, at time.Time) *domain.Booking {
	day := domain.StartOfDay(at)
	b.QueueNumber = &number
	b.CheckedInAt = &at
	b.CheckInDate = &day
	return b
}

func TestBuildBoard(t *testing.T) {
	completed := booking(1, 1, at(9, 0), 60, domain.StatusCompleted)
	completed.StartedAt = ptr.Ptr(at(9, 5))
	completed.CompletedAt = ptr.Ptr(at(9, 50))

	repo := &memBookings{bookings: []*domain.Booking{
		completed,
		booking(2, 1, at(11, 30), 60, domain.StatusConfirmed), // наступило: автозапуск
		booking(3, 1, at(14, 0), 30, domain.StatusConfirmed),
		booking(4, 1, at(16, 0), 30, domain.StatusConfirmed),
		checkedIn(booking(5, 2, at(12, 30), 30, domain.StatusCheckedIn), 2, at(11, 50)),
		checkedIn(booking(6, 1, at(13, 0), 30, domain.StatusCheckedIn), 1, at(11, 40)),
		booking(7, 2, at(10, 0), 30, domain.StatusCancelled),
		booking(8, 2, now.AddDate(0, 0, -1), 30, domain.StatusConfirmed), // вчерашняя не трогается
	}}
	prio := &priorityStub{entries: []priority.Entry{
		{StaffID: 1, Name: "Anna", PriorityOrder: 1, Revenue: 1500},
		{StaffID: 2, Name: "Boris", PriorityOrder: 1, Revenue: 0},
		{StaffID: 3, Name: "Vera", PriorityOrder: 2},
	}}
	metrics := &promoMetrics{}
	svc := NewService(repo, prio, revenueStub{1: 1000, 2: 300}, queueStub(2), directTx{}, metrics, time.UTC, logger.NewNop())

	board, err := svc.BuildBoard(context.Background(), 100, now)
	require.NoError(t, err)

	assert.True(t, board.ResetApplied)
	assert.Equal(t, []int64{2}, board.Promoted)
	assert.Equal(t, 1, metrics.promoted)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[7].Status)
	assert.Equal(t, 2, board.LastQueueNumber)

	require.Len(t, board.Staff, 3)
	// Равный приоритет: первым идёт тот, кто сегодня заработал меньше
	assert.Equal(t, int64(2), board.Staff[0].StaffID)
	assert.Equal(t, int64(1), board.Staff[1].StaffID)
	assert.Equal(t, int64(3), board.Staff[2].StaffID)

	anna := board.Staff[1]
	require.NotNil(t, anna.Current)
	assert.Equal(t, int64(2), anna.Current.ID)
	require.NotNil(t, anna.Next)
	assert.Equal(t, int64(3), anna.Next.ID)
	assert.Equal(t, 1, anna.CompletedToday)
	assert.Equal(t, 45, anna.WorkedMinutes)
	assert.Equal(t, 1500.0, anna.RevenueToday)
	assert.Equal(t, 1000.0, anna.RevenueYesterday)
	assert.Equal(t, 500.0, anna.RevenueDiff)

	boris := board.Staff[0]
	assert.Nil(t, boris.Current)
	assert.Nil(t, boris.Next)
	assert.Equal(t, -300.0, boris.RevenueDiff)

	// Очередь по времени прихода, а не по приоритету мастера
	require.Len(t, board.Queue, 2)
	assert.Equal(t, int64(6), board.Queue[0].BookingID)
	assert.Equal(t, 1, board.Queue[0].QueueNumber)
	assert.Equal(t, int64(5), board.Queue[1].BookingID)
}

func TestBuildBoard_SecondCallDoesNotRepeatSideEffects(t *testing.T) {
	repo := &memBookings{bookings: []*domain.Booking{
		booking(1, 1, at(11, 0), 30, domain.StatusConfirmed),
	}}
	prio := &priorityStub{entries: []priority.Entry{{StaffID: 1, PriorityOrder: 1}}}
	metrics := &promoMetrics{}
	svc := NewService(repo, prio, revenueStub{}, queueStub(0), directTx{}, metrics, time.UTC, logger.NewNop())
	ctx := context.Background()

	first, err := svc.BuildBoard(ctx, 100, now)
	require.NoError(t, err)
	second, err := svc.BuildBoard(ctx, 100, now.Add(time.Minute))
	require.NoError(t, err)

	assert.True(t, first.ResetApplied)
	assert.False(t, second.ResetApplied)
	assert.Equal(t, []int64{1}, first.Promoted)
	assert.Empty(t, second.Promoted)
	assert.Equal(t, 1, metrics.promoted)
	assert.Empty(t, second.Queue)
}

func TestBuildBoard_ListError(t *testing.T) {
	repo := &memBookings{listErr: errors.New("connection refused")}
	svc := NewService(repo, &priorityStub{}, revenueStub{}, queueStub(0), directTx{}, nil, time.UTC, logger.NewNop())

	_, err := svc.BuildBoard(context.Background(), 100, now)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, repo.listErr)
}

func TestBuildBoard_QueueByCheckInDate(t *testing.T) {
	tomorrow := at(10, 0).AddDate(0, 0, 1)
	yesterday := at(17, 0).AddDate(0, 0, -1)

	repo := &memBookings{bookings: []*domain.Booking{
		checkedIn(booking(1, 1, at(12, 30), 30, domain.StatusCheckedIn), 1, at(11, 0)),
		// Пришёл сегодня на запись завтрашнего дня
		checkedIn(booking(2, 2, tomorrow, 30, domain.StatusCheckedIn), 2, at(11, 30)),
		// Пришёл вчера, запись на сегодня: номер вчерашней очереди
		checkedIn(booking(3, 1, at(15, 0), 30, domain.StatusCheckedIn), 5, yesterday),
	}}
	prio := &priorityStub{entries: []priority.Entry{{StaffID: 1, PriorityOrder: 1}, {StaffID: 2, PriorityOrder: 2}}}
	svc := NewService(repo, prio, revenueStub{}, queueStub(2), directTx{}, nil, time.UTC, logger.NewNop())

	board, err := svc.BuildBoard(context.Background(), 100, now)
	require.NoError(t, err)

	require.Len(t, board.Queue, 2)
	assert.Equal(t, int64(1), board.Queue[0].BookingID)
	assert.Equal(t, int64(2), board.Queue[1].BookingID)
}

func TestBuildBoard_CheckedInIsNotAutoStarted(t *testing.T) {
	waiting := checkedIn(booking(1, 1, at(11, 0), 30, domain.StatusCheckedIn), 1, at(10, 50))
	repo := &memBookings{bookings: []*domain.Booking{
		waiting,
		booking(2, 2, at(11, 30), 30, domain.StatusConfirmed),
	}}
	prio := &priorityStub{entries: []priority.Entry{{StaffID: 1, PriorityOrder: 1}, {StaffID: 2, PriorityOrder: 2}}}
	svc := NewService(repo, prio, revenueStub{}, queueStub(1), directTx{}, nil, time.UTC, logger.NewNop())

	board, err := svc.BuildBoard(context.Background(), 100, now)
	require.NoError(t, err)

	assert.Equal(t, []int64{2}, board.Promoted)
	assert.Equal(t, domain.StatusCheckedIn, waiting.Status)
	require.Len(t, board.Queue, 1)
	assert.Equal(t, int64(1), board.Queue[0].BookingID)
}
