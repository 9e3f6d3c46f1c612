package cancel_booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

var now = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

func booking(id int64, status domain.BookingStatus) *domain.Booking {
	start := now.Add(2 * time.Hour)
	return &domain.Booking{ID: id, SalonID: 1, StaffID: 7, StartAt: start, EndAt: start.Add(time.Hour), Status: status}
}

func newUseCase(store *usecasetest.BookingStore) *UseCase {
	return NewUseCase(store, usecasetest.DirectTx{}, usecasetest.Clock{T: now}, logger.NewNop())
}

func TestExecute_Cancels(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed, domain.StatusCheckedIn} {
		t.Run(string(status), func(t *testing.T) {
			store := usecasetest.NewBookingStore(booking(1, status))

			got, err := newUseCase(store).Execute(context.Background(), &Request{BookingID: 1, Reason: ptr.Ptr("client called")})
			require.NoError(t, err)

			assert.Equal(t, domain.StatusCancelled, got.Status)
			require.NotNil(t, got.CancelledAt)
			assert.Equal(t, now, *got.CancelledAt)
			assert.Equal(t, "client called", ptr.Value(got.CancellationReason))
			assert.False(t, store.Get(1).IsActive())
		})
	}
}

func TestExecute_FreesInterval(t *testing.T) {
	store := usecasetest.NewBookingStore(booking(1, domain.StatusConfirmed))
	b := store.Get(1)

	_, err := newUseCase(store).Execute(context.Background(), &Request{BookingID: 1})
	require.NoError(t, err)

	active, err := store.ListActiveByStaff(context.Background(), 7, b.StartAt, b.EndAt)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestExecute_RejectsOtherStatuses(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			store := usecasetest.NewBookingStore(booking(1, status))

			_, err := newUseCase(store).Execute(context.Background(), &Request{BookingID: 1})
			assert.ErrorIs(t, err, domain.ErrInvalidStatus)
			assert.Zero(t, store.Updates)
		})
	}
}

func TestExecute_ReasonTooLong(t *testing.T) {
	store := usecasetest.NewBookingStore(booking(1, domain.StatusConfirmed))
	reason := strings.Repeat("x", domain.MaxCancellationReasonLength+1)

	_, err := newUseCase(store).Execute(context.Background(), &Request{BookingID: 1, Reason: &reason})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.StatusConfirmed, store.Get(1).Status)
}

func TestExecute_RetriesDeadlock(t *testing.T) {
	store := usecasetest.NewBookingStore(booking(1, domain.StatusConfirmed))
	tx := &usecasetest.FlakyTx{Failures: 1, Err: &pq.Error{Code: "40P01"}}
	uc := NewUseCase(store, tx, usecasetest.Clock{T: now}, logger.NewNop())

	got, err := uc.Execute(context.Background(), &Request{BookingID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	assert.Equal(t, 2, tx.Calls)
}

func TestExecute_PersistentContentionIsConflict(t *testing.T) {
	store := usecasetest.NewBookingStore(booking(1, domain.StatusConfirmed))
	tx := &usecasetest.FlakyTx{Failures: 10, Err: &pq.Error{Code: "40001"}}
	uc := NewUseCase(store, tx, usecasetest.Clock{T: now}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 3, tx.Calls)
	assert.Equal(t, domain.StatusConfirmed, store.Get(1).Status)
}
