package start_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
)

var now = time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)

func booking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: id, SalonID: 1, StaffID: 7, StartAt: now, EndAt: now.Add(time.Hour), Status: status}
}

func newUseCase(store *usecasetest.BookingStore) *UseCase {
	return NewUseCase(store, usecasetest.DirectTx{}, usecasetest.Clock{T: now}, logger.NewNop())
}

func TestExecute_StartsFromAllowedStatuses(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusConfirmed, domain.StatusCheckedIn} {
		t.Run(string(status), func(t *testing.T) {
			store := usecasetest.NewBookingStore(booking(1, status))

			got, err := newUseCase(store).Execute(context.Background(), &Request{BookingID: 1})
			require.NoError(t, err)
			assert.Equal(t, domain.StatusInProgress, got.Status)
			require.NotNil(t, got.StartedAt)
			assert.Equal(t, now, *got.StartedAt)
			assert.Equal(t, domain.StatusInProgress, store.Get(1).Status)
		})
	}
}

func TestExecute_RejectsOtherStatuses(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusPending, domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			store := usecasetest.NewBookingStore(booking(1, status))

			_, err := newUseCase(store).Execute(context.Background(), &Request{BookingID: 1})
			require.ErrorIs(t, err, domain.ErrInvalidStatus)

			var statusErr *domain.InvalidStatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, domain.ActionStart, statusErr.Action)
			assert.Equal(t, status, store.Get(1).Status)
			assert.Zero(t, store.Updates)
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	_, err := newUseCase(usecasetest.NewBookingStore()).Execute(context.Background(), &Request{BookingID: 42})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidID(t *testing.T) {
	_, err := newUseCase(usecasetest.NewBookingStore()).Execute(context.Background(), &Request{BookingID: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_RetriesDeadlock(t *testing.T) {
	store := usecasetest.NewBookingStore(booking(1, domain.StatusConfirmed))
	tx := &usecasetest.FlakyTx{Failures: 1, Err: &pq.Error{Code: "40P01"}}
	uc := NewUseCase(store, tx, usecasetest.Clock{T: now}, logger.NewNop())

	got, err := uc.Execute(context.Background(), &Request{BookingID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, got.Status)
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
