package check_in

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	uc "github.com/m04kA/SMC-SalonScheduler/internal/usecase/check_in"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *uc.Request) (*domain.Booking, error) {
	args := m.Called(ctx, req)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/check-in", h.Handle).Methods(http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	return rec
}

func TestHandle_ReturnsQueueNumber(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	m := &mockUseCase{}
	m.On("Execute", mock.Anything, &uc.Request{BookingID: 3}).Return(&domain.Booking{
		ID: 3, StaffID: 1, StartAt: start, EndAt: start.Add(time.Hour),
		Status: domain.StatusCheckedIn, QueueNumber: ptr.Ptr(7), CheckedInAt: ptr.Ptr(start.Add(-5 * time.Minute)),
	}, nil)

	rec := serve(NewHandler(m, time.UTC, logger.NewNop()), "/bookings/3/check-in")

	require.Equal(t, http.StatusOK, rec.Code)
	var body handlers.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "checked_in", body.Status)
	assert.Equal(t, 7, ptr.Value(body.QueueNumber))
}

func TestHandle_InvalidStatusCarriesCurrentStatus(t *testing.T) {
	m := &mockUseCase{}
	m.On("Execute", mock.Anything, mock.Anything).Return(nil,
		&domain.InvalidStatusError{BookingID: 3, Current: domain.StatusInProgress, Action: domain.ActionCheckIn})

	rec := serve(NewHandler(m, time.UTC, logger.NewNop()), "/bookings/3/check-in")

	require.Equal(t, http.StatusConflict, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "in_progress", body.CurrentStatus)
}

func TestHandle_NotFound(t *testing.T) {
	m := &mockUseCase{}
	m.On("Execute", mock.Anything, mock.Anything).Return(nil, uc.ErrBookingNotFound)

	assert.Equal(t, http.StatusNotFound, serve(NewHandler(m, time.UTC, logger.NewNop()), "/bookings/3/check-in").Code)
}

func TestHandle_ConcurrentCheckInIsConflict(t *testing.T) {
	m := &mockUseCase{}
	m.On("Execute", mock.Anything, mock.Anything).Return(nil,
		fmt.Errorf("%w: concurrent update: %w", domain.ErrConflict, fmt.Errorf("pq: could not serialize access")))

	assert.Equal(t, http.StatusConflict, serve(NewHandler(m, time.UTC, logger.NewNop()), "/bookings/3/check-in").Code)
}
