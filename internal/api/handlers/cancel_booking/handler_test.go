package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	uc "github.com/m04kA/SMC-SalonScheduler/internal/usecase/cancel_booking"
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

func serve(h *Handler, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/cancel", h.Handle).Methods(http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return rec
}

func TestHandle_WithAndWithoutReason(t *testing.T) {
	cancelled := &domain.Booking{ID: 5, Status: domain.StatusCancelled, StartAt: time.Now(), EndAt: time.Now().Add(time.Hour)}

	m := &mockUseCase{}
	m.On("Execute", mock.Anything, &uc.Request{BookingID: 5, Reason: ptr.Ptr("sick")}).Return(cancelled, nil).Once()
	m.On("Execute", mock.Anything, &uc.Request{BookingID: 5}).Return(cancelled, nil).Once()

	h := NewHandler(m, time.UTC, logger.NewNop())
	assert.Equal(t, http.StatusOK, serve(h, "/bookings/5/cancel", `{"cancellationReason":"sick"}`).Code)
	assert.Equal(t, http.StatusOK, serve(h, "/bookings/5/cancel", "").Code)
	m.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: uc.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "wrong status", err: &domain.InvalidStatusError{BookingID: 5, Current: domain.StatusCompleted, Action: domain.ActionCancel}, status: http.StatusConflict},
		{name: "reason too long", err: domain.NewValidationError("reason", "is too long"), status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockUseCase{}
			m.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			rec := serve(NewHandler(m, time.UTC, logger.NewNop()), "/bookings/5/cancel", "")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_InvalidID(t *testing.T) {
	m := &mockUseCase{}
	rec := serve(NewHandler(m, time.UTC, logger.NewNop()), "/bookings/abc/cancel", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	m.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
