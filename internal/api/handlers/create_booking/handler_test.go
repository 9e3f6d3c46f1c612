package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*domain.Booking, error) {
	args := m.Called(ctx, req)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

const validBody = `{"salonId":1,"staffId":7,"customerId":9,"serviceIds":[3],"date":"2026-03-10","startTime":"10:00"}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, loc)

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createBooking.Request) bool {
		return req.StaffID == 7 && req.Date.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, loc)) && req.StartTime.String() == "10:00"
	})).Return(&domain.Booking{
		ID: 11, SalonID: 1, StaffID: 7, CustomerID: 9, ServiceIDs: []int64{3},
		StartAt: start, EndAt: start.Add(30 * time.Minute), Status: domain.StatusConfirmed,
	}, nil)

	rec := post(NewHandler(uc, loc, logger.NewNop()), validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body handlers.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(11), body.ID)
	assert.Equal(t, "10:00", body.StartTime)
	assert.Equal(t, "10:30", body.EndTime)
	assert.Equal(t, "confirmed", body.Status)
	uc.AssertExpectations(t)
}

func TestHandle_ParseErrors(t *testing.T) {
	uc := &mockUseCase{}
	h := NewHandler(uc, time.UTC, logger.NewNop())

	for _, body := range []string{
		`{"salonId":`,
		`{"salonId":1,"unknown":true}`,
		`{"salonId":1,"staffId":7,"date":"10/03/2026","startTime":"10:00"}`,
		`{"salonId":1,"staffId":7,"date":"2026-03-10","startTime":"25:00"}`,
	} {
		assert.Equal(t, http.StatusBadRequest, post(h, body).Code, body)
	}
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "conflict", err: &domain.ConflictError{StaffID: 7, Existing: &domain.Booking{ID: 2}}, status: http.StatusConflict},
		{name: "validation", err: domain.NewValidationError("serviceIds", "is required"), status: http.StatusBadRequest},
		{name: "staff not found", err: createBooking.ErrStaffNotFound, status: http.StatusNotFound},
		{name: "past", err: createBooking.ErrInvalidDate, status: http.StatusBadRequest},
		{name: "too far", err: createBooking.ErrDateTooFarInFuture, status: http.StatusBadRequest},
		{name: "too late", err: createBooking.ErrTooLateToBook, status: http.StatusBadRequest},
		{name: "outside hours", err: createBooking.ErrOutsideWorkingHours, status: http.StatusBadRequest},
		{name: "internal", err: fmt.Errorf("%w: db", createBooking.ErrInternal), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := post(NewHandler(uc, time.UTC, logger.NewNop()), validBody)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
