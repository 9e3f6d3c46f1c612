package duplicate_booking

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	duplicateBooking "github.com/m04kA/SMC-SalonScheduler/internal/usecase/duplicate_booking"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgStaffNotFound      = "мастер не найден"
	msgInPast             = "время исходного бронирования уже прошло"
	msgOutsideWorkingTime = "мастер не работает в это время"
	msgServiceNotOffered  = "мастер не оказывает услуги бронирования"
)

// DuplicateBookingRequest HTTP request model, тело необязательно
type DuplicateBookingRequest struct {
	StaffID    *int64 `json:"staffId,omitempty"`
	CustomerID *int64 `json:"customerId,omitempty"`
}

type Handler struct {
	useCase DuplicateBookingUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase DuplicateBookingUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/duplicate
// Без staffId копия достаётся первому свободному мастеру по приоритету
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/duplicate - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req DuplicateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/duplicate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &duplicateBooking.Request{
		BookingID:  bookingID,
		StaffID:    req.StaffID,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		switch {
		case handlers.RespondDomainError(w, err):
			h.logger.Warn("POST /bookings/{id}/duplicate - Rejected: booking_id=%d: %v", bookingID, err)

		case errors.Is(err, duplicateBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/duplicate - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, duplicateBooking.ErrStaffNotFound):
			h.logger.Warn("POST /bookings/{id}/duplicate - Staff not found: staff_id=%v", ptr.Value(req.StaffID))
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, duplicateBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings/{id}/duplicate - Source booking in the past: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInPast)

		case errors.Is(err, duplicateBooking.ErrServiceNotOffered):
			h.logger.Warn("POST /bookings/{id}/duplicate - Staff does not offer services: staff_id=%v", ptr.Value(req.StaffID))
			handlers.RespondBadRequest(w, msgServiceNotOffered)

		case errors.Is(err, duplicateBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings/{id}/duplicate - Outside working hours: staff_id=%v", ptr.Value(req.StaffID))
			handlers.RespondBadRequest(w, msgOutsideWorkingTime)

		default:
			h.logger.Error("POST /bookings/{id}/duplicate - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/duplicate - Booking duplicated: source_id=%d, new_id=%d, staff_id=%d",
		bookingID, result.ID, result.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewBookingResponse(result, h.loc))
}
